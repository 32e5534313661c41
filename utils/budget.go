package utils

// BudgetProgress describes consumption against the daily calorie target.
// The bar renders ClampedPercent as the on-target segment and
// OverflowPercent as a separate excess segment; nothing is clipped away.
type BudgetProgress struct {
	Consumed        float64 `json:"consumed"`
	Target          float64 `json:"target"`
	Percent         float64 `json:"percent"`
	ClampedPercent  float64 `json:"clamped_percent"`
	OverflowPercent float64 `json:"overflow_percent"`
	Remaining       float64 `json:"remaining"`
	OverTarget      bool    `json:"over_target"`
}

// ComputeBudget derives progress from a day's calorie total and the
// target. A target of zero (nothing configured) yields 0%.
func ComputeBudget(consumed, target float64) BudgetProgress {
	p := BudgetProgress{
		Consumed:  consumed,
		Target:    target,
		Remaining: target - consumed,
	}
	if target > 0 {
		p.Percent = consumed / target * 100
	}
	p.ClampedPercent = p.Percent
	if p.Percent > 100 {
		p.ClampedPercent = 100
		p.OverflowPercent = p.Percent - 100
	}
	p.OverTarget = p.Remaining < 0
	return p
}
