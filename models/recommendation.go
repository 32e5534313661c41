package models

// Recommendation is one suggestion from the recommendation service.
type Recommendation struct {
	Food               string         `json:"food"`
	EstimatedNutrition NutrientTotals `json:"estimatedNutrition"`
	RemainingAfter     float64        `json:"remainingAfter"`
	Explanation        string         `json:"explanation"`
}
