package utils

import "math"

// ActivityFactor maps average daily steps to a TDEE multiplier. NaN (an
// unparsable steps field) falls into the sedentary tier.
func ActivityFactor(steps float64) float64 {
	switch {
	case math.IsNaN(steps) || steps < 5000:
		return 1.2 // sedentary
	case steps < 7500:
		return 1.375 // lightly active
	case steps < 10000:
		return 1.55 // moderately active
	case steps < 12500:
		return 1.7 // active
	default:
		return 1.9 // highly active
	}
}

// CalculateBMR uses the Mifflin-St Jeor equation (male-coefficient
// variant; the profile carries no sex field). Height in cm, weight in kg.
func CalculateBMR(weightKg, heightCm, ageYears float64) float64 {
	return 10*weightKg + 6.25*heightCm - 5*ageYears + 5
}

// EnergyResult carries the outputs of one energy computation.
type EnergyResult struct {
	BMR  float64
	TDEE float64
	// DailyCalorieTarget is only meaningful when HasTarget is true, i.e.
	// when a weekly loss target was supplied.
	DailyCalorieTarget float64
	HasTarget          bool
}

// ComputeEnergy derives BMR, TDEE and the daily calorie target. One kg of
// body weight is ~7700 kcal, so a weekly loss target spreads to a daily
// deficit of targetLoss*7700/7.
func ComputeEnergy(weightKg, heightCm, ageYears, steps, targetLossKgWeek float64) EnergyResult {
	bmr := CalculateBMR(weightKg, heightCm, ageYears)
	tdee := bmr * ActivityFactor(steps)

	res := EnergyResult{BMR: bmr, TDEE: tdee}
	if !math.IsNaN(targetLossKgWeek) {
		res.DailyCalorieTarget = tdee - targetLossKgWeek*7700/7
		res.HasTarget = true
	}
	return res
}
