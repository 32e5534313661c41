package models

// NotCalculated is shown for derived fields before the first profile save
// with usable inputs.
const NotCalculated = "Not calculated"

// Profile is the single-user profile blob. Numeric fields stay strings:
// they come straight from form inputs and may be empty; parsing happens in
// the energy model on save, nowhere else. BMR, EstimatedExpenditure and
// DailyCalorieTarget are derived and only recomputed on an explicit save.
type Profile struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Age                  string `json:"age"`
	Height               string `json:"height"` // cm
	Weight               string `json:"weight"` // kg
	MedicalConditions    string `json:"medicalConditions"`
	TargetWeight         string `json:"targetWeight"`
	StepsPerDay          string `json:"stepsPerDay"`
	TargetLoss           string `json:"targetLoss"` // kg/week
	DailyCalorieTarget   string `json:"dailyCalorieTarget"`
	BMR                  string `json:"bmr"`
	EstimatedExpenditure string `json:"estimatedExpenditure"`
	ProfileImage         string `json:"profileImage"`
}

// DefaultProfile matches the state of a fresh install.
func DefaultProfile() Profile {
	return Profile{
		Name:                 "No Name Provided",
		Email:                "No Email Provided",
		BMR:                  NotCalculated,
		EstimatedExpenditure: NotCalculated,
	}
}
