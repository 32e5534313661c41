package services

import (
	"testing"

	"backend/models"
	"backend/storage"
)

func newTestProfile(t *testing.T) (*ProfileService, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	svc, err := NewProfileService(store)
	if err != nil {
		t.Fatalf("NewProfileService() error = %v", err)
	}
	return svc, store
}

func TestDefaultProfileSentinels(t *testing.T) {
	svc, _ := newTestProfile(t)
	p := svc.Get()

	if p.BMR != models.NotCalculated || p.EstimatedExpenditure != models.NotCalculated {
		t.Errorf("derived fields = %q/%q, want %q", p.BMR, p.EstimatedExpenditure, models.NotCalculated)
	}
	if p.Name != "No Name Provided" {
		t.Errorf("name = %q, want default sentinel", p.Name)
	}
}

func TestSave_ComputesEnergyFields(t *testing.T) {
	svc, _ := newTestProfile(t)

	saved, err := svc.Save(models.Profile{
		Name:        "No Name Provided",
		Weight:      "70",
		Height:      "175",
		Age:         "30",
		StepsPerDay: "6000",
		TargetLoss:  "0.5",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// bmr 1668.75, tdee 1668.75*1.375 = 2294.53, target 2294.53-550 = 1744.53
	if saved.BMR != "1669" {
		t.Errorf("bmr = %q, want 1669", saved.BMR)
	}
	if saved.EstimatedExpenditure != "2295" {
		t.Errorf("estimatedExpenditure = %q, want 2295", saved.EstimatedExpenditure)
	}
	if saved.DailyCalorieTarget != "1745" {
		t.Errorf("dailyCalorieTarget = %q, want 1745", saved.DailyCalorieTarget)
	}
	if saved.Name != "" {
		t.Errorf("name sentinel not cleared on first real save: %q", saved.Name)
	}
}

func TestSave_UnparsableWeightLeavesDerivedUnchanged(t *testing.T) {
	svc, _ := newTestProfile(t)

	svc.Save(models.Profile{Weight: "70", Height: "175", Age: "30", StepsPerDay: "6000", TargetLoss: "0.5"})
	saved, err := svc.Save(models.Profile{Weight: "seventy", Height: "175", Age: "30", TargetLoss: "1"})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if saved.BMR != "1669" || saved.EstimatedExpenditure != "2295" || saved.DailyCalorieTarget != "1745" {
		t.Errorf("derived fields changed despite unparsable weight: %q/%q/%q",
			saved.BMR, saved.EstimatedExpenditure, saved.DailyCalorieTarget)
	}
}

func TestSave_MissingLossTargetClearsCalorieTarget(t *testing.T) {
	svc, _ := newTestProfile(t)

	svc.Save(models.Profile{Weight: "70", Height: "175", Age: "30", StepsPerDay: "6000", TargetLoss: "0.5"})
	saved, err := svc.Save(models.Profile{Weight: "70", Height: "175", Age: "30", StepsPerDay: "6000"})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if saved.DailyCalorieTarget != "" {
		t.Errorf("dailyCalorieTarget = %q, want cleared", saved.DailyCalorieTarget)
	}
	if saved.BMR != "1669" {
		t.Errorf("bmr = %q, want 1669", saved.BMR)
	}
}

func TestSave_ClientCannotWriteDerivedFields(t *testing.T) {
	svc, _ := newTestProfile(t)

	saved, err := svc.Save(models.Profile{
		Weight:               "bad",
		BMR:                  "9999",
		EstimatedExpenditure: "9999",
		DailyCalorieTarget:   "9999",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.BMR != models.NotCalculated || saved.EstimatedExpenditure != models.NotCalculated {
		t.Errorf("client overwrote derived fields: %q/%q", saved.BMR, saved.EstimatedExpenditure)
	}
	if saved.DailyCalorieTarget != "" {
		t.Errorf("client overwrote dailyCalorieTarget: %q", saved.DailyCalorieTarget)
	}
}

func TestSave_PersistsProfileBlob(t *testing.T) {
	svc, store := newTestProfile(t)
	svc.Save(models.Profile{Name: "Alex", Weight: "70", Height: "175", Age: "30"})

	reloaded, err := NewProfileService(store)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if got := reloaded.Get(); got.Name != "Alex" || got.BMR != "1669" {
		t.Errorf("reloaded profile = %+v", got)
	}
}

func TestCalorieTarget_Preference(t *testing.T) {
	svc, _ := newTestProfile(t)

	// nothing computed yet: sentinel strings parse to nothing -> 0
	if got := svc.CalorieTarget(); got != 0 {
		t.Errorf("CalorieTarget() = %v, want 0 before any save", got)
	}

	// expenditure only
	svc.Save(models.Profile{Weight: "70", Height: "175", Age: "30", StepsPerDay: "6000"})
	if got := svc.CalorieTarget(); got != 2295 {
		t.Errorf("CalorieTarget() = %v, want estimatedExpenditure 2295", got)
	}

	// explicit daily target wins
	svc.Save(models.Profile{Weight: "70", Height: "175", Age: "30", StepsPerDay: "6000", TargetLoss: "0.5"})
	if got := svc.CalorieTarget(); got != 1745 {
		t.Errorf("CalorieTarget() = %v, want dailyCalorieTarget 1745", got)
	}
}
