package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"backend/models"
	"backend/storage"
	"backend/utils"
)

// ProfileKey is the blob the profile serializes under.
const ProfileKey = "profile"

// ProfileService owns the user profile. The derived fields (bmr,
// estimatedExpenditure, dailyCalorieTarget) are recomputed only here, only
// on Save; clients cannot write them.
type ProfileService struct {
	mu      sync.Mutex
	store   storage.Store
	profile models.Profile
}

// NewProfileService loads the profile blob once, falling back to the
// fresh-install defaults when absent.
func NewProfileService(store storage.Store) (*ProfileService, error) {
	s := &ProfileService{store: store, profile: models.DefaultProfile()}

	raw, err := store.Get(ProfileKey)
	if err == storage.ErrNotFound {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if err := json.Unmarshal(raw, &s.profile); err != nil {
		return nil, fmt.Errorf("decode profile blob: %w", err)
	}
	return s, nil
}

func (s *ProfileService) Get() models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Save applies the edited profile and runs the energy computation. Derived
// fields always start from their stored values, so an input that fails to
// parse leaves them untouched rather than half-updated. When weight,
// height and age all parse, bmr and estimatedExpenditure are recomputed;
// dailyCalorieTarget follows the weekly loss target or is cleared when
// none parses.
func (s *ProfileService) Save(input models.Profile) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := input
	updated.BMR = s.profile.BMR
	updated.EstimatedExpenditure = s.profile.EstimatedExpenditure
	updated.DailyCalorieTarget = s.profile.DailyCalorieTarget

	weight, wOK := parseField(input.Weight)
	height, hOK := parseField(input.Height)
	age, aOK := parseField(input.Age)

	if wOK && hOK && aOK {
		steps, sOK := parseField(input.StepsPerDay)
		if !sOK {
			steps = math.NaN()
		}
		loss, lOK := parseField(input.TargetLoss)
		if !lOK {
			loss = math.NaN()
		}

		res := utils.ComputeEnergy(weight, height, age, steps, loss)
		updated.BMR = fmt.Sprintf("%.0f", res.BMR)
		updated.EstimatedExpenditure = fmt.Sprintf("%.0f", res.TDEE)
		if res.HasTarget {
			updated.DailyCalorieTarget = fmt.Sprintf("%.0f", res.DailyCalorieTarget)
		} else {
			updated.DailyCalorieTarget = ""
		}
		if updated.Name == "No Name Provided" {
			updated.Name = ""
		}
	}

	s.profile = updated

	raw, err := json.Marshal(s.profile)
	if err != nil {
		return s.profile, fmt.Errorf("encode profile: %w", err)
	}
	if err := s.store.Set(ProfileKey, raw); err != nil {
		return s.profile, fmt.Errorf("persist profile: %w", err)
	}
	return s.profile, nil
}

// CalorieTarget picks the budget figure for progress derivation: the
// daily calorie target when it parses to a positive number, else the
// estimated expenditure, else 0.
func (s *ProfileService) CalorieTarget() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := parseField(s.profile.DailyCalorieTarget); ok && v > 0 {
		return v
	}
	if v, ok := parseField(s.profile.EstimatedExpenditure); ok && v > 0 {
		return v
	}
	return 0
}

func parseField(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
