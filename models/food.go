package models

import (
	"bytes"
	"strconv"
	"strings"
)

// Amount is a nutrient quantity. Clients (and the analysis service) send
// these as numbers, numeric strings or not at all; anything that does not
// parse as a float becomes 0.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*a = 0
		return nil
	}
	s := string(data)
	if s[0] == '"' {
		var err error
		s, err = strconv.Unquote(s)
		if err != nil {
			*a = 0
			return nil
		}
	}
	*a = Amount(CoerceFloat(s))
	return nil
}

// CoerceFloat is the single numeric-coercion rule applied at every
// ingestion boundary: empty or non-numeric input yields 0.
func CoerceFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// FoodRecord is one logged food item. ID is assigned by the ledger when
// the record is first added (unix milliseconds) and never changes.
type FoodRecord struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Calories Amount `json:"calories"`
	Carbs    Amount `json:"carbs"`
	Protein  Amount `json:"protein"`
	Fats     Amount `json:"fats"`
	Sodium   Amount `json:"sodium"`
	Image    string `json:"image,omitempty"`
}

// NutrientTotals is derived state only; it is never written directly.
type NutrientTotals struct {
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fats     float64 `json:"fats"`
	Sodium   float64 `json:"sodium"`
}

// DailyEntry pairs a day's records with their aggregated totals.
type DailyEntry struct {
	Records []FoodRecord   `json:"records"`
	Totals  NutrientTotals `json:"totals"`
}

// Ledger maps a calendar date (YYYY-MM-DD) to its entry.
type Ledger map[string]DailyEntry

// EmptyEntry is what an unset date looks like to callers.
func EmptyEntry() DailyEntry {
	return DailyEntry{Records: []FoodRecord{}}
}

// Aggregate sums nutrient fields over records. Empty input yields all-zero
// totals.
func Aggregate(records []FoodRecord) NutrientTotals {
	var t NutrientTotals
	for _, r := range records {
		t.Calories += float64(r.Calories)
		t.Carbs += float64(r.Carbs)
		t.Protein += float64(r.Protein)
		t.Fats += float64(r.Fats)
		t.Sodium += float64(r.Sodium)
	}
	return t
}
