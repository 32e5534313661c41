package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"backend/config"
	"backend/models"
	"backend/utils"
)

// RecommendationService asks the recommendation service for meal
// suggestions given the day's totals and the user profile.
type RecommendationService struct {
	baseURL  string
	client   *http.Client
	minDelay time.Duration
}

func NewRecommendationService() *RecommendationService {
	delayMs, err := strconv.Atoi(config.Getenv("REC_MIN_DELAY_MS", "1000"))
	if err != nil || delayMs < 0 {
		delayMs = 1000
	}
	return &RecommendationService{
		baseURL:  config.Getenv("RECOMMEND_URL", "http://127.0.0.1:8000/recommend"),
		client:   &http.Client{Timeout: 30 * time.Second},
		minDelay: time.Duration(delayMs) * time.Millisecond,
	}
}

type recommendationRequest struct {
	FoodTotals  models.NutrientTotals `json:"food_totals"`
	UserProfile models.Profile        `json:"user_profile"`
	CurrentTime string                `json:"current_time"`
}

type recommendationResponse struct {
	Recommendations []models.Recommendation `json:"recommendations"`
}

// GetRecommendations issues the call after a minimum visible delay, so a
// loading indicator never flashes for an imperceptible instant regardless
// of network speed. Any failure comes back as an error; the caller
// degrades it to an empty suggestion list.
func (r *RecommendationService) GetRecommendations(totals models.NutrientTotals, profile models.Profile) ([]models.Recommendation, error) {
	payload := recommendationRequest{
		FoodTotals:  totals,
		UserProfile: profile,
		CurrentTime: time.Now().Format("15:04"),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal recommendation payload: %w", err)
	}

	time.Sleep(r.minDelay)

	resp, err := r.client.Post(r.baseURL, "application/json", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("call recommendation service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read recommendation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recommendation service error %d: %s", resp.StatusCode, serviceDetail(body))
	}

	recs, err := decodeRecommendations(body)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// decodeRecommendations tries a strict parse first, then one bounded
// repair pass (fence stripping, brace balancing) for model-generated
// payloads, then gives up. Malformed data never travels further than this
// boundary.
func decodeRecommendations(body []byte) ([]models.Recommendation, error) {
	var out recommendationResponse
	if err := json.Unmarshal(body, &out); err == nil {
		return out.Recommendations, nil
	}

	repaired := utils.RepairJSON(string(body))
	if err := json.Unmarshal([]byte(repaired), &out); err != nil {
		return nil, fmt.Errorf("parse recommendation response after repair: %w", err)
	}
	return out.Recommendations, nil
}
