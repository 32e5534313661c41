package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"backend/config"
	"backend/models"

	"github.com/google/uuid"
)

// ErrStaleDraft means the draft a capture belonged to was discarded while
// the analysis was in flight; the result must not be applied.
var ErrStaleDraft = errors.New("draft no longer active")

// AnalysisService calls the image-analysis service: multipart file upload
// in, a partial nutrient record out. Each call is tagged with the draft it
// belongs to so a late result cannot corrupt a newer draft.
type AnalysisService struct {
	baseURL string
	client  *http.Client

	mu        sync.Mutex
	cancelled map[uuid.UUID]struct{}
}

func NewAnalysisService() *AnalysisService {
	return &AnalysisService{
		baseURL:   config.Getenv("ANALYZE_URL", "http://127.0.0.1:8000/analyze"),
		client:    &http.Client{Timeout: 30 * time.Second},
		cancelled: make(map[uuid.UUID]struct{}),
	}
}

// CancelDraft marks a draft discarded. An in-flight analysis for it will
// drop its result on completion.
func (s *AnalysisService) CancelDraft(token uuid.UUID) {
	s.mu.Lock()
	s.cancelled[token] = struct{}{}
	s.mu.Unlock()
}

// consumeCancellation reports whether token was cancelled, clearing the
// mark so the registry does not grow.
func (s *AnalysisService) consumeCancellation(token uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cancelled[token]; ok {
		delete(s.cancelled, token)
		return true
	}
	return false
}

// Analyze uploads the image and merges the service's result over the
// draft: fields present in the response overwrite, absent fields keep
// what the user typed. Any failure returns the draft untouched.
func (s *AnalysisService) Analyze(token uuid.UUID, draft models.FoodRecord, filename string, image io.Reader) (models.FoodRecord, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return draft, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return draft, fmt.Errorf("copy image into form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return draft, fmt.Errorf("finish upload form: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL, &buf)
	if err != nil {
		return draft, fmt.Errorf("create analyze request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return draft, fmt.Errorf("call analysis service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return draft, fmt.Errorf("read analysis response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return draft, fmt.Errorf("analysis service error %d: %s", resp.StatusCode, serviceDetail(body))
	}

	// json.Unmarshal only touches fields the payload carries, which is
	// exactly the merge the draft needs.
	merged := draft
	if err := json.Unmarshal(body, &merged); err != nil {
		return draft, fmt.Errorf("parse analysis response: %w", err)
	}

	if token != uuid.Nil && s.consumeCancellation(token) {
		config.GetLogger().WithField("draft", token.String()).
			Info("discarding analysis result for cancelled draft")
		return draft, ErrStaleDraft
	}
	return merged, nil
}

// serviceDetail extracts the {"detail": ...} error envelope both external
// services use, falling back to the raw body.
func serviceDetail(body []byte) string {
	var env struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &env) == nil && env.Detail != "" {
		return env.Detail
	}
	return string(body)
}
