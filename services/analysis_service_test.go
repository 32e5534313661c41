package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backend/models"

	"github.com/google/uuid"
)

func newTestAnalysis(t *testing.T, handler http.HandlerFunc) *AnalysisService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("ANALYZE_URL", srv.URL)
	return NewAnalysisService()
}

func TestAnalyze_MergesOverDraft(t *testing.T) {
	svc := newTestAnalysis(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart upload: %v", err)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file part: %v", err)
		}
		// partial result: no fats/sodium
		w.Write([]byte(`{"name": "Margherita pizza", "calories": "850", "carbs": 95, "protein": 32}`))
	})

	draft := models.FoodRecord{Name: "pizza?", Calories: 500, Fats: 20}
	merged, err := svc.Analyze(uuid.Nil, draft, "lunch.jpg", strings.NewReader("fake-image-bytes"))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if merged.Name != "Margherita pizza" || merged.Calories != 850 || merged.Carbs != 95 {
		t.Errorf("service fields not applied: %+v", merged)
	}
	if merged.Fats != 20 {
		t.Errorf("absent field overwrote user input: fats = %v, want 20", merged.Fats)
	}
}

func TestAnalyze_FailureLeavesDraftUnchanged(t *testing.T) {
	svc := newTestAnalysis(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "no food detected"}`))
	})

	draft := models.FoodRecord{Name: "mystery", Calories: 123}
	got, err := svc.Analyze(uuid.Nil, draft, "blur.jpg", strings.NewReader("x"))
	if err == nil {
		t.Fatal("error = nil, want service failure")
	}
	if !strings.Contains(err.Error(), "no food detected") {
		t.Errorf("error %q does not carry the service detail", err)
	}
	if got != draft {
		t.Errorf("draft changed on failure: %+v", got)
	}
}

func TestAnalyze_CancelledDraftDiscardsResult(t *testing.T) {
	svc := newTestAnalysis(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "salad", "calories": 200}`))
	})

	token := uuid.New()
	svc.CancelDraft(token)

	draft := models.FoodRecord{Name: "typed"}
	got, err := svc.Analyze(token, draft, "a.jpg", strings.NewReader("x"))
	if err != ErrStaleDraft {
		t.Fatalf("error = %v, want ErrStaleDraft", err)
	}
	if got != draft {
		t.Errorf("stale result leaked into draft: %+v", got)
	}

	// the cancellation is consumed; the same token analyzed again applies
	got, err = svc.Analyze(token, draft, "a.jpg", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("second Analyze() error = %v", err)
	}
	if got.Name != "salad" {
		t.Errorf("result not applied after cancellation consumed: %+v", got)
	}
}

func TestAnalyze_TransportErrorLeavesDraft(t *testing.T) {
	t.Setenv("ANALYZE_URL", "http://127.0.0.1:1/analyze") // nothing listens here
	svc := NewAnalysisService()

	draft := models.FoodRecord{Name: "typed", Calories: 50}
	got, err := svc.Analyze(uuid.Nil, draft, "a.jpg", strings.NewReader("x"))
	if err == nil {
		t.Fatal("error = nil, want transport failure")
	}
	if got != draft {
		t.Errorf("draft changed on transport failure: %+v", got)
	}
}
