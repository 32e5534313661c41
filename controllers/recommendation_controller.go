package controllers

import (
	"net/http"

	"backend/config"
	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	Ledger  *services.LedgerService
	Profile *services.ProfileService
	Rec     *services.RecommendationService
}

func NewRecommendationController(ledger *services.LedgerService, profile *services.ProfileService, rec *services.RecommendationService) *RecommendationController {
	return &RecommendationController{Ledger: ledger, Profile: profile, Rec: rec}
}

// GetRecommendations asks the recommendation service for suggestions
// based on a date's totals and the profile. A service failure degrades to
// an empty list; the ledger and profile are never touched.
func (rc *RecommendationController) GetRecommendations(c *gin.Context) {
	var body struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := rc.Ledger.GetEntry(body.Date)
	recs, err := rc.Rec.GetRecommendations(entry.Totals, rc.Profile.Get())
	if err != nil {
		config.LogError("controllers", "GetRecommendations", "recommendation service", err)
		c.JSON(http.StatusOK, gin.H{"recommendations": []models.Recommendation{}})
		return
	}
	if len(recs) == 0 {
		config.GetLogger().WithField("date", body.Date).
			Info("recommendation service returned zero suggestions")
		recs = []models.Recommendation{}
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}
