package controllers

import (
	"net/http"

	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Ledger  *services.LedgerService
	Profile *services.ProfileService
}

func NewProgressController(ledger *services.LedgerService, profile *services.ProfileService) *ProgressController {
	return &ProgressController{Ledger: ledger, Profile: profile}
}

// GetProgress derives the day's budget standing from the entry totals and
// the profile's calorie target. Nothing here is persisted.
func (pc *ProgressController) GetProgress(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}
	entry := pc.Ledger.GetEntry(date)
	progress := utils.ComputeBudget(entry.Totals.Calories, pc.Profile.CalorieTarget())

	c.JSON(http.StatusOK, gin.H{
		"date":     date,
		"totals":   entry.Totals,
		"progress": progress,
	})
}
