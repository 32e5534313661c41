package controllers

import (
	"errors"
	"net/http"

	"backend/config"
	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnalysisController struct {
	Analysis *services.AnalysisService
}

func NewAnalysisController(analysis *services.AnalysisService) *AnalysisController {
	return &AnalysisController{Analysis: analysis}
}

// AnalyzeImage accepts a multipart image plus whatever draft fields the
// user already typed, and returns the draft with the service's result
// merged over it. The optional draft_token ties the request to a draft so
// a result that outlives its draft is discarded.
func (ac *AnalysisController) AnalyzeImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image file"})
		return
	}
	defer file.Close()

	token := uuid.Nil
	if t := c.PostForm("draft_token"); t != "" {
		token, err = uuid.Parse(t)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid draft token"})
			return
		}
	}

	draft := models.FoodRecord{
		Name:     c.PostForm("name"),
		Calories: models.Amount(models.CoerceFloat(c.PostForm("calories"))),
		Carbs:    models.Amount(models.CoerceFloat(c.PostForm("carbs"))),
		Protein:  models.Amount(models.CoerceFloat(c.PostForm("protein"))),
		Fats:     models.Amount(models.CoerceFloat(c.PostForm("fats"))),
		Sodium:   models.Amount(models.CoerceFloat(c.PostForm("sodium"))),
	}

	merged, err := ac.Analysis.Analyze(token, draft, fileHeader.Filename, file)
	if errors.Is(err, services.ErrStaleDraft) {
		c.JSON(http.StatusConflict, gin.H{"detail": "draft was discarded"})
		return
	}
	if err != nil {
		config.LogError("controllers", "AnalyzeImage", "image analysis", err)
		c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
		return
	}

	resp := gin.H{"record": merged}
	if token != uuid.Nil {
		resp["draft_token"] = token.String()
	}
	c.JSON(http.StatusOK, resp)
}

// CancelDraft discards a draft; a capture still in flight for it will be
// dropped when it completes.
func (ac *AnalysisController) CancelDraft(c *gin.Context) {
	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid draft token"})
		return
	}
	ac.Analysis.CancelDraft(token)
	c.Status(http.StatusNoContent)
}
