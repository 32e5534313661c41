package controllers

import (
	"net/http"
	"strconv"
	"time"

	"backend/config"
	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type RecordController struct {
	Ledger *services.LedgerService
	Hub    *services.RealtimeHub
}

func NewRecordController(ledger *services.LedgerService, hub *services.RealtimeHub) *RecordController {
	return &RecordController{Ledger: ledger, Hub: hub}
}

// GetLedger dumps the full date→entry map, for bulk export.
func (rc *RecordController) GetLedger(c *gin.Context) {
	c.JSON(http.StatusOK, rc.Ledger.Snapshot())
}

func (rc *RecordController) GetEntry(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rc.Ledger.GetEntry(date))
}

// ReplaceRecords overwrites the full record list for a date (bulk
// load/import).
func (rc *RecordController) ReplaceRecords(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}
	var body struct {
		Records []models.FoodRecord `json:"records"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := rc.Ledger.ReplaceRecords(date, body.Records)
	rc.respond(c, date, entry, err)
}

func (rc *RecordController) AddRecord(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}
	var rec models.FoodRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := rc.Ledger.AddRecord(date, rec)
	rc.respond(c, date, entry, err)
}

func (rc *RecordController) UpdateRecord(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}
	var rec models.FoodRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := rc.Ledger.UpdateRecord(date, rec)
	rc.respond(c, date, entry, err)
}

func (rc *RecordController) RemoveRecord(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}
	entry, err := rc.Ledger.RemoveRecord(date, id)
	rc.respond(c, date, entry, err)
}

// respond handles every mutation uniformly: the in-memory state is already
// updated, so a persistence failure is logged and reported but the entry
// still goes out and listeners still hear about the change.
func (rc *RecordController) respond(c *gin.Context, date string, entry models.DailyEntry, err error) {
	rc.Hub.Broadcast("ledger.updated", gin.H{"date": date, "entry": entry})
	if err != nil {
		config.LogError("controllers", "respond", "persist ledger for "+date, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "entry": entry})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func dateParam(c *gin.Context) (string, bool) {
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return "", false
	}
	return date, true
}
