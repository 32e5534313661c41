package routes

import (
	"backend/controllers"
	"backend/middlewares"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter(
	ledger *services.LedgerService,
	profile *services.ProfileService,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger())

	hub := services.NewRealtimeHub()
	recordCtl := controllers.NewRecordController(ledger, hub)
	profileCtl := controllers.NewProfileController(profile, hub)
	progressCtl := controllers.NewProgressController(ledger, profile)
	analysisCtl := controllers.NewAnalysisController(services.NewAnalysisService())
	recCtl := controllers.NewRecommendationController(ledger, profile, services.NewRecommendationService())
	realtimeCtl := controllers.NewRealtimeController(hub)

	records := r.Group("/records")
	{
		records.GET("", recordCtl.GetLedger)
		records.GET("/:date", recordCtl.GetEntry)
		records.PUT("/:date", recordCtl.ReplaceRecords)
		records.POST("/:date", recordCtl.AddRecord)
		records.PATCH("/:date", recordCtl.UpdateRecord)
		records.DELETE("/:date/:id", recordCtl.RemoveRecord)
	}

	r.GET("/profile", profileCtl.GetProfile)
	r.PUT("/profile", profileCtl.UpdateProfile)

	r.GET("/progress/:date", progressCtl.GetProgress)

	r.POST("/analyze", analysisCtl.AnalyzeImage)
	r.DELETE("/analyze/:token", analysisCtl.CancelDraft)

	r.POST("/recommendations", recCtl.GetRecommendations)

	r.GET("/ws", realtimeCtl.UpdatesWS)

	return r
}
