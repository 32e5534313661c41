package controllers

import (
	"net/http"

	"backend/config"
	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	Profile *services.ProfileService
	Hub     *services.RealtimeHub
}

func NewProfileController(profile *services.ProfileService, hub *services.RealtimeHub) *ProfileController {
	return &ProfileController{Profile: profile, Hub: hub}
}

func (pc *ProfileController) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, pc.Profile.Get())
}

// UpdateProfile is the explicit save action: the only place the energy
// model runs.
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	var input models.Profile
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := pc.Profile.Save(input)
	pc.Hub.Broadcast("profile.updated", saved)
	if err != nil {
		config.LogError("controllers", "UpdateProfile", "persist profile", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "profile": saved})
		return
	}
	c.JSON(http.StatusOK, saved)
}
