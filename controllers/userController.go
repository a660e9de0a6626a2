package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard ranks users by civic points
func GetLeaderboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"leaderboard": appStore.Leaderboard()})
}

// UpdateProfile changes the authenticated user's display and locality
// fields. Role and points are not editable here.
func UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := appStore.GetUser(userID.(int64))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input struct {
		Name      string `json:"name,omitempty"`
		Avatar    string `json:"avatar,omitempty"`
		District  string `json:"district,omitempty"`
		Panchayat string `json:"panchayat,omitempty"`
		Village   string `json:"village,omitempty"`
		Street    string `json:"street,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated := *user
	if input.Name != "" {
		updated.Name = input.Name
	}
	if input.Avatar != "" {
		updated.Avatar = input.Avatar
	}
	if input.District != "" {
		updated.District = input.District
	}
	if input.Panchayat != "" {
		updated.Panchayat = input.Panchayat
	}
	if input.Village != "" {
		updated.Village = input.Village
	}
	if input.Street != "" {
		updated.Street = input.Street
	}

	if err := appStore.UpdateUser(updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetNotifications returns the recent activity feed
func GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notifications": appStore.Notifications()})
}

// GetDistricts exposes the administrative hierarchy for location pickers
func GetDistricts(c *gin.Context) {
	districts, err := locations.Districts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Location data unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"districts": districts})
}
