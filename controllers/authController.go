package controllers

import (
	"net/http"
	"strings"

	"civicguard-be/models"
	authUtils "civicguard-be/utils"

	"github.com/gin-gonic/gin"
)

// leaderEmail marks the demo leader account. Any other email signs in as a
// citizen.
const leaderEmail = "leader@civic.com"

// LoginUser signs a user in. There are no passwords; an email and name are
// enough, and the account is created on first sight.
func LoginUser(c *gin.Context) {
	var input struct {
		Name      string `json:"name" binding:"required,max=100"`
		Email     string `json:"email" binding:"required,email"`
		District  string `json:"district,omitempty"`
		Panchayat string `json:"panchayat,omitempty"`
		Village   string `json:"village,omitempty"`
		Street    string `json:"street,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	role := models.RoleCitizen
	if email == leaderEmail {
		role = models.RoleLeader
	}

	user := appStore.FindUserByEmail(email)
	if user == nil {
		user = appStore.AddUser(models.User{
			Name:      input.Name,
			Email:     email,
			District:  input.District,
			Panchayat: input.Panchayat,
			Village:   input.Village,
			Street:    input.Street,
			Role:      role,
		})
	}

	token, err := authUtils.GenerateAndSetToken(user.ID, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// GetMe returns the authenticated user's profile.
func GetMe(c *gin.Context) {
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

	c.JSON(http.StatusOK, user)
}
