package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/managio-dev/managio/db"
	"github.com/managio-dev/managio/internal/models"
	"github.com/managio-dev/managio/internal/utils"
)

type UpdateOrganizationRequest struct {
	Name       string `json:"name" binding:"required"`
	Timezone   string `json:"timezone"`
	WebhookURL string `json:"webhook_url" binding:"omitempty,url"`
}

type OrganizationResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	OwnerID    uint   `json:"owner_id"`
	Timezone   string `json:"timezone"`
	WebhookURL string `json:"webhook_url"`
}

func GetOrganization(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var org models.Organization

	if err := db.DB.First(&org, currentUser.OrganizationID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve organization"})
		return
	}

	ctx.JSON(http.StatusOK, OrganizationResponse{
		ID:         org.ID,
		Name:       org.Name,
		OwnerID:    org.OwnerID,
		Timezone:   org.Timezone,
		WebhookURL: org.WebhookURL,
	})
}

func UpdateOrganization(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateOrganizationRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Timezone != "" {
		if _, err := time.LoadLocation(body.Timezone); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown timezone"})
			return
		}
	}

	var org models.Organization

	if err := db.DB.First(&org, currentUser.OrganizationID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve organization"})
		return
	}

	org.Name = body.Name
	org.WebhookURL = body.WebhookURL

	if body.Timezone != "" {
		org.Timezone = body.Timezone
	}

	if err := db.DB.Save(&org).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update organization"})
		return
	}

	ctx.JSON(http.StatusOK, OrganizationResponse{
		ID:         org.ID,
		Name:       org.Name,
		OwnerID:    org.OwnerID,
		Timezone:   org.Timezone,
		WebhookURL: org.WebhookURL,
	})
}
