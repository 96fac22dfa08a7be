package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/managio-dev/managio/db"
	"github.com/managio-dev/managio/internal/models"
	"github.com/managio-dev/managio/internal/utils"
)

type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type UpdateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
	Status  string `json:"status" binding:"omitempty,oneof=active archived"`
}

type ClientResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
	Status  string `json:"status"`
}

func clientResponse(client models.Client) ClientResponse {
	return ClientResponse{
		ID:      client.ID,
		Name:    client.Name,
		Company: client.Company,
		Email:   client.Email,
		Phone:   client.Phone,
		Address: client.Address,
		Notes:   client.Notes,
		Status:  client.Status,
	}
}

func CreateClient(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateClientRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	client := models.Client{
		OrganizationID: currentUser.OrganizationID,
		Name:           body.Name,
		Company:        body.Company,
		Email:          body.Email,
		Phone:          body.Phone,
		Address:        body.Address,
		Notes:          body.Notes,
		Status:         "active",
	}

	if err := db.DB.Create(&client).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}

	invalidateDashboard(currentUser.OrganizationID)

	ctx.JSON(http.StatusCreated, clientResponse(client))
}

func ListClients(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var clients []models.Client

	if err := db.DB.Where("organization_id = ?", currentUser.OrganizationID).Order("name").Find(&clients).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clients"})
		return
	}

	response := make([]ClientResponse, 0, len(clients))

	for _, client := range clients {
		response = append(response, clientResponse(client))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetClient(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	clientID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var client models.Client

	if err := db.DB.Where("id = ? AND organization_id = ?", clientID, currentUser.OrganizationID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		}
		return
	}

	ctx.JSON(http.StatusOK, clientResponse(client))
}

func UpdateClient(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	clientID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateClientRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var client models.Client

	if err := db.DB.Where("id = ? AND organization_id = ?", clientID, currentUser.OrganizationID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		}
		return
	}

	client.Name = body.Name
	client.Company = body.Company
	client.Email = body.Email
	client.Phone = body.Phone
	client.Address = body.Address
	client.Notes = body.Notes

	if body.Status != "" {
		client.Status = body.Status
	}

	if err := db.DB.Save(&client).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}

	invalidateDashboard(currentUser.OrganizationID)

	ctx.JSON(http.StatusOK, clientResponse(client))
}

func DeleteClient(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	clientID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var client models.Client

	if err := db.DB.Where("id = ? AND organization_id = ?", clientID, currentUser.OrganizationID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		}
		return
	}

	if err := db.DB.Delete(&client).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		return
	}

	invalidateDashboard(currentUser.OrganizationID)

	ctx.Status(http.StatusNoContent)
}
