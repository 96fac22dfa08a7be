package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/managio-dev/managio/db"
	"github.com/managio-dev/managio/internal/models"
	"github.com/managio-dev/managio/internal/utils"
)

type TemplateRequest struct {
	Name string                 `json:"name" binding:"required"`
	Kind string                 `json:"kind" binding:"required,oneof=project invoice email"`
	Body map[string]interface{} `json:"body" binding:"required"`
}

type TemplateResponse struct {
	ID   uint                   `json:"id"`
	Name string                 `json:"name"`
	Kind string                 `json:"kind"`
	Body map[string]interface{} `json:"body"`
}

func templateResponse(template models.Template) (TemplateResponse, error) {
	body := make(map[string]interface{})

	if len(template.Body) > 0 {
		if err := json.Unmarshal(template.Body, &body); err != nil {
			return TemplateResponse{}, err
		}
	}

	return TemplateResponse{
		ID:   template.ID,
		Name: template.Name,
		Kind: template.Kind,
		Body: body,
	}, nil
}

func CreateTemplate(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body TemplateRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	bodyJSON, err := json.Marshal(body.Body)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template body"})
		return
	}

	template := models.Template{
		OrganizationID: currentUser.OrganizationID,
		Name:           body.Name,
		Kind:           body.Kind,
		Body:           datatypes.JSON(bodyJSON),
	}

	if err := db.DB.Create(&template).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template"})
		return
	}

	response, err := templateResponse(template)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode template"})
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

func ListTemplates(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := db.DB.Where("organization_id = ?", currentUser.OrganizationID)

	if kind := ctx.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var templates []models.Template

	if err := query.Order("name").Find(&templates).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve templates"})
		return
	}

	response := make([]TemplateResponse, 0, len(templates))

	for _, template := range templates {
		entry, err := templateResponse(template)

		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode template"})
			return
		}

		response = append(response, entry)
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateTemplate(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	templateID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body TemplateRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var template models.Template

	if err := db.DB.Where("id = ? AND organization_id = ?", templateID, currentUser.OrganizationID).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve template"})
		}
		return
	}

	bodyJSON, err := json.Marshal(body.Body)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template body"})
		return
	}

	template.Name = body.Name
	template.Kind = body.Kind
	template.Body = datatypes.JSON(bodyJSON)

	if err := db.DB.Save(&template).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update template"})
		return
	}

	response, err := templateResponse(template)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode template"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func DeleteTemplate(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	templateID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var template models.Template

	if err := db.DB.Where("id = ? AND organization_id = ?", templateID, currentUser.OrganizationID).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve template"})
		}
		return
	}

	if err := db.DB.Delete(&template).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete template"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
