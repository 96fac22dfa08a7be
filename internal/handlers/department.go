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

type DepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	LeadID      *uint  `json:"lead_id"`
}

type DepartmentResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	LeadID      *uint  `json:"lead_id"`
	MemberCount int64  `json:"member_count"`
}

func CreateDepartment(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body DepartmentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	department := models.Department{
		OrganizationID: currentUser.OrganizationID,
		Name:           body.Name,
		Description:    body.Description,
		LeadID:         body.LeadID,
	}

	if err := db.DB.Create(&department).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create department"})
		return
	}

	ctx.JSON(http.StatusCreated, DepartmentResponse{
		ID:          department.ID,
		Name:        department.Name,
		Description: department.Description,
		LeadID:      department.LeadID,
	})
}

func ListDepartments(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var departments []models.Department

	if err := db.DB.Where("organization_id = ?", currentUser.OrganizationID).Order("name").Find(&departments).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve departments"})
		return
	}

	response := make([]DepartmentResponse, 0, len(departments))

	for _, department := range departments {
		var memberCount int64

		if err := db.DB.Model(&models.Membership{}).Where("department_id = ?", department.ID).Count(&memberCount).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count members"})
			return
		}

		response = append(response, DepartmentResponse{
			ID:          department.ID,
			Name:        department.Name,
			Description: department.Description,
			LeadID:      department.LeadID,
			MemberCount: memberCount,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateDepartment(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	departmentID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body DepartmentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var department models.Department

	if err := db.DB.Where("id = ? AND organization_id = ?", departmentID, currentUser.OrganizationID).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve department"})
		}
		return
	}

	department.Name = body.Name
	department.Description = body.Description
	department.LeadID = body.LeadID

	if err := db.DB.Save(&department).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update department"})
		return
	}

	ctx.JSON(http.StatusOK, DepartmentResponse{
		ID:          department.ID,
		Name:        department.Name,
		Description: department.Description,
		LeadID:      department.LeadID,
	})
}

func DeleteDepartment(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	departmentID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var department models.Department

	if err := db.DB.Where("id = ? AND organization_id = ?", departmentID, currentUser.OrganizationID).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve department"})
		}
		return
	}

	if err := db.DB.Delete(&department).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete department"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
