package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/managio-dev/managio/db"
	"github.com/managio-dev/managio/internal/events"
	"github.com/managio-dev/managio/internal/models"
	"github.com/managio-dev/managio/internal/types"
	"github.com/managio-dev/managio/internal/utils"
)

type InviteMemberRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Role         string `json:"role" binding:"omitempty,oneof=admin member"`
	DepartmentID *uint  `json:"department_id"`
}

type UpdateMemberRequest struct {
	Role         string `json:"role" binding:"omitempty,oneof=admin member"`
	DepartmentID *uint  `json:"department_id"`
}

type TeamMemberResponse struct {
	UserID       uint   `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	JobTitle     string `json:"job_title"`
	Role         string `json:"role"`
	DepartmentID *uint  `json:"department_id"`
}

func ListTeam(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var memberships []models.Membership

	if err := db.DB.Preload("User").Where("organization_id = ?", currentUser.OrganizationID).Find(&memberships).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
		return
	}

	response := make([]TeamMemberResponse, 0, len(memberships))

	for _, membership := range memberships {
		response = append(response, TeamMemberResponse{
			UserID:       membership.UserID,
			Name:         membership.User.Name,
			Email:        membership.User.Email,
			JobTitle:     membership.User.JobTitle,
			Role:         membership.Role,
			DepartmentID: membership.DepartmentID,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// InviteMember adds an existing user to the caller's organization. Mailing
// an invite to unknown addresses is a transport concern left downstream.
func InviteMember(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body InviteMemberRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var invitee models.User

	email := strings.ToLower(strings.TrimSpace(body.Email))

	if err := db.DB.Where("email = ?", email).First(&invitee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "No user with that email"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		}
		return
	}

	var existing models.Membership

	err = db.DB.Where("user_id = ? AND organization_id = ?", invitee.ID, currentUser.OrganizationID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "User is already a member"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check membership"})
		return
	}

	role := body.Role
	if role == "" {
		role = types.RoleMember
	}

	membership := models.Membership{
		UserID:         invitee.ID,
		OrganizationID: currentUser.OrganizationID,
		Role:           role,
		DepartmentID:   body.DepartmentID,
	}

	if err := db.DB.Create(&membership).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}

	actorID := currentUser.ID
	event := events.NewEvent(types.NotificationSystem, currentUser.OrganizationID,
		"Welcome to the team", currentUser.Name+" added you to the organization")
	event.ActorID = &actorID
	event.RecipientIDs = []uint{invitee.ID}
	event.EntityType = "team_member"
	inviteeID := invitee.ID
	event.EntityID = &inviteeID
	publishEvent(event)

	ctx.JSON(http.StatusCreated, TeamMemberResponse{
		UserID:       invitee.ID,
		Name:         invitee.Name,
		Email:        invitee.Email,
		JobTitle:     invitee.JobTitle,
		Role:         membership.Role,
		DepartmentID: membership.DepartmentID,
	})
}

func UpdateMember(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	memberID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateMemberRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var membership models.Membership

	if err := db.DB.Where("user_id = ? AND organization_id = ?", memberID, currentUser.OrganizationID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		}
		return
	}

	if membership.Role == types.RoleOwner {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "The owner's role cannot be changed"})
		return
	}

	if body.Role != "" {
		membership.Role = body.Role
	}

	membership.DepartmentID = body.DepartmentID

	if err := db.DB.Save(&membership).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member updated"})
}

func RemoveMember(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	memberID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var membership models.Membership

	if err := db.DB.Where("user_id = ? AND organization_id = ?", memberID, currentUser.OrganizationID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		}
		return
	}

	if membership.Role == types.RoleOwner {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "The owner cannot be removed"})
		return
	}

	if err := db.DB.Delete(&membership).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
