package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/managio-dev/managio/db"
	"github.com/managio-dev/managio/internal/events"
	"github.com/managio-dev/managio/internal/models"
	"github.com/managio-dev/managio/internal/types"
	"github.com/managio-dev/managio/internal/utils"
)

type InvoiceItemRequest struct {
	Description    string `json:"description" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required,min=1"`
	UnitPriceCents int64  `json:"unit_price_cents" binding:"required,min=0"`
}

type CreateInvoiceRequest struct {
	ClientID  uint                 `json:"client_id" binding:"required"`
	ProjectID *uint                `json:"project_id"`
	IssueDate time.Time            `json:"issue_date" binding:"required"`
	DueDate   time.Time            `json:"due_date" binding:"required"`
	Notes     string               `json:"notes"`
	Items     []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

type InvoiceItemResponse struct {
	ID             uint   `json:"id"`
	Description    string `json:"description"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type InvoiceResponse struct {
	ID         uint                  `json:"id"`
	ClientID   uint                  `json:"client_id"`
	ProjectID  *uint                 `json:"project_id"`
	Number     string                `json:"number"`
	Status     string                `json:"status"`
	IssueDate  time.Time             `json:"issue_date"`
	DueDate    time.Time             `json:"due_date"`
	TotalCents int64                 `json:"total_cents"`
	Notes      string                `json:"notes"`
	PaidAt     *time.Time            `json:"paid_at"`
	Items      []InvoiceItemResponse `json:"items"`
}

func invoiceResponse(invoice models.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(invoice.Items))

	for _, item := range invoice.Items {
		items = append(items, InvoiceItemResponse{
			ID:             item.ID,
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	return InvoiceResponse{
		ID:         invoice.ID,
		ClientID:   invoice.ClientID,
		ProjectID:  invoice.ProjectID,
		Number:     invoice.Number,
		Status:     invoice.Status,
		IssueDate:  invoice.IssueDate,
		DueDate:    invoice.DueDate,
		TotalCents: invoice.TotalCents,
		Notes:      invoice.Notes,
		PaidAt:     invoice.PaidAt,
		Items:      items,
	}
}

// nextInvoiceNumber allocates "INV-<org>-<year>-<seq>" within tx.
func nextInvoiceNumber(tx *gorm.DB, orgID uint, issueDate time.Time) (string, error) {
	prefix := fmt.Sprintf("INV-%d-%d-", orgID, issueDate.Year())

	// Soft-deleted invoices keep their numbers in the unique index, so the
	// next sequence comes from the unscoped maximum. A live-row count would
	// re-allocate a deleted invoice's number and trip the index.
	var last *string

	err := tx.Unscoped().Model(&models.Invoice{}).
		Where("number LIKE ?", prefix+"%").
		Select("MAX(number)").
		Scan(&last).Error

	if err != nil {
		return "", err
	}

	seq := 1

	if last != nil {
		seq = invoiceSequence(*last) + 1
	}

	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// transitionGuard rejects invalid status moves. Sending is allowed from
// draft and overdue (re-send), paying from sent and overdue. Returns the
// error message, or "" when the transition is allowed.
func transitionGuard(current, target string) string {
	switch target {
	case "sent":
		if current != "draft" && current != "overdue" {
			return "Only draft or overdue invoices can be sent"
		}
	case "paid":
		if current != "sent" && current != "overdue" {
			return "Only sent or overdue invoices can be paid"
		}
	}

	return ""
}

// invoiceSequence extracts the numeric suffix of an invoice number.
// Unparseable numbers yield 0 so allocation restarts at 1.
func invoiceSequence(number string) int {
	idx := strings.LastIndex(number, "-")

	if idx < 0 {
		return 0
	}

	seq, err := strconv.Atoi(number[idx+1:])

	if err != nil {
		return 0
	}

	return seq
}

func invoiceTotal(items []models.InvoiceItem) int64 {
	var total int64
	for _, item := range items {
		total += int64(item.Quantity) * item.UnitPriceCents
	}
	return total
}

func CreateInvoice(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateInvoiceRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var client models.Client

	if err := db.DB.Where("id = ? AND organization_id = ?", body.ClientID, currentUser.OrganizationID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		}
		return
	}

	var invoice models.Invoice

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		number, err := nextInvoiceNumber(tx, currentUser.OrganizationID, body.IssueDate)
		if err != nil {
			return err
		}

		items := make([]models.InvoiceItem, 0, len(body.Items))

		for _, item := range body.Items {
			items = append(items, models.InvoiceItem{
				Description:    item.Description,
				Quantity:       item.Quantity,
				UnitPriceCents: item.UnitPriceCents,
			})
		}

		invoice = models.Invoice{
			OrganizationID: currentUser.OrganizationID,
			ClientID:       client.ID,
			ProjectID:      body.ProjectID,
			Number:         number,
			Status:         "draft",
			IssueDate:      body.IssueDate,
			DueDate:        body.DueDate,
			Notes:          body.Notes,
			TotalCents:     invoiceTotal(items),
			Items:          items,
		}

		return tx.Create(&invoice).Error
	})

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		return
	}

	invalidateDashboard(currentUser.OrganizationID)

	ctx.JSON(http.StatusCreated, invoiceResponse(invoice))
}

func ListInvoices(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := db.DB.Preload("Items").Where("organization_id = ?", currentUser.OrganizationID)

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if clientID := ctx.Query("client_id"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}

	var invoices []models.Invoice

	if err := query.Order("issue_date DESC").Find(&invoices).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoices"})
		return
	}

	response := make([]InvoiceResponse, 0, len(invoices))

	for _, invoice := range invoices {
		response = append(response, invoiceResponse(invoice))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetInvoice(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	invoiceID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var invoice models.Invoice

	if err := db.DB.Preload("Items").Where("id = ? AND organization_id = ?", invoiceID, currentUser.OrganizationID).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		}
		return
	}

	ctx.JSON(http.StatusOK, invoiceResponse(invoice))
}

// SendInvoice moves a draft to sent and notifies the organization.
func SendInvoice(ctx *gin.Context) {
	transitionInvoice(ctx, "sent", types.NotificationInvoiceSent, "Invoice sent")
}

// PayInvoice marks a sent invoice paid.
func PayInvoice(ctx *gin.Context) {
	transitionInvoice(ctx, "paid", types.NotificationInvoicePaid, "Invoice paid")
}

func transitionInvoice(ctx *gin.Context, newStatus, eventType, title string) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	invoiceID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var invoice models.Invoice

	if err := db.DB.Where("id = ? AND organization_id = ?", invoiceID, currentUser.OrganizationID).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		}
		return
	}

	if msg := transitionGuard(invoice.Status, newStatus); msg != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	invoice.Status = newStatus

	if newStatus == "paid" {
		now := time.Now()
		invoice.PaidAt = &now
	}

	if err := db.DB.Save(&invoice).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		return
	}

	actorID := currentUser.ID
	event := events.NewEvent(eventType, currentUser.OrganizationID, title,
		fmt.Sprintf("%s (%d.%02d)", invoice.Number, invoice.TotalCents/100, invoice.TotalCents%100))
	event.ActorID = &actorID
	event.EntityType = "invoice"
	id := invoice.ID
	event.EntityID = &id
	publishEvent(event)

	invalidateDashboard(currentUser.OrganizationID)

	ctx.JSON(http.StatusOK, invoiceResponse(invoice))
}

func DeleteInvoice(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	invoiceID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var invoice models.Invoice

	if err := db.DB.Where("id = ? AND organization_id = ?", invoiceID, currentUser.OrganizationID).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		}
		return
	}

	if invoice.Status == "paid" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Paid invoices cannot be deleted"})
		return
	}

	if err := db.DB.Delete(&invoice).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice"})
		return
	}

	invalidateDashboard(currentUser.OrganizationID)

	ctx.Status(http.StatusNoContent)
}
