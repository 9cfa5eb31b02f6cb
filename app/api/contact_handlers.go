package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/lysyi3m/portfolio-api/app/contact"
)

func (h *Handler) SubmitContact(c *gin.Context) {
	var submission contact.Submission
	if err := c.ShouldBindJSON(&submission); err != nil {
		slog.Warn("Validation error in contact form", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": validationMessage(err)})
		return
	}

	msg, err := contact.NewMessage(submission, h.now())
	if err != nil {
		slog.Warn("Validation error in contact form", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if err := h.messageRepo.CreateMessage(c.Request.Context(), msg); err != nil {
		slog.Error("Database error", "operation", "create_message", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "An error occurred while processing your message"})
		return
	}

	slog.Info("Contact message saved", "id", msg.ID)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Thank you for your message! I'll get back to you soon.",
		"data": gin.H{
			"messageId":   msg.ID,
			"submittedAt": msg.SubmittedAt.Format(time.RFC3339Nano),
		},
	})
}

func (h *Handler) ListMessages(c *gin.Context) {
	filter := contact.ListFilter{
		Status: c.Query("status"),
		Limit:  contact.DefaultListLimit,
	}

	if value := c.Query("skip"); value != "" {
		skip, err := strconv.Atoi(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "skip must be an integer"})
			return
		}
		filter.Skip = skip
	}

	if value := c.Query("limit"); value != "" {
		limit, err := strconv.Atoi(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "limit must be an integer"})
			return
		}
		filter.Limit = max(limit, 1)
	}

	filter = filter.Normalize()

	messages, total, err := h.messageRepo.ListMessages(c.Request.Context(), filter)
	if err != nil {
		slog.Error("Database error", "operation", "list_messages", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch messages"})
		return
	}

	if messages == nil {
		messages = []contact.Message{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"messages":   messages,
			"totalCount": total,
			"skip":       filter.Skip,
			"limit":      filter.Limit,
		},
	})
}

// UpdateMessageStatus reads new_status from the query string, falling back
// to a JSON body.
func (h *Handler) UpdateMessageStatus(c *gin.Context) {
	id := c.Param("id")

	newStatus := c.Query("new_status")
	if newStatus == "" {
		var req statusUpdateRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			newStatus = req.NewStatus
		}
	}

	if !contact.ValidStatus(newStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid status value"})
		return
	}

	found, err := h.messageRepo.UpdateMessageStatus(c.Request.Context(), id, contact.Status(newStatus), h.now().UTC())
	if err != nil {
		slog.Error("Database error", "operation", "update_message_status", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update message status"})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Message not found"})
		return
	}

	slog.Info("Contact message status updated", "id", id, "status", newStatus)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Message status updated to %s", newStatus),
	})
}

func validationMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Invalid request body"
	}

	fe := validationErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "contactemail":
		return "email must be a valid email address"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
