package admin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
	"github.com/hauspet-lab/hauspet-intake/internal/analytics"
	httperr "github.com/hauspet-lab/hauspet-intake/internal/core/errors"
	"github.com/hauspet-lab/hauspet-intake/internal/middleware"
)

// ListSubmissionsHandler returns the full collection plus a fresh analytics
// snapshot. Optional-field defaulting happens here, at format time, so the
// stored records stay exactly as written.
func (s *Service) ListSubmissionsHandler(c *gin.Context) {
	subs, err := s.store.ListAll(c.Request.Context())
	if err != nil {
		slog.Error("Failed to fetch submissions", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			Error:   httperr.CodeFetchSubmissionsFailed,
			Message: "Internal server error while fetching submissions",
		})
		return
	}

	now := s.now()
	formatted := make([]*v1.Submission, 0, len(subs))
	for _, sub := range subs {
		formatted = append(formatted, formatForAdmin(sub, now))
	}

	slog.Info("Admin fetched submissions", "count", len(formatted))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"submissions": formatted,
			"analytics":   analytics.Compute(subs, now),
		},
		"message": "Submissions data retrieved successfully",
	})
}

// formatForAdmin fills display defaults on a copy of the record.
func formatForAdmin(sub *v1.Submission, now time.Time) *v1.Submission {
	out := *sub
	if out.Phone == "" {
		out.Phone = "N/A"
	}
	if out.PetType == "" {
		out.PetType = "Not specified"
	}
	if out.Message == "" {
		out.Message = "No message provided"
	}
	if out.Type == "" {
		out.Type = v1.TypeEarlyAccess
	}
	out.Language = out.EffectiveLanguage()
	if out.Date == "" {
		if out.Timestamp != "" {
			out.Date = out.Timestamp
		} else {
			out.Date = now.UTC().Format(time.RFC3339)
		}
	}
	return &out
}

type bulkEmailRequest struct {
	SelectedUserIDs []string `json:"selectedUserIds"`
	Subject         string   `json:"subject"`
	Message         string   `json:"message"`
	AdminKey        string   `json:"adminKey"`
}

// BulkEmailHandler sends one personalized campaign message to each selected
// user. Per-recipient failures are reported in the result list; only
// systemic problems fail the request.
func (s *Service) BulkEmailHandler(c *gin.Context) {
	var req bulkEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			Error:   httperr.CodeNoUsersSelected,
			Message: "No users selected",
		})
		return
	}

	if !middleware.KeyMatches(req.AdminKey, s.adminKey) {
		c.JSON(http.StatusUnauthorized, httperr.ErrorResponse{
			Error:   httperr.CodeUnauthorized,
			Message: "Unauthorized - Admin access required",
		})
		return
	}

	if len(req.SelectedUserIDs) == 0 {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			Error:   httperr.CodeNoUsersSelected,
			Message: "No users selected",
		})
		return
	}

	if req.Subject == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			Error:   httperr.CodeMissingEmailContent,
			Message: "Subject and message are required",
		})
		return
	}

	if !s.mailer.Configured() {
		slog.Error("Bulk email requested but email service not configured")
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			Error:   httperr.CodeEmailServiceNotConfigured,
			Message: "Email service not configured",
		})
		return
	}

	allUsers, err := s.store.ListAll(c.Request.Context())
	if err != nil {
		slog.Error("Failed to load users for bulk email", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			Error:   httperr.CodeBulkEmailFailed,
			Message: "Internal server error while sending emails",
		})
		return
	}

	wanted := make(map[string]struct{}, len(req.SelectedUserIDs))
	for _, id := range req.SelectedUserIDs {
		wanted[id] = struct{}{}
	}
	var selected []*v1.Submission
	for _, user := range allUsers {
		if _, ok := wanted[user.ID]; ok {
			selected = append(selected, user)
		}
	}

	if len(selected) == 0 {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			Error:   httperr.CodeInvalidUserIDs,
			Message: "No valid users found for selected IDs",
		})
		return
	}

	slog.Info("Sending bulk email", "recipients", len(selected))
	report := s.mailer.SendBulk(c.Request.Context(), selected, req.Subject, req.Message)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bulk email processed",
		"data":    report,
	})
}

// ProviderEmailsHandler reports the provider-side limitation on listing
// sent mail. The provider API can only fetch single messages by id, so
// email-based recovery works from operator-pasted bodies instead.
func (s *Service) ProviderEmailsHandler(c *gin.Context) {
	if !s.mailer.Configured() {
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			Error:   httperr.CodeMissingConfig,
			Message: "Email API key not configured",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Provider email listing not supported",
		"note":    "The email provider does not expose a list-sent-emails API; use /api/recover-from-emails with pasted email content instead.",
		"data": gin.H{
			"emails": []string{},
		},
	})
}
