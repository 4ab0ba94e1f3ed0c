package recovery

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
	httperr "github.com/hauspet-lab/hauspet-intake/internal/core/errors"
)

type recoverFromLogsRequest struct {
	LogData string `json:"logData"`
}

type recoverFromEmailsRequest struct {
	EmailData string `json:"emailData"`
}

// recoveryData is the payload of a successful recovery response.
type recoveryData struct {
	Submissions []*v1.Submission `json:"submissions"`
	Count       int              `json:"count"`
	NewCount    int              `json:"newCount"`
}

// RecoverFromLogsHandler extracts submissions from pasted platform logs and
// merges the new ones into the store. Logs carry intake-minted ids, so the
// merge dedups by id and email.
func (s *Service) RecoverFromLogsHandler(c *gin.Context) {
	var req recoverFromLogsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.LogData == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "No log data provided. Please provide platform logs containing SUBMISSION_LOG entries.",
			"instructions": []string{
				"1. Open the hosting platform dashboard",
				"2. Navigate to the intake function logs",
				"3. Copy log output containing SUBMISSION_LOG_START and SUBMISSION_LOG_END",
				"4. Paste it in the logData field",
			},
		})
		return
	}

	slog.Info("Attempting to recover submissions from logs")
	candidates := ParseLogDump(req.LogData, s.now())
	s.finishRecovery(c, candidates, true, "logs")
}

// RecoverFromEmailsHandler extracts submissions from pasted email bodies.
// Email-derived records have freshly minted ids, so the merge dedups by
// email only.
func (s *Service) RecoverFromEmailsHandler(c *gin.Context) {
	var req recoverFromEmailsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.EmailData == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "No email data provided. Please provide email content containing form submissions.",
			"instructions": []string{
				"1. Open the inbox that receives submission notifications",
				"2. Find emails about early access applications or pre-orders",
				"3. Copy the email body text",
				"4. Paste it in the emailData field",
			},
		})
		return
	}

	slog.Info("Attempting to recover submissions from email content")
	candidates := ParseEmailDump(req.EmailData, s.now())
	s.finishRecovery(c, candidates, false, "email content")
}

// finishRecovery runs the shared dedup/merge/write-back tail of both
// recovery flows. Zero extracted candidates and all-duplicates both count
// as success with newCount 0; the store is only written when there is
// something new to add.
func (s *Service) finishRecovery(c *gin.Context, candidates []*v1.Submission, byID bool, source string) {
	slog.Info("Extracted candidate submissions", "source", source, "count", len(candidates))

	if len(candidates) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": fmt.Sprintf("No new submissions found in the provided %s.", source),
			"data":    recoveryData{Submissions: []*v1.Submission{}},
		})
		return
	}

	existing, err := s.store.ListAll(c.Request.Context())
	if err != nil {
		slog.Error("Failed to read existing submissions during recovery", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			Error:   httperr.CodeStorageUnavailable,
			Message: "Failed to read existing submissions",
		})
		return
	}

	result := Merge(existing, candidates, byID)
	slog.Info("Merged recovered submissions",
		"source", source,
		"candidates", len(candidates),
		"new", len(result.ToAdd))

	if len(result.ToAdd) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": fmt.Sprintf("Recovery complete. All submissions from the %s were already in the database.", source),
			"data": recoveryData{
				Submissions: existing,
				Count:       len(existing),
			},
		})
		return
	}

	if err := s.store.ReplaceAll(c.Request.Context(), result.NewTotal); err != nil {
		slog.Error("Failed to write back merged submissions", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			Error:   httperr.CodeStorageUnavailable,
			Message: "Recovered submissions could not be saved",
		})
		return
	}

	message := fmt.Sprintf("Successfully recovered and permanently saved %d new submissions from %s", len(result.ToAdd), source)
	if !s.store.Durable() {
		message = fmt.Sprintf("Successfully recovered %d new submissions from %s. WARNING: durable storage not configured, recovered data will not survive a restart.", len(result.ToAdd), source)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data": recoveryData{
			Submissions: result.NewTotal,
			Count:       len(result.NewTotal),
			NewCount:    len(result.ToAdd),
		},
	})
}
