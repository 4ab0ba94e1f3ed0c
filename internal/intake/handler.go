package intake

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
	httperr "github.com/hauspet-lab/hauspet-intake/internal/core/errors"
	"github.com/hauspet-lab/hauspet-intake/internal/recovery"
	"github.com/hauspet-lab/hauspet-intake/internal/validate"
)

// intakeError carries the structured HTTP error shape from a helper back to
// the handler. Helpers return this instead of writing to gin.Context
// directly, keeping them decoupled from HTTP.
type intakeError struct {
	statusCode int
	code       string
	message    string

	// extra fields merged into the top level of the response body,
	// alongside error and message.
	extra gin.H
}

func (e *intakeError) Error() string {
	return e.message
}

// SubmitHandler runs the submission lifecycle:
// Received -> Validated -> Persisted -> Notified -> Responded.
func (s *Service) SubmitHandler(c *gin.Context) {
	var req v1.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Invalid JSON body on intake", "error", err)
		writeError(c, &intakeError{
			statusCode: http.StatusBadRequest,
			code:       httperr.CodeMissingRequiredFields,
			message:    "Name and email are required",
		})
		return
	}

	sub, verr := validate.Submission(&req, s.now())
	if verr != nil {
		slog.Warn("Submission rejected by validation", "code", verr.Code)
		writeError(c, &intakeError{
			statusCode: http.StatusBadRequest,
			code:       verr.Code,
			message:    verr.Message,
		})
		return
	}

	slog.Info("New submission received",
		"id", sub.ID,
		"type", sub.Type,
		"language", sub.Language,
		"pet_type", sub.PetType)

	logForRecovery(sub)

	if err := s.persist(c, sub); err != nil {
		writeError(c, err)
		return
	}

	if err := s.notify(c, sub); err != nil {
		// The record is already persisted; tell the caller which part
		// failed, but never pretend the data was lost.
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Submission successful",
		"type":        sub.Type,
		"orderNumber": sub.OrderNumber,
	})
}

// persist appends the record to the configured store. Storage failure is
// fatal to the request; there is no silent fallback success.
func (s *Service) persist(c *gin.Context, sub *v1.Submission) *intakeError {
	id, err := s.store.Append(c.Request.Context(), sub)
	if err != nil {
		slog.Error("Failed to save submission", "error", err, "id", sub.ID)
		return &intakeError{
			statusCode: http.StatusInternalServerError,
			code:       httperr.CodeStorageFailed,
			message:    "Failed to save submission. Please try again.",
		}
	}

	slog.Info("Submission persisted", "id", id, "durable", s.store.Durable())
	return nil
}

// notify sends the confirmation emails. A send failure is surfaced as
// email_send_failed but the persisted record stands.
func (s *Service) notify(c *gin.Context, sub *v1.Submission) *intakeError {
	if err := s.mailer.SendIntakeEmails(c.Request.Context(), sub); err != nil {
		slog.Error("Email sending failed after persist", "error", err, "id", sub.ID)
		return &intakeError{
			statusCode: http.StatusInternalServerError,
			code:       httperr.CodeEmailSendFailed,
			message:    "Form submitted but email could not be sent. Please check your email address and try again.",
			// The record was saved; echo what the success path would have
			// so the frontend can still show the order context.
			extra: gin.H{"type": sub.Type, "orderNumber": sub.OrderNumber},
		}
	}
	return nil
}

// logForRecovery writes the marker-delimited structured log line that the
// log-recovery extractor scans for. This is the disaster-recovery trail of
// last resort; keep the envelope in sync with recovery.ParseLogDump.
func logForRecovery(sub *v1.Submission) {
	entry := struct {
		Timestamp string         `json:"timestamp"`
		Type      string         `json:"type"`
		Data      *v1.Submission `json:"data"`
	}{
		Timestamp: sub.Timestamp,
		Type:      "FORM_SUBMISSION",
		Data:      sub,
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		slog.Error("Failed to marshal recovery log entry", "error", err)
		return
	}

	fmt.Println(recovery.LogMarkerStart)
	fmt.Println(string(payload))
	fmt.Println(recovery.LogMarkerEnd)
}

// writeError serializes an intakeError as the JSON HTTP response.
func writeError(c *gin.Context, err *intakeError) {
	if len(err.extra) == 0 {
		c.JSON(err.statusCode, httperr.ErrorResponse{
			Error:   err.code,
			Message: err.message,
		})
		return
	}

	body := gin.H{"error": err.code, "message": err.message}
	for k, v := range err.extra {
		body[k] = v
	}
	c.JSON(err.statusCode, body)
}
