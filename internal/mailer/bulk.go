package mailer

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
)

// bulkWorkerCount bounds concurrent provider calls during a campaign send.
const bulkWorkerCount = 4

// BulkResult records the outcome of one recipient in a campaign send.
type BulkResult struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	Success bool   `json:"success"`
	EmailID string `json:"emailId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BulkReport summarizes a campaign send.
type BulkReport struct {
	TotalSent   int          `json:"totalSent"`
	TotalFailed int          `json:"totalFailed"`
	Results     []BulkResult `json:"results"`
}

// SendBulk sends one personalized message to each user with bounded
// concurrency. Per-recipient failures are recorded, not propagated; a
// campaign never aborts halfway because one address bounced.
func (s *Service) SendBulk(ctx context.Context, users []*v1.Submission, subject, message string) BulkReport {
	results := make([]BulkResult, len(users))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkWorkerCount)

	for i, user := range users {
		g.Go(func() error {
			msg := bulkEmail(user, subject, message)
			id, err := s.sender.Send(gctx, msg)
			if err != nil {
				slog.Error("Bulk email send failed", "to", user.Email, "error", err)
				results[i] = BulkResult{UserID: user.ID, Email: user.Email, Error: err.Error()}
				return nil
			}
			results[i] = BulkResult{UserID: user.ID, Email: user.Email, Success: true, EmailID: id}
			return nil
		})
	}

	// Workers never return errors; Wait just joins them.
	_ = g.Wait()

	report := BulkReport{Results: results}
	for _, r := range results {
		if r.Success {
			report.TotalSent++
		} else {
			report.TotalFailed++
		}
	}

	slog.Info("Bulk email completed",
		"total_sent", report.TotalSent,
		"total_failed", report.TotalFailed)

	return report
}
