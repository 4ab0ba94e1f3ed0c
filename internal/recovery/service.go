// Package recovery reconstructs lost submissions from secondary sources:
// structured platform logs and raw email bodies. Extraction is best-effort
// by design; the merge step keeps the flow idempotent.
package recovery

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hauspet-lab/hauspet-intake/internal/core/storage"
)

type Service struct {
	store storage.SubmissionStore

	// now is swappable for tests.
	now func() time.Time
}

func NewService(store storage.SubmissionStore) *Service {
	if store == nil {
		panic("recovery: store must not be nil")
	}
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// RegisterRoutes registers the admin-gated recovery endpoints. adminAuth is
// applied per-route; these must never be reachable without a key.
func (s *Service) RegisterRoutes(r gin.IRouter, adminAuth gin.HandlerFunc) {
	r.POST("/api/recover-submissions", adminAuth, s.RecoverFromLogsHandler)
	r.POST("/api/recover-from-emails", adminAuth, s.RecoverFromEmailsHandler)
}
