// Package admin exposes the operator surface: listing collected submissions
// with analytics, and sending campaign email to selected users.
package admin

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hauspet-lab/hauspet-intake/internal/core/storage"
	"github.com/hauspet-lab/hauspet-intake/internal/mailer"
)

type Service struct {
	store    storage.SubmissionStore
	mailer   *mailer.Service
	adminKey string

	// now anchors the analytics week window; swappable for tests.
	now func() time.Time
}

func NewService(store storage.SubmissionStore, mail *mailer.Service, adminKey string) *Service {
	if store == nil {
		panic("admin: store must not be nil")
	}
	if mail == nil {
		panic("admin: mailer must not be nil")
	}
	return &Service{
		store:    store,
		mailer:   mail,
		adminKey: adminKey,
		now:      time.Now,
	}
}

// RegisterRoutes registers the admin endpoints. The list and provider-email
// routes use the shared admin middleware; bulk email authenticates from its
// request body instead, which the admin frontend has always sent.
func (s *Service) RegisterRoutes(r gin.IRouter, adminAuth gin.HandlerFunc) {
	r.GET("/api/get-submissions", adminAuth, s.ListSubmissionsHandler)
	r.GET("/api/get-resend-emails", adminAuth, s.ProviderEmailsHandler)
	r.POST("/api/send-bulk-email", s.BulkEmailHandler)
}
