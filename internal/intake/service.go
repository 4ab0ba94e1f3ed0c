// Package intake is the public form-submission surface: validate, persist,
// notify, respond. Persistence comes before notification and a failed email
// never rolls back a saved record.
package intake

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hauspet-lab/hauspet-intake/internal/core/storage"
	"github.com/hauspet-lab/hauspet-intake/internal/mailer"
)

type Service struct {
	store  storage.SubmissionStore
	mailer *mailer.Service

	// now is swappable for tests.
	now func() time.Time
}

func NewService(store storage.SubmissionStore, mail *mailer.Service) *Service {
	if store == nil {
		panic("intake: store must not be nil")
	}
	if mail == nil {
		panic("intake: mailer must not be nil")
	}
	return &Service{
		store:  store,
		mailer: mail,
		now:    time.Now,
	}
}

// RegisterRoutes registers the public intake endpoint.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/submit-form", s.SubmitHandler)
}
