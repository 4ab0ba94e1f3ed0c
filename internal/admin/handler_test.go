package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
	"github.com/hauspet-lab/hauspet-intake/internal/analytics"
	httperr "github.com/hauspet-lab/hauspet-intake/internal/core/errors"
	"github.com/hauspet-lab/hauspet-intake/internal/core/storage/memory"
	"github.com/hauspet-lab/hauspet-intake/internal/mailer"
	"github.com/hauspet-lab/hauspet-intake/internal/middleware"
)

const testAdminKey = "test-admin-key"

var adminNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type recordingSender struct {
	mu   sync.Mutex
	sent []*mailer.Message
}

func (r *recordingSender) Send(ctx context.Context, msg *mailer.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return "email-1", nil
}

func newAdminRouter(t *testing.T, mail *mailer.Service) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	svc := NewService(store, mail, testAdminKey)
	svc.now = func() time.Time { return adminNow }

	r := gin.New()
	svc.RegisterRoutes(r, middleware.AdminKey(testAdminKey))
	return r, store
}

func seed(t *testing.T, store *memory.Store, subs ...*v1.Submission) {
	t.Helper()
	for _, sub := range subs {
		_, err := store.Append(context.Background(), sub)
		require.NoError(t, err)
	}
}

func TestListSubmissions_RequiresAdminKey(t *testing.T) {
	r, _ := newAdminRouter(t, mailer.NewWithSender(&recordingSender{}, "hello@hauspet.net"))

	req := httptest.NewRequest(http.MethodGet, "/api/get-submissions", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestListSubmissions_FormatsDefaultsAndAnalytics(t *testing.T) {
	r, store := newAdminRouter(t, mailer.NewWithSender(&recordingSender{}, "hello@hauspet.net"))

	seed(t, store,
		&v1.Submission{ID: "1", Name: "Jane Doe", Email: "jane@example.com",
			Timestamp: adminNow.Add(-time.Hour).Format(time.RFC3339)},
		&v1.Submission{ID: "2", Name: "Hans Muller", Email: "hans@example.de",
			PetType: "Hund", Type: v1.TypePreOrder,
			Timestamp: adminNow.AddDate(0, 0, -10).Format(time.RFC3339)},
		&v1.Submission{ID: "3", Name: "No Clock", Email: "noclock@example.com"},
	)

	req := httptest.NewRequest(http.MethodGet, "/api/get-submissions", nil)
	req.Header.Set("x-admin-key", testAdminKey)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Submissions []*v1.Submission   `json:"submissions"`
			Analytics   analytics.Snapshot `json:"analytics"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Len(t, body.Data.Submissions, 3)

	first := body.Data.Submissions[0]
	require.Equal(t, "N/A", first.Phone)
	require.Equal(t, "Not specified", first.PetType)
	require.Equal(t, "No message provided", first.Message)
	require.Equal(t, v1.LanguageEN, first.Language)
	require.Equal(t, first.Timestamp, first.Date)

	second := body.Data.Submissions[1]
	require.Equal(t, v1.LanguageDE, second.Language)

	// A record with no creation time at all gets the service clock.
	third := body.Data.Submissions[2]
	require.Equal(t, adminNow.Format(time.RFC3339), third.Date)

	require.Equal(t, 3, body.Data.Analytics.Total)
	require.Equal(t, 1, body.Data.Analytics.ThisWeek)
	require.Equal(t, 1, body.Data.Analytics.ByType[v1.TypePreOrder])
}

func TestListSubmissions_QueryParamKeyAccepted(t *testing.T) {
	r, _ := newAdminRouter(t, mailer.NewWithSender(&recordingSender{}, "hello@hauspet.net"))

	req := httptest.NewRequest(http.MethodGet, "/api/get-submissions?adminKey="+testAdminKey, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
}

func postBulk(t *testing.T, r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/send-bulk-email", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func bulkErrCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.Error
}

func TestBulkEmail_Validation(t *testing.T) {
	tests := []struct {
		name     string
		body     gin.H
		wantHTTP int
		wantCode string
	}{
		{
			name:     "wrong admin key",
			body:     gin.H{"adminKey": "nope", "selectedUserIds": []string{"1"}, "subject": "s", "message": "m"},
			wantHTTP: http.StatusUnauthorized,
			wantCode: httperr.CodeUnauthorized,
		},
		{
			name:     "no users selected",
			body:     gin.H{"adminKey": testAdminKey, "selectedUserIds": []string{}, "subject": "s", "message": "m"},
			wantHTTP: http.StatusBadRequest,
			wantCode: httperr.CodeNoUsersSelected,
		},
		{
			name:     "missing subject",
			body:     gin.H{"adminKey": testAdminKey, "selectedUserIds": []string{"1"}, "message": "m"},
			wantHTTP: http.StatusBadRequest,
			wantCode: httperr.CodeMissingEmailContent,
		},
		{
			name:     "unknown ids",
			body:     gin.H{"adminKey": testAdminKey, "selectedUserIds": []string{"does-not-exist"}, "subject": "s", "message": "m"},
			wantHTTP: http.StatusBadRequest,
			wantCode: httperr.CodeInvalidUserIDs,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, store := newAdminRouter(t, mailer.NewWithSender(&recordingSender{}, "hello@hauspet.net"))
			seed(t, store, &v1.Submission{ID: "1", Name: "Jane Doe", Email: "jane@example.com"})

			resp := postBulk(t, r, tc.body)
			require.Equal(t, tc.wantHTTP, resp.Code)
			require.Equal(t, tc.wantCode, bulkErrCode(t, resp))
		})
	}
}

func TestBulkEmail_NotConfigured(t *testing.T) {
	r, store := newAdminRouter(t, mailer.New("", "HausPet <hello@hauspet.net>", "hello@hauspet.net"))
	seed(t, store, &v1.Submission{ID: "1", Name: "Jane Doe", Email: "jane@example.com"})

	resp := postBulk(t, r, gin.H{
		"adminKey": testAdminKey, "selectedUserIds": []string{"1"},
		"subject": "s", "message": "m",
	})
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	require.Equal(t, httperr.CodeEmailServiceNotConfigured, bulkErrCode(t, resp))
}

func TestBulkEmail_SendsToSelectedUsersOnly(t *testing.T) {
	sender := &recordingSender{}
	r, store := newAdminRouter(t, mailer.NewWithSender(sender, "hello@hauspet.net"))

	seed(t, store,
		&v1.Submission{ID: "1", Name: "Jane Doe", Email: "jane@example.com"},
		&v1.Submission{ID: "2", Name: "John Smith", Email: "john@example.com"},
		&v1.Submission{ID: "3", Name: "Skip Me", Email: "skip@example.com"},
	)

	resp := postBulk(t, r, gin.H{
		"adminKey":        testAdminKey,
		"selectedUserIds": []string{"1", "2"},
		"subject":         "Product update",
		"message":         "Hi {name}!",
	})

	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data mailer.BulkReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, 2, body.Data.TotalSent)
	require.Equal(t, 0, body.Data.TotalFailed)

	require.Len(t, sender.sent, 2)
	for _, msg := range sender.sent {
		require.NotEqual(t, []string{"skip@example.com"}, msg.To)
	}
}

func TestProviderEmails_ReportsLimitation(t *testing.T) {
	r, _ := newAdminRouter(t, mailer.NewWithSender(&recordingSender{}, "hello@hauspet.net"))

	req := httptest.NewRequest(http.MethodGet, "/api/get-resend-emails", nil)
	req.Header.Set("x-admin-key", testAdminKey)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "recover-from-emails")
}
