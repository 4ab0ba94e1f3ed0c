package errors

// Stable machine-readable error codes surfaced to clients.
// Frontends key user-facing copy off these values; do not rename.
const (
	// Intake validation.
	CodeMissingRequiredFields = "missing_required_fields"
	CodeMissingPhone          = "missing_phone"
	CodeInvalidEmail          = "invalid_email"
	CodeInvalidName           = "invalid_name"
	CodeInvalidPhone          = "invalid_phone"

	// Authorization.
	CodeUnauthorized = "unauthorized"

	// Storage.
	CodeStorageFailed      = "storage_failed"
	CodeStorageUnavailable = "storage_unavailable"

	// Notification.
	CodeEmailSendFailed = "email_send_failed"

	// Admin surface.
	CodeFetchSubmissionsFailed    = "fetch_submissions_failed"
	CodeNoUsersSelected           = "no_users_selected"
	CodeMissingEmailContent       = "missing_email_content"
	CodeInvalidUserIDs            = "invalid_user_ids"
	CodeEmailServiceNotConfigured = "email_service_not_configured"
	CodeBulkEmailFailed           = "bulk_email_failed"
	CodeMissingConfig             = "missing_config"
	CodeInternalError             = "internal_error"
)

// ErrorResponse is the JSON body for every failed request.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
