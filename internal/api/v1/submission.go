package v1

// Submission types. Keep in sync with the admin frontend's expectations:
// the JSON field names are part of the public wire contract.

// SubmissionType classifies what a visitor asked for.
const (
	TypeEarlyAccess = "early-access"
	TypePreOrder    = "pre-order"
	TypeContact     = "contact"
)

// Language codes inferred for a submission.
const (
	LanguageEN = "EN"
	LanguageDE = "DE"
)

// Submission is the canonical record of one user-originated expression of
// interest (early access application, pre-order, or contact inquiry).
//
// Records are immutable once created. The only bulk operation that touches
// existing records is the recovery merge, which appends new records and
// never edits old ones in place.
type Submission struct {
	// ID is unique within the store. Intake mints a millisecond-epoch
	// string; recovered records carry a "rec-" prefixed UUID when the
	// source text had no id to preserve.
	ID string `json:"id"`

	// Timestamp is the creation time as an RFC3339 string, set once.
	Timestamp string `json:"timestamp"`

	// Date mirrors Timestamp for the admin view, which historically read
	// the recovery-side field name.
	Date string `json:"date,omitempty"`

	Type string `json:"type"`

	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	PetType    string `json:"petType"`
	PetName    string `json:"petName"`
	CollarSize string `json:"collarSize"`
	Address    string `json:"address"`
	Message    string `json:"message"`

	// OrderNumber is set for pre-orders only; null otherwise.
	OrderNumber *string `json:"orderNumber"`

	Language string `json:"language,omitempty"`
}

// SubmissionRequest is the raw intake payload before validation.
// All fields arrive as free-form strings from the public form.
type SubmissionRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	PetType     string `json:"petType"`
	PetName     string `json:"petName"`
	CollarSize  string `json:"collarSize"`
	Address     string `json:"address"`
	Message     string `json:"message"`
	Type        string `json:"type"`
	OrderNumber string `json:"orderNumber"`
}

// EffectiveDate returns the best available creation time for the record,
// preferring Timestamp over the recovery-side Date alias.
func (s *Submission) EffectiveDate() string {
	if s.Timestamp != "" {
		return s.Timestamp
	}
	return s.Date
}

// EffectiveLanguage returns the record's language, inferring German from a
// German pet type when the field was never set. Defaults to EN.
func (s *Submission) EffectiveLanguage() string {
	if s.Language != "" {
		return s.Language
	}
	if s.PetType == "Hund" || s.PetType == "Katze" {
		return LanguageDE
	}
	return LanguageEN
}
