// Package validate turns a raw intake payload into a canonical submission
// record, or rejects it with a stable error code.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
	httperr "github.com/hauspet-lab/hauspet-intake/internal/core/errors"
)

// Error is a tagged validation failure. Code is one of the stable
// machine-readable codes; Message is the user-facing text.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Letters and spaces only, 2-50 chars. This intentionally rejects
	// hyphens, apostrophes, and non-Latin letters; the frontend enforces
	// the same rule, so loosening it here would desynchronize the two.
	namePattern = regexp.MustCompile(`^[a-zA-Z\s]{2,50}$`)

	phonePattern = regexp.MustCompile(`^[+]?[0-9\s\-()]{7,20}$`)
)

// Submission validates req and builds the canonical record. Rules are
// applied in a fixed order and the first failure wins; callers get exactly
// one error code per rejected payload.
//
// now supplies the creation clock so callers (and tests) control id and
// timestamp generation.
func Submission(req *v1.SubmissionRequest, now time.Time) (*v1.Submission, *Error) {
	if req.Name == "" || req.Email == "" {
		return nil, &Error{
			Code:    httperr.CodeMissingRequiredFields,
			Message: "Name and email are required",
		}
	}

	subType := req.Type
	if subType == "" {
		subType = v1.TypeEarlyAccess
	}

	if subType == v1.TypeEarlyAccess && req.Phone == "" {
		return nil, &Error{
			Code:    httperr.CodeMissingPhone,
			Message: "Phone number is required for early access applications",
		}
	}

	if !emailPattern.MatchString(req.Email) {
		return nil, &Error{
			Code:    httperr.CodeInvalidEmail,
			Message: "Please enter a valid email address",
		}
	}

	if !namePattern.MatchString(strings.TrimSpace(req.Name)) {
		return nil, &Error{
			Code:    httperr.CodeInvalidName,
			Message: "Please enter a valid name (2-50 characters, letters only)",
		}
	}

	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		return nil, &Error{
			Code:    httperr.CodeInvalidPhone,
			Message: "Please enter a valid phone number",
		}
	}

	sub := &v1.Submission{
		ID:         strconv.FormatInt(now.UnixMilli(), 10),
		Timestamp:  now.UTC().Format(time.RFC3339),
		Type:       subType,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		PetType:    req.PetType,
		PetName:    req.PetName,
		CollarSize: req.CollarSize,
		Address:    req.Address,
		Message:    req.Message,
	}
	if req.OrderNumber != "" {
		n := req.OrderNumber
		sub.OrderNumber = &n
	}
	sub.Language = sub.EffectiveLanguage()

	return sub, nil
}
