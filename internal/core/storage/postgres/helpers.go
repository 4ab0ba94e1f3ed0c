package postgres

import (
	"database/sql"
	"fmt"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
)

// submissionArgs flattens a submission into the insert argument order.
// OrderNumber stays a nullable pointer so pre-order-only data round-trips
// as SQL NULL rather than an empty string.
func submissionArgs(sub *v1.Submission) []interface{} {
	return []interface{}{
		sub.ID,
		sub.EffectiveDate(),
		sub.Type,
		sub.Name,
		sub.Email,
		sub.Phone,
		sub.PetType,
		sub.PetName,
		sub.CollarSize,
		sub.Address,
		sub.Message,
		sub.OrderNumber,
		sub.Language,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanSubmissionRow scans one row into a Submission.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanSubmissionRow(row scanner) (*v1.Submission, error) {
	var sub v1.Submission
	var orderNumber sql.NullString

	err := row.Scan(
		&sub.ID,
		&sub.Timestamp,
		&sub.Type,
		&sub.Name,
		&sub.Email,
		&sub.Phone,
		&sub.PetType,
		&sub.PetName,
		&sub.CollarSize,
		&sub.Address,
		&sub.Message,
		&orderNumber,
		&sub.Language,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan submission row: %w", err)
	}

	if orderNumber.Valid {
		sub.OrderNumber = &orderNumber.String
	}

	return &sub, nil
}
