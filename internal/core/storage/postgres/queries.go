package postgres

// SQL for the submissions table.

const (
	// querySaveSubmission appends one record. ingest_seq (BIGSERIAL) gives
	// insertion order without trusting the caller-supplied id shape.
	// A plain INSERT is the atomic append: concurrent writers never race
	// on a shared list the way a read-modify-write pattern would.
	querySaveSubmission = `
		INSERT INTO submissions (
			id, created_at, type, name, email, phone,
			pet_type, pet_name, collar_size, address, message,
			order_number, language
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ingest_seq
	`

	// queryListSubmissions returns the whole collection in insertion order.
	queryListSubmissions = `
		SELECT
			id, created_at, type, name, email, phone,
			pet_type, pet_name, collar_size, address, message,
			order_number, language
		FROM submissions
		ORDER BY ingest_seq ASC
	`

	// queryDeleteAll clears the table inside the ReplaceAll transaction.
	queryDeleteAll = `DELETE FROM submissions`
)
