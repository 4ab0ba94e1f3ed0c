package storage

import (
	"context"
	"errors"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
)

// ErrUnavailable is returned when the backing store cannot be reached.
// Callers must surface this as a failed request, never fabricate success.
var ErrUnavailable = errors.New("submission store unavailable")

// SubmissionStore is the single record-store abstraction. One backend is
// selected at startup via config and injected everywhere; nothing re-derives
// a store per call.
//
// Append must be atomic at the storage layer: two concurrent intake requests
// must never lose a record to a read-modify-write race. Backends either
// append natively (SQL INSERT, Redis RPUSH) or retry optimistically.
type SubmissionStore interface {
	// Append durably adds one record and returns its id.
	Append(ctx context.Context, sub *v1.Submission) (string, error)

	// ListAll returns the full current collection in insertion order.
	ListAll(ctx context.Context) ([]*v1.Submission, error)

	// ReplaceAll atomically swaps the entire collection. Only the recovery
	// merge flow calls this, and only with a superset of the existing
	// records.
	ReplaceAll(ctx context.Context, subs []*v1.Submission) error

	// Durable reports whether writes survive a process restart. Responses
	// built on a non-durable backend must say so.
	Durable() bool

	// Ping verifies connectivity to the backend.
	Ping(ctx context.Context) error
}
