package recovery

import (
	"strings"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
)

// MergeResult is the outcome of deduplicating candidates against the
// existing collection.
type MergeResult struct {
	// ToAdd holds the genuinely new candidates, in candidate order.
	ToAdd []*v1.Submission

	// NewTotal is existing ++ ToAdd. Existing records keep their order and
	// are never edited; the merge is strictly append-only.
	NewTotal []*v1.Submission
}

// Merge computes which candidates are new. A candidate is a duplicate when
// its lower-cased email is already present, or, when byID is set, when its
// id is already present. The log-recovery path dedups by both keys because
// its ids were minted by intake; the email-recovery path has no trustworthy
// ids and dedups by email alone.
//
// Merge is deterministic and idempotent: feeding NewTotal back as existing
// with the same candidates yields an empty ToAdd.
func Merge(existing, candidates []*v1.Submission, byID bool) MergeResult {
	emails := make(map[string]struct{}, len(existing))
	ids := make(map[string]struct{})
	for _, sub := range existing {
		emails[strings.ToLower(sub.Email)] = struct{}{}
		if byID {
			ids[sub.ID] = struct{}{}
		}
	}

	result := MergeResult{
		NewTotal: append([]*v1.Submission(nil), existing...),
	}

	for _, cand := range candidates {
		email := strings.ToLower(cand.Email)
		if _, dup := emails[email]; dup {
			continue
		}
		if byID {
			if _, dup := ids[cand.ID]; dup {
				continue
			}
			ids[cand.ID] = struct{}{}
		}
		emails[email] = struct{}{}

		result.ToAdd = append(result.ToAdd, cand)
		result.NewTotal = append(result.NewTotal, cand)
	}

	return result
}
