// Package analytics computes the derived summary counts shown in the admin
// panel. Snapshots are recomputed on every call and never persisted.
package analytics

import (
	"time"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
)

// Snapshot is a point-in-time aggregate over the submission collection.
type Snapshot struct {
	Total      int            `json:"total"`
	ByType     map[string]int `json:"byType"`
	ByLanguage map[string]int `json:"byLanguage"`
	ByPetType  map[string]int `json:"byPetType"`
	ThisWeek   int            `json:"thisWeek"`
}

// petTypeNotSpecified labels records whose pet type was never captured.
const petTypeNotSpecified = "Not specified"

// Compute aggregates subs into a Snapshot. The "this week" window is the
// trailing 7 days anchored at now. Records with unparseable dates still
// count everywhere except the weekly window.
func Compute(subs []*v1.Submission, now time.Time) Snapshot {
	snap := Snapshot{
		ByType:     make(map[string]int),
		ByLanguage: make(map[string]int),
		ByPetType:  make(map[string]int),
	}

	weekAgo := now.AddDate(0, 0, -7)

	for _, sub := range subs {
		snap.Total++

		subType := sub.Type
		if subType == "" {
			subType = v1.TypeEarlyAccess
		}
		snap.ByType[subType]++

		snap.ByLanguage[sub.EffectiveLanguage()]++

		petType := sub.PetType
		if petType == "" {
			petType = petTypeNotSpecified
		}
		snap.ByPetType[petType]++

		if ts, err := time.Parse(time.RFC3339, sub.EffectiveDate()); err == nil {
			if !ts.Before(weekAgo) && !ts.After(now) {
				snap.ThisWeek++
			}
		}
	}

	return snap
}
