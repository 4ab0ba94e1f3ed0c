package recovery

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
)

// Markers emitted around every structured submission log line at intake
// time. Recovery looks for these in pasted platform logs.
const (
	LogMarkerStart = "SUBMISSION_LOG_START"
	LogMarkerEnd   = "SUBMISSION_LOG_END"

	// logEntryType declares a log entry as a form submission. Entries with
	// any other type between the markers are ignored.
	logEntryType = "FORM_SUBMISSION"
)

// logLinePrefix matches the timestamp/deployment-id prefix the hosting
// platform prepends to each captured log line.
var logLinePrefix = regexp.MustCompile(`^[\d\-T:Z\s]+[a-zA-Z0-9\-]+\s*`)

// logEntry is the envelope written at intake time (see intake.Service).
type logEntry struct {
	Timestamp string         `json:"timestamp"`
	Type      string         `json:"type"`
	Data      *v1.Submission `json:"data"`
}

// ParseLogDump scans operational log text for marker-delimited submission
// entries. Machine-generated input makes this extractor stricter than the
// email one: payloads must parse as JSON and declare themselves form
// submissions. Malformed blocks are skipped with a warning, never fatal.
func ParseLogDump(logData string, now time.Time) []*v1.Submission {
	var subs []*v1.Submission

	capturing := false
	var buf strings.Builder

	for _, line := range strings.Split(logData, "\n") {
		if strings.Contains(line, LogMarkerStart) {
			capturing = true
			buf.Reset()
			continue
		}

		if strings.Contains(line, LogMarkerEnd) {
			if capturing && buf.Len() > 0 {
				if sub := parseLogPayload(buf.String(), now); sub != nil {
					subs = append(subs, sub)
				}
			}
			capturing = false
			buf.Reset()
			continue
		}

		if capturing {
			buf.WriteString(logLinePrefix.ReplaceAllString(line, ""))
		}
	}

	return subs
}

func parseLogPayload(payload string, now time.Time) *v1.Submission {
	var entry logEntry
	if err := json.Unmarshal([]byte(payload), &entry); err != nil {
		slog.Warn("Skipping malformed submission log block", "error", err)
		return nil
	}
	if entry.Type != logEntryType || entry.Data == nil {
		return nil
	}

	sub := entry.Data
	if sub.ID == "" {
		sub.ID = "rec-" + uuid.NewString()
	}
	if sub.Date == "" {
		switch {
		case entry.Timestamp != "":
			sub.Date = entry.Timestamp
		case sub.Timestamp != "":
			sub.Date = sub.Timestamp
		default:
			sub.Date = now.UTC().Format(time.RFC3339)
		}
	}
	if sub.Type == "" {
		sub.Type = v1.TypeEarlyAccess
	}
	if sub.Language == "" {
		sub.Language = v1.LanguageEN
	}
	if sub.Phone == "" {
		sub.Phone = "N/A"
	}
	if sub.PetType == "" {
		sub.PetType = "Not specified"
	}
	if sub.Message == "" {
		sub.Message = "No message provided"
	}

	return sub
}
