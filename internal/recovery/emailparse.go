package recovery

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
)

// Best-effort extraction of submissions from pasted email bodies. This is
// disaster-recovery tooling, not a mail parser: a section that doesn't
// match yields nothing, and nothing here ever returns an error.

var (
	// Email dumps are split on header-like tokens so each message body is
	// scanned independently.
	sectionSplit = regexp.MustCompile(`(?i)(?:Subject:|From:|To:|Date:|---)`)

	nameField    = regexp.MustCompile(`(?i)(?:Name|Full Name):\s*([^\n\r]+)`)
	emailField   = regexp.MustCompile(`(?i)(?:E-?mail):\s*([^\s\n\r]+@[^\s\n\r]+)`)
	phoneField   = regexp.MustCompile(`(?i)(?:Phone|Phone Number|Telephone):\s*([^\n\r]+)`)
	petTypeField = regexp.MustCompile(`(?i)(?:Pet Type|Pet|Animal):\s*([^\n\r]+)`)
	petNameField = regexp.MustCompile(`(?i)(?:Pet Name|Pet's Name):\s*([^\n\r]+)`)
	messageField = regexp.MustCompile(`(?i)(?:Message|Comments|Additional Info):\s*([^\n\r]+(?:\n[^\n\r]+)*)`)
	collarField  = regexp.MustCompile(`(?i)(?:Collar Size|Size):\s*([^\n\r]+)`)
	addressField = regexp.MustCompile(`(?i)(?:Address|Shipping Address):\s*([^\n\r]+(?:\n[^\n\r]+)*)`)
	orderField   = regexp.MustCompile(`(?i)(?:Order|Order Number|Pre-order):\s*([^\n\r]+)`)

	// Any of these tokens marks the section as German-language.
	germanTokens = []string{"hund", "katze", "nachricht", "größe"}
)

// ParseEmailDump scans raw email text and returns every submission it can
// reconstruct. Sections missing a name or email are silently dropped; that
// is expected for separators and quoted headers, not an error.
func ParseEmailDump(emailData string, now time.Time) []*v1.Submission {
	var subs []*v1.Submission
	for _, section := range sectionSplit.Split(emailData, -1) {
		if sub := extractFromSection(section, now); sub != nil {
			subs = append(subs, sub)
		}
	}
	return subs
}

func extractFromSection(section string, now time.Time) *v1.Submission {
	sub := &v1.Submission{
		// Recovered records get normalized ids; the source text carries
		// none worth trusting.
		ID:       "rec-" + uuid.NewString(),
		Date:     now.UTC().Format(time.RFC3339),
		Type:     v1.TypeEarlyAccess,
		Language: v1.LanguageEN,
	}

	if m := nameField.FindStringSubmatch(section); m != nil {
		sub.Name = strings.TrimSpace(m[1])
	}
	if m := emailField.FindStringSubmatch(section); m != nil {
		sub.Email = strings.TrimSpace(m[1])
	}
	if m := phoneField.FindStringSubmatch(section); m != nil {
		sub.Phone = strings.TrimSpace(m[1])
	}
	if m := petTypeField.FindStringSubmatch(section); m != nil {
		sub.PetType = strings.TrimSpace(m[1])
	}
	if m := petNameField.FindStringSubmatch(section); m != nil {
		sub.PetName = strings.TrimSpace(m[1])
	}
	if m := messageField.FindStringSubmatch(section); m != nil {
		sub.Message = strings.TrimSpace(m[1])
	}
	if m := collarField.FindStringSubmatch(section); m != nil {
		sub.CollarSize = strings.TrimSpace(m[1])
	}
	if m := addressField.FindStringSubmatch(section); m != nil {
		sub.Address = strings.TrimSpace(m[1])
	}
	if m := orderField.FindStringSubmatch(section); m != nil {
		n := strings.TrimSpace(m[1])
		sub.OrderNumber = &n
		sub.Type = v1.TypePreOrder
	}

	lower := strings.ToLower(section)
	if strings.Contains(lower, "pre-order") || strings.Contains(lower, "pre order") {
		sub.Type = v1.TypePreOrder
	} else if strings.Contains(lower, "contact") || strings.Contains(lower, "inquiry") {
		sub.Type = v1.TypeContact
	}

	for _, token := range germanTokens {
		if strings.Contains(lower, token) {
			sub.Language = v1.LanguageDE
			break
		}
	}

	// A section is only a submission if both identity fields survived.
	if sub.Name == "" || sub.Email == "" {
		return nil
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
