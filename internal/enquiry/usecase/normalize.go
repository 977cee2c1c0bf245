package usecase

import (
	"regexp"
	"strings"
)

// subjectPrefixes strips stacked reply/forward/spam-tag prefixes, e.g.
// "Re: RE: ***SPAM*** Booking enquiry" -> "Booking enquiry".
var subjectPrefixes = regexp.MustCompile(`(?i)^(re:\s*|fwd:\s*|\*\*\*spam\*\*\*\s*)+`)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// fromHeader splits `"Display Name" <addr@example.com>` into its parts.
var fromHeader = regexp.MustCompile(`^"?([^"<]*)"?\s*<?([^>]*)>?$`)

func normalizeSubject(subject string) string {
	return strings.TrimSpace(subjectPrefixes.ReplaceAllString(subject, ""))
}

func truncateSnippet(snippet string) string {
	if len(snippet) > 200 {
		return snippet[:200]
	}
	return snippet
}

// dedupKey conflates "same enquiry" with "same normalized subject from
// the same sender". Two genuinely distinct enquiries with identical
// subject lines will merge; that is the product's accepted behaviour,
// not a bug.
func dedupKey(subject, fromEmail string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(subject), "") + "-" + fromEmail
}

// parseFrom extracts a display name and address from a From header.
// Malformed headers fall back to the raw value for both.
func parseFrom(header string) (name, email string) {
	m := fromHeader.FindStringSubmatch(header)
	if m == nil {
		return header, header
	}
	name = strings.TrimSpace(m[1])
	email = strings.TrimSpace(m[2])
	// Bare addresses land entirely in the name group; angle-only
	// headers land entirely in the email group.
	if email == "" {
		email = name
	}
	if name == "" {
		name = email
	}
	return name, email
}
