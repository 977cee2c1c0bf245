package usecase

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Ruleset holds the spam heuristics as data so the lists can be
// extended or replaced without touching the classifier logic.
type Ruleset struct {
	// Keywords is a lowercase substring blocklist applied to
	// subject+snippet.
	Keywords []string

	// SenderPatterns reject on a match against either the sender
	// address or the display name.
	SenderPatterns []*regexp.Regexp

	// AllowSenders are checked before SenderPatterns. RE2 has no
	// negative lookahead, so the info@<own-domain> carve-out lives
	// here instead of inside a sender pattern.
	AllowSenders []*regexp.Regexp

	// OwnerAddresses are the owner's own mailboxes; the owner's
	// outgoing replies must never surface as enquiries.
	OwnerAddresses []string
}

// rulesFile is the JSON shape accepted from ENQUIRY_RULES_FILE.
type rulesFile struct {
	Keywords       []string `json:"keywords"`
	SenderPatterns []string `json:"senderPatterns"`
	AllowSenders   []string `json:"allowSenders"`
	OwnerAddresses []string `json:"ownerAddresses"`
}

var defaultKeywords = []string{
	"clipping path", "clipping mask", "image editing service", "photo editing service",
	"background removal service", "retouching service", "outsource", "bulk editing",
	"real estate editing", "product photo editing", "photo enhancement service",
	"ecommerce photo", "ghost mannequin", "color correction service",
	"unsubscribe", "newsletter", "webinar", "free trial", "limited offer",
	"seo service", "web design service", "social media management",
	"verification code", "password reset", "security alert",
	"delivery notification", "your order", "your parcel", "tracking number",
	"booking confirmation", "your trip", "e-ticket", "flight confirmation",
	"train ticket", "travel insurance", "boarding pass", "itinerary",
	"your booking is confirmed", "return trip", "departing",
	"hospital", "appointment reminder", "medical", "gp surgery", "practice plus",
	"wellsoon", "peyronie",
}

var defaultSenderPatterns = []string{
	`(?i)clippingpath`, `(?i)editingservice`, `(?i)outsource`, `(?i)offshore`,
	`(?i)fiverr`, `(?i)upwork`, `(?i)freelancer\.com`,
	`(?i)@outlook\.in$`, `(?i)@yahoo\.in$`,
	`(?i)marketing@`, `(?i)promo@`, `(?i)sales@`, `(?i)info@`,
	`(?i)trainline`, `(?i)kiwi\.com`, `(?i)booking\.com`, `(?i)skyscanner`,
	`(?i)airbnb`, `(?i)ryanair`, `(?i)jet2`, `(?i)nationalrail`,
	`(?i)nhs\.uk`, `(?i)nhs\.net`, `(?i)practiceplusgroup`, `(?i)patient\.info`,
}

var defaultAllowSenders = []string{
	`(?i)info@ryanstanikk`,
}

var defaultOwnerAddresses = []string{
	"rstanikk@gmail.com",
	"photography@ryanstanikk.co.uk",
}

// DefaultRuleset returns the production heuristics.
func DefaultRuleset() *Ruleset {
	rs, err := buildRuleset(defaultKeywords, defaultSenderPatterns, defaultAllowSenders, defaultOwnerAddresses)
	if err != nil {
		// Default patterns are compile-checked by tests; this cannot
		// happen at runtime.
		panic(err)
	}
	return rs
}

// LoadRuleset reads a ruleset override from a JSON file. Absent fields
// fall back to the defaults.
func LoadRuleset(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var rf rulesFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	if rf.Keywords == nil {
		rf.Keywords = defaultKeywords
	}
	if rf.SenderPatterns == nil {
		rf.SenderPatterns = defaultSenderPatterns
	}
	if rf.AllowSenders == nil {
		rf.AllowSenders = defaultAllowSenders
	}
	if rf.OwnerAddresses == nil {
		rf.OwnerAddresses = defaultOwnerAddresses
	}

	return buildRuleset(rf.Keywords, rf.SenderPatterns, rf.AllowSenders, rf.OwnerAddresses)
}

func buildRuleset(keywords, senderPatterns, allowSenders, ownerAddresses []string) (*Ruleset, error) {
	rs := &Ruleset{
		Keywords:       make([]string, len(keywords)),
		OwnerAddresses: make([]string, len(ownerAddresses)),
	}
	for i, kw := range keywords {
		rs.Keywords[i] = strings.ToLower(kw)
	}
	for i, addr := range ownerAddresses {
		rs.OwnerAddresses[i] = strings.ToLower(addr)
	}

	for _, p := range senderPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("sender pattern %q: %w", p, err)
		}
		rs.SenderPatterns = append(rs.SenderPatterns, re)
	}
	for _, p := range allowSenders {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("allow pattern %q: %w", p, err)
		}
		rs.AllowSenders = append(rs.AllowSenders, re)
	}

	return rs, nil
}

// IsSpam decides whether a candidate message is noise rather than a
// genuine enquiry. Rules run in order and short-circuit on the first
// match; if all miss, the message fails open toward "not spam".
func (r *Ruleset) IsSpam(from, fromEmail, subject, snippet string) bool {
	combined := strings.ToLower(subject + " " + snippet)

	for _, kw := range r.Keywords {
		if strings.Contains(combined, kw) {
			return true
		}
	}

	allowed := false
	for _, re := range r.AllowSenders {
		if re.MatchString(fromEmail) || re.MatchString(from) {
			allowed = true
			break
		}
	}
	if !allowed {
		for _, re := range r.SenderPatterns {
			if re.MatchString(fromEmail) || re.MatchString(from) {
				return true
			}
		}
	}

	// The owner's own mail (outgoing replies) is never an enquiry,
	// allow-listed sender or not.
	lowerEmail := strings.ToLower(fromEmail)
	for _, addr := range r.OwnerAddresses {
		if strings.Contains(lowerEmail, addr) {
			return true
		}
	}

	return false
}
