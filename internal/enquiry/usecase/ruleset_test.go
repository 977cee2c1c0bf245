package usecase

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPatternsCompile(t *testing.T) {
	for _, p := range append(append([]string{}, defaultSenderPatterns...), defaultAllowSenders...) {
		_, err := regexp.Compile(p)
		assert.NoError(t, err, "pattern %q", p)
	}
	require.NotPanics(t, func() { DefaultRuleset() })
}

func TestIsSpam(t *testing.T) {
	rs := DefaultRuleset()

	tests := []struct {
		name      string
		from      string
		fromEmail string
		subject   string
		snippet   string
		spam      bool
	}{
		{
			name:      "genuine enquiry survives",
			from:      "Sarah Jones",
			fromEmail: "sarah.jones@example.com",
			subject:   "Wedding photography enquiry",
			snippet:   "Hi, we're getting married next June and love your work",
			spam:      false,
		},
		{
			name:      "keyword blocklist hits subject",
			from:      "Editing Pros",
			fromEmail: "team@example.net",
			subject:   "Clipping path service for your studio",
			snippet:   "We offer bulk discounts",
			spam:      true,
		},
		{
			name:      "keyword blocklist hits snippet",
			from:      "Trainline",
			fromEmail: "tickets@example.org",
			subject:   "Your journey",
			snippet:   "Here is your e-ticket for Saturday",
			spam:      true,
		},
		{
			name:      "keyword match is case insensitive",
			from:      "Shop",
			fromEmail: "shop@example.com",
			subject:   "UNSUBSCRIBE now",
			snippet:   "",
			spam:      true,
		},
		{
			name:      "generic info@ sender rejected",
			from:      "Venue Team",
			fromEmail: "info@somevenue.co.uk",
			subject:   "Photography booking",
			snippet:   "",
			spam:      true,
		},
		{
			name:      "own-domain info@ carve-out",
			from:      "Website Form",
			fromEmail: "info@ryanstanikk.co.uk",
			subject:   "New contact form submission",
			snippet:   "Someone asked about a portrait shoot",
			spam:      false,
		},
		{
			name:      "sender pattern matches display name too",
			from:      "ClippingPath Experts",
			fromEmail: "hello@example.com",
			subject:   "Quick question",
			snippet:   "",
			spam:      true,
		},
		{
			name:      "owner personal address excluded",
			from:      "Ryan Stanikk",
			fromEmail: "rstanikk@gmail.com",
			subject:   "Re: Wedding photography enquiry",
			snippet:   "Thanks for getting in touch",
			spam:      true,
		},
		{
			name:      "owner professional address excluded despite allow list",
			from:      "Ryan Stanikk Photography",
			fromEmail: "photography@ryanstanikk.co.uk",
			subject:   "Re: Booking",
			snippet:   "",
			spam:      true,
		},
		{
			name:      "nhs domain rejected",
			from:      "Appointments",
			fromEmail: "appointments@solent.nhs.uk",
			subject:   "Photography clinic",
			snippet:   "",
			spam:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.spam, rs.IsSpam(tt.from, tt.fromEmail, tt.subject, tt.snippet))
		})
	}
}

func TestLoadRuleset(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRuleset(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		path := writeRules(t, `{"senderPatterns": ["("]}`)
		_, err := LoadRuleset(path)
		require.Error(t, err)
	})

	t.Run("partial override keeps defaults", func(t *testing.T) {
		path := writeRules(t, `{"keywords": ["crypto airdrop"]}`)
		rs, err := LoadRuleset(path)
		require.NoError(t, err)

		assert.Equal(t, []string{"crypto airdrop"}, rs.Keywords)
		assert.Len(t, rs.SenderPatterns, len(defaultSenderPatterns))
		assert.True(t, rs.IsSpam("Bob", "bob@example.com", "Crypto Airdrop inside", ""))
		assert.False(t, rs.IsSpam("Bob", "bob@example.com", "Clipping path service", ""))
	})
}

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
