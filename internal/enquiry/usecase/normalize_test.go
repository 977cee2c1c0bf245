package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSubject(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Booking enquiry", "Booking enquiry"},
		{"Re: Booking enquiry", "Booking enquiry"},
		{"RE: re: Booking enquiry", "Booking enquiry"},
		{"Fwd: Booking enquiry", "Booking enquiry"},
		{"Re: RE: ***SPAM*** Booking enquiry", "Booking enquiry"},
		{"***spam*** Hello", "Hello"},
		{"Regarding your quote", "Regarding your quote"},
		{"  padded  ", "padded"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeSubject(tt.in), "input %q", tt.in)
	}
}

func TestTruncateSnippet(t *testing.T) {
	long := strings.Repeat("a", 300)
	assert.Len(t, truncateSnippet(long), 200)
	assert.Equal(t, "short", truncateSnippet("short"))
}

func TestDedupKey(t *testing.T) {
	// Case and punctuation in the subject must not split the key.
	a := dedupKey("Wedding enquiry!", "sarah@example.com")
	b := dedupKey("wedding ENQUIRY", "sarah@example.com")
	assert.Equal(t, a, b)

	// Same subject from different senders stays distinct.
	c := dedupKey("Wedding enquiry", "tom@example.com")
	assert.NotEqual(t, a, c)
}

func TestParseFrom(t *testing.T) {
	tests := []struct {
		in        string
		wantName  string
		wantEmail string
	}{
		{`"Sarah Jones" <sarah@example.com>`, "Sarah Jones", "sarah@example.com"},
		{`Sarah Jones <sarah@example.com>`, "Sarah Jones", "sarah@example.com"},
		{`sarah@example.com`, "sarah@example.com", "sarah@example.com"},
		{`<sarah@example.com>`, "sarah@example.com", "sarah@example.com"},
	}
	for _, tt := range tests {
		name, email := parseFrom(tt.in)
		assert.Equal(t, tt.wantName, name, "input %q", tt.in)
		assert.Equal(t, tt.wantEmail, email, "input %q", tt.in)
	}
}
