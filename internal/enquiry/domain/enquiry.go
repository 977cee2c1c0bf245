package domain

// AccountTag identifies which mailbox an enquiry came from.
type AccountTag string

const (
	AccountPersonal     AccountTag = "personal"
	AccountProfessional AccountTag = "professional"
)

// Account is one of the two owner mailboxes the pipeline reads from.
// UserIndex is the Gmail web UI account index used to build deep links.
type Account struct {
	Tag          AccountTag
	Address      string
	RefreshToken string
	UserIndex    int
}

// Connected reports whether a credential is present for this account.
// A transient fetch failure does not flip this; it reflects whether a
// call was attempted at all.
func (a Account) Connected() bool {
	return a.RefreshToken != ""
}

// Message is a single surviving enquiry. Constructed fresh on every
// pipeline run and never persisted.
type Message struct {
	ID        string     `json:"id"`
	ThreadID  string     `json:"threadId"`
	From      string     `json:"from"`
	FromEmail string     `json:"fromEmail"`
	Subject   string     `json:"subject"`
	Snippet   string     `json:"snippet"`
	Date      string     `json:"date"`
	Timestamp int64      `json:"timestamp"`
	IsUnread  bool       `json:"isUnread"`
	Account   AccountTag `json:"account"`
	GmailURL  string     `json:"gmailUrl"`
}

// AccountStatus maps each mailbox tag to its connected flag.
type AccountStatus map[AccountTag]bool

// Result is the full pipeline output served by GET /api/enquiries.
type Result struct {
	Emails   []Message     `json:"emails"`
	Live     bool          `json:"live"`
	Accounts AccountStatus `json:"accounts"`
	Error    string        `json:"error,omitempty"`
}
