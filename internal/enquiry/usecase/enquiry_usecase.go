package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"rcc-backend/internal/enquiry/domain"
	"rcc-backend/pkg/gmail"
)

// searchQuery matches photography-related mail and pre-filters the
// known noise senders server-side; the classifier handles the rest.
var searchQuery = strings.Join([]string{
	// Must relate to photography/business
	`(subject:(photography OR photo OR shoot OR booking OR enquiry OR inquiry OR quote OR hire OR headshot OR portrait OR event OR wedding OR brochure OR "looking for" OR marketing) OR from:(pixieset OR studio))`,
	// Exclude Gmail categories
	"-category:promotions",
	"-category:social",
	// Exclude known noise senders
	"-from:noreply",
	"-from:no-reply",
	"-from:donotreply",
	"-from:notifications",
	"-from:linkedin.com",
	"-from:amazon",
	"-from:easyjet",
	"-from:dpd",
	"-from:nhs.net",
	"-from:google.com",
	"-from:apple.com",
	"-from:paypal",
	"-from:stripe.com",
	"-from:facebook.com",
	"-from:instagram.com",
	"-from:twitter.com",
	"-from:github.com",
	"-from:vercel.com",
	"-from:canva.com",
	"-from:adobe.com",
	"-from:dropbox.com",
	"-from:taskade.com",
	"-from:manus.im",
	"-from:marketing.easyjet",
	"-from:trainline",
	"-from:kiwi.com",
	"-from:booking.com",
	"-from:airbnb",
	"-from:skyscanner",
	"-from:ryanair",
	"-from:jet2",
	"-from:tui.co.uk",
	"-from:nationalrail",
	"-from:uber",
	"-from:deliveroo",
	"-from:justeat",
	"-from:nhs",
	"-from:practiceplusgroup",
	"-from:patient.info",
	// Only recent (last 3 months)
	"newer_than:3m",
}, " ")

// maxSearchResults bounds one account's candidate set per run.
const maxSearchResults = 30

// MailSearcher is the provider boundary for one search-and-fetch round.
// *gmail.Service satisfies it; tests substitute fakes.
type MailSearcher interface {
	Search(ctx context.Context, refreshToken, query string, maxResults int) ([]gmail.RawMessage, error)
}

type EnquiryUsecase interface {
	Fetch(ctx context.Context) *domain.Result
}

type enquiryUsecase struct {
	searcher MailSearcher
	ruleset  *Ruleset
	accounts []domain.Account
}

func NewEnquiryUsecase(searcher MailSearcher, ruleset *Ruleset, accounts []domain.Account) EnquiryUsecase {
	return &enquiryUsecase{
		searcher: searcher,
		ruleset:  ruleset,
		accounts: accounts,
	}
}

// Fetch runs the full pipeline: both mailboxes concurrently, then
// classify, normalize, merge and dedup. A failed account contributes an
// empty list rather than failing the run.
func (u *enquiryUsecase) Fetch(ctx context.Context) *domain.Result {
	status := make(domain.AccountStatus, len(u.accounts))
	perAccount := make([][]domain.Message, len(u.accounts))

	var wg sync.WaitGroup
	for i, account := range u.accounts {
		status[account.Tag] = account.Connected()
		if !account.Connected() {
			continue
		}
		wg.Add(1)
		go func(i int, account domain.Account) {
			defer wg.Done()
			perAccount[i] = u.fetchAccount(ctx, account)
		}(i, account)
	}
	wg.Wait()

	var all []domain.Message
	for _, msgs := range perAccount {
		all = append(all, msgs...)
	}

	return &domain.Result{
		Emails:   mergeAndDedup(all),
		Live:     true,
		Accounts: status,
	}
}

// fetchAccount retrieves and filters one mailbox's candidates. Any
// provider error degrades this account to an empty contribution.
func (u *enquiryUsecase) fetchAccount(ctx context.Context, account domain.Account) []domain.Message {
	raw, err := u.searcher.Search(ctx, account.RefreshToken, searchQuery, maxSearchResults)
	if err != nil {
		log.Printf("[WARN] failed to fetch %s emails: %v", account.Tag, err)
		return nil
	}

	messages := make([]domain.Message, 0, len(raw))
	for _, msg := range raw {
		fromName, fromEmail := parseFrom(msg.From)

		if u.ruleset.IsSpam(fromName, fromEmail, msg.Subject, msg.Snippet) {
			continue
		}

		messages = append(messages, domain.Message{
			ID:        msg.ID,
			ThreadID:  msg.ThreadID,
			From:      fromName,
			FromEmail: fromEmail,
			Subject:   normalizeSubject(msg.Subject),
			Snippet:   truncateSnippet(msg.Snippet),
			Date:      time.UnixMilli(msg.InternalDate).UTC().Format(time.RFC3339),
			Timestamp: msg.InternalDate,
			IsUnread:  msg.Unread,
			Account:   account.Tag,
			GmailURL:  gmailURL(account.UserIndex, msg.ID),
		})
	}

	return messages
}

func gmailURL(userIndex int, messageID string) string {
	return fmt.Sprintf("https://mail.google.com/mail/u/%d/#inbox/%s", userIndex, messageID)
}
