// Package gmail wraps the Gmail API for the enquiry pipeline. It only
// needs search plus per-message metadata; message bodies are never
// fetched.
package gmail

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// batchSize bounds the per-batch metadata fan-out so a single pipeline
// run stays inside Gmail's per-user rate limits. Batches run
// sequentially; fetches within a batch run concurrently.
const batchSize = 10

// RawMessage is the provider-level view of one candidate message,
// before classification and normalization.
type RawMessage struct {
	ID           string
	ThreadID     string
	From         string
	Subject      string
	Snippet      string
	InternalDate int64
	Unread       bool
}

type Service struct {
	clientID     string
	clientSecret string
}

func NewService(clientID, clientSecret string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// getGmailService creates a Gmail client from a long-lived refresh
// token. The access token is minted on demand by the oauth2 transport.
func (s *Service) getGmailService(ctx context.Context, refreshToken string) (*gmailapi.Service, error) {
	token := &oauth2.Token{
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now(), // force refresh on first use
	}

	config := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	client := oauth2.NewClient(ctx, config.TokenSource(ctx, token))

	srv, err := gmailapi.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %v", err)
	}

	return srv, nil
}

// Search runs a Gmail search and resolves up to maxResults matches to
// their header metadata (From, Subject, Date headers only).
func (s *Service) Search(ctx context.Context, refreshToken, query string, maxResults int) ([]RawMessage, error) {
	srv, err := s.getGmailService(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user := "me"
	listResp, err := srv.Users.Messages.List(user).
		Q(query).
		MaxResults(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve messages: %v", err)
	}

	ids := listResp.Messages
	if len(ids) > maxResults {
		ids = ids[:maxResults]
	}

	messages := make([]RawMessage, 0, len(ids))

	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		results := make([]*RawMessage, len(batch))
		var wg sync.WaitGroup
		for i, msg := range batch {
			wg.Add(1)
			go func(i int, msgID string) {
				defer wg.Done()
				detail, err := srv.Users.Messages.Get(user, msgID).
					Format("metadata").
					MetadataHeaders("From", "Subject", "Date").
					Context(ctx).
					Do()
				if err != nil {
					// Skip messages we can't fetch; the rest of the
					// batch still counts.
					return
				}
				results[i] = convertMetadata(detail)
			}(i, msg.Id)
		}
		wg.Wait()

		for _, r := range results {
			if r != nil {
				messages = append(messages, *r)
			}
		}
	}

	return messages, nil
}

func convertMetadata(msg *gmailapi.Message) *RawMessage {
	var from, subject string
	if msg.Payload != nil {
		from = getHeader(msg.Payload.Headers, "From")
		subject = getHeader(msg.Payload.Headers, "Subject")
	}

	return &RawMessage{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		From:     from,
		Subject:  subject,
		Snippet:  msg.Snippet,
		// InternalDate is the provider-assigned delivery time in epoch
		// ms and is the authoritative ordering key; the Date header is
		// spoofable and only fetched for display.
		InternalDate: msg.InternalDate,
		Unread:       hasLabel(msg.LabelIds, "UNREAD"),
	}
}

func getHeader(headers []*gmailapi.MessagePartHeader, name string) string {
	for _, header := range headers {
		if header.Name == name {
			return header.Value
		}
	}
	return ""
}

func hasLabel(labels []string, labelID string) bool {
	for _, label := range labels {
		if label == labelID {
			return true
		}
	}
	return false
}
