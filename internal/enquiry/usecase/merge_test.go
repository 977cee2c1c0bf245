package usecase

import (
	"fmt"
	"testing"

	"rcc-backend/internal/enquiry/domain"

	"github.com/stretchr/testify/assert"
)

func TestMergeAndDedup(t *testing.T) {
	t.Run("sorts newest first", func(t *testing.T) {
		out := mergeAndDedup([]domain.Message{
			{ID: "old", Subject: "One", FromEmail: "a@example.com", Timestamp: 100},
			{ID: "new", Subject: "Two", FromEmail: "b@example.com", Timestamp: 300},
			{ID: "mid", Subject: "Three", FromEmail: "c@example.com", Timestamp: 200},
		})
		assert.Equal(t, []string{"new", "mid", "old"}, ids(out))
	})

	t.Run("newest copy wins across accounts", func(t *testing.T) {
		out := mergeAndDedup([]domain.Message{
			{ID: "personal", Account: domain.AccountPersonal, Subject: "Wedding enquiry", FromEmail: "sarah@example.com", Timestamp: 100},
			{ID: "professional", Account: domain.AccountProfessional, Subject: "Wedding enquiry!", FromEmail: "sarah@example.com", Timestamp: 200},
		})
		assert.Equal(t, []string{"professional"}, ids(out))
	})

	t.Run("same subject different sender kept", func(t *testing.T) {
		out := mergeAndDedup([]domain.Message{
			{ID: "a", Subject: "Enquiry", FromEmail: "a@example.com", Timestamp: 2},
			{ID: "b", Subject: "Enquiry", FromEmail: "b@example.com", Timestamp: 1},
		})
		assert.Len(t, out, 2)
	})

	t.Run("caps at twenty", func(t *testing.T) {
		var in []domain.Message
		for i := 0; i < 30; i++ {
			in = append(in, domain.Message{
				ID:        fmt.Sprintf("m%d", i),
				Subject:   fmt.Sprintf("Subject %d", i),
				FromEmail: fmt.Sprintf("s%d@example.com", i),
				Timestamp: int64(i),
			})
		}
		out := mergeAndDedup(in)
		assert.Len(t, out, 20)
		// The cap drops the oldest, not the newest.
		assert.Equal(t, "m29", out[0].ID)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, mergeAndDedup(nil))
	})
}

func ids(msgs []domain.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.ID
	}
	return out
}
