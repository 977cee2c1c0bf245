package usecase

import (
	"sort"

	"rcc-backend/internal/enquiry/domain"
)

// maxMerged caps the merged list served to the UI and the notifier.
const maxMerged = 20

// mergeAndDedup combines the per-account survivor lists into one ranked
// list: newest first (stable on ties), first occurrence of a dedup key
// wins, truncated to maxMerged. Pure transform, no side effects.
func mergeAndDedup(messages []domain.Message) []domain.Message {
	sorted := make([]domain.Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})

	seen := make(map[string]struct{}, len(sorted))
	deduped := make([]domain.Message, 0, len(sorted))
	for _, m := range sorted {
		key := dedupKey(m.Subject, m.FromEmail)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, m)
	}

	if len(deduped) > maxMerged {
		deduped = deduped[:maxMerged]
	}
	return deduped
}
