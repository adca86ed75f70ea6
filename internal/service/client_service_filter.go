package service

import (
	"strings"

	"github.com/opsboard/credvault/models"
)

// CategoryAll disables category filtering in FilterCredentials.
const CategoryAll models.Category = ""

// FilterCredentials returns the entries of list matching the query and
// category. The query matches as a case-insensitive substring against name
// and service URL, whitespace included; CategoryAll matches every category.
// The input slice is never modified and the result is a fresh slice, so
// repeated calls with the same arguments yield the same output regardless
// of what the caller does with previous results.
func FilterCredentials(list []models.CredentialMasked, query string, category models.Category) []models.CredentialMasked {
	needle := strings.ToLower(query)

	out := make([]models.CredentialMasked, 0, len(list))
	for _, c := range list {
		if category != CategoryAll && c.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Name), needle) &&
			!strings.Contains(strings.ToLower(c.ServiceURL), needle) {
			continue
		}
		out = append(out, c)
	}
	return out
}
