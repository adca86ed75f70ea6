package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/credvault/models"
)

func filterFixture() []models.CredentialMasked {
	return []models.CredentialMasked{
		{ID: "1", Name: "Business Bank", Category: models.CategoryBanking, ServiceURL: "https://bank.example.com"},
		{ID: "2", Name: "Tax Portal", Category: models.CategoryTax, ServiceURL: "https://tax.example.gov"},
		{ID: "3", Name: "Payroll", Category: models.CategoryAccounting, ServiceURL: "https://payroll.example.com"},
		{ID: "4", Name: "bank of somewhere", Category: models.CategoryBanking},
	}
}

func TestFilterCredentials(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		category models.Category
		wantIDs  []string
	}{
		{
			name:     "no filter returns everything",
			category: CategoryAll,
			wantIDs:  []string{"1", "2", "3", "4"},
		},
		{
			name:     "query matches name case-insensitively",
			query:    "BANK",
			category: CategoryAll,
			wantIDs:  []string{"1", "4"},
		},
		{
			name:     "query matches service url",
			query:    "payroll.example",
			category: CategoryAll,
			wantIDs:  []string{"3"},
		},
		{
			name:     "category narrows the set",
			category: models.CategoryBanking,
			wantIDs:  []string{"1", "4"},
		},
		{
			name:     "query and category combine",
			query:    "business",
			category: models.CategoryBanking,
			wantIDs:  []string{"1"},
		},
		{
			// Whitespace is part of the substring, not stripped: a leading
			// space only matches a space in the name.
			name:     "leading space is a literal substring",
			query:    " bank",
			category: CategoryAll,
			wantIDs:  []string{"1"},
		},
		{
			name:     "whitespace-only query matches nothing without spaces",
			query:    "   ",
			category: CategoryAll,
			wantIDs:  []string{},
		},
		{
			name:     "no match yields empty non-nil slice",
			query:    "does not exist",
			category: CategoryAll,
			wantIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterCredentials(filterFixture(), tt.query, tt.category)
			require.NotNil(t, got)

			gotIDs := make([]string, 0, len(got))
			for _, c := range got {
				gotIDs = append(gotIDs, c.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestFilterCredentials_DoesNotMutateInput(t *testing.T) {
	input := filterFixture()
	snapshot := filterFixture()

	_ = FilterCredentials(input, "bank", models.CategoryBanking)
	assert.Equal(t, snapshot, input)

	// Same arguments, same answer, regardless of earlier calls.
	first := FilterCredentials(input, "tax", CategoryAll)
	second := FilterCredentials(input, "tax", CategoryAll)
	assert.Equal(t, first, second)
}
