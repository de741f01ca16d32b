package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "single mention",
			content: "thanks @alice for the tip",
			want:    []string{"alice"},
		},
		{
			name:    "mention at start",
			content: "@alice what do you think?",
			want:    []string{"alice"},
		},
		{
			name:    "multiple mentions keep order",
			content: "@bob and @alice should see this",
			want:    []string{"bob", "alice"},
		},
		{
			name:    "duplicates collapse case-insensitively",
			content: "@Alice said it, and @alice repeated it",
			want:    []string{"Alice"},
		},
		{
			name:    "email addresses are not mentions",
			content: "reach me at alice@example.com",
			want:    nil,
		},
		{
			name:    "too-short names are skipped",
			content: "hey @ab, ping @bob",
			want:    []string{"bob"},
		},
		{
			name:    "no mentions",
			content: "plain text with no references",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMentions(tt.content))
		})
	}
}
