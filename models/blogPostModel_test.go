package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Market Outlook 2025", "market-outlook-2025"},
		{"  Trimmed   Spaces  ", "trimmed-spaces"},
		{"Q2 Earnings: What's Next?", "q2-earnings-whats-next"},
		{"already-a-slug", "already-a-slug"},
		{"Dashes --- collapse", "dashes-collapse"},
		{"***", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.title), "title %q", tc.title)
	}
}
