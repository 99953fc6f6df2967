package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/ticket-assignment/internal/domain"
)

func TestClassifyKeywordTable(t *testing.T) {
	classifier := NewClassifier(DefaultRules(), "IT")

	tests := []struct {
		name   string
		ticket domain.Ticket
		want   string
	}{
		{
			name:   "wifi issue routes to IT",
			ticket: domain.Ticket{Description: "Cannot connect to campus WiFi", Category: "Network"},
			want:   "IT",
		},
		{
			name:   "air conditioning routes to facilities",
			ticket: domain.Ticket{Description: "Air conditioning not working in Room A301"},
			want:   "FACILITIES",
		},
		{
			name:   "keyword in title",
			ticket: domain.Ticket{Title: "Printer out of toner"},
			want:   "IT",
		},
		{
			name:   "keyword in category only",
			ticket: domain.Ticket{Title: "Broken", Category: "plumbing"},
			want:   "FACILITIES",
		},
		{
			name:   "case insensitive",
			ticket: domain.Ticket{Description: "PASSWORD reset needed"},
			want:   "IT",
		},
		{
			name:   "no match falls back to default",
			ticket: domain.Ticket{Title: "General question", Description: "Where do I park?"},
			want:   "IT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(&tt.ticket))
		})
	}
}

func TestClassifyOrderingDecidesPriority(t *testing.T) {
	rules := []Rule{
		{Keyword: "network", UnitCode: "IT"},
		{Keyword: "room", UnitCode: "FACILITIES"},
	}
	classifier := NewClassifier(rules, "HELPDESK")

	// Both keywords occur; the earlier rule must win.
	ticket := &domain.Ticket{Description: "network outage in room 12"}
	assert.Equal(t, "IT", classifier.Classify(ticket))

	reversed := NewClassifier([]Rule{rules[1], rules[0]}, "HELPDESK")
	assert.Equal(t, "FACILITIES", reversed.Classify(ticket))
}

func TestClassifyDeterministic(t *testing.T) {
	classifier := NewClassifier(DefaultRules(), "IT")
	ticket := &domain.Ticket{Title: "Email and heating both broken"}

	first := classifier.Classify(ticket)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, classifier.Classify(ticket))
	}
}

func TestClassifySkipsBlankKeywords(t *testing.T) {
	classifier := NewClassifier([]Rule{
		{Keyword: "  ", UnitCode: "BROKEN"},
		{Keyword: "door", UnitCode: "FACILITIES"},
	}, "IT")

	assert.Equal(t, "FACILITIES", classifier.Classify(&domain.Ticket{Title: "door stuck"}))
	assert.Equal(t, "IT", classifier.Classify(&domain.Ticket{Title: "anything else"}))
}
