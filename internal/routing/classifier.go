package routing

import (
	"strings"

	"github.com/spec-kit/ticket-assignment/internal/domain"
)

// Rule maps a keyword to the unit code that should handle matching
// tickets. Rules are evaluated in slice order; earlier rules win.
type Rule struct {
	Keyword  string
	UnitCode string
}

// Classifier maps ticket free text to a unit code. The rule table is
// an ordered slice so match priority is an explicit contract rather
// than map iteration order.
type Classifier struct {
	rules       []Rule
	defaultCode string
}

// NewClassifier builds a classifier over the given ordered rules.
// Keywords are matched case-insensitively as substrings; defaultCode
// is returned when nothing matches.
func NewClassifier(rules []Rule, defaultCode string) *Classifier {
	normalized := make([]Rule, 0, len(rules))
	for _, r := range rules {
		keyword := strings.ToLower(strings.TrimSpace(r.Keyword))
		if keyword == "" {
			continue
		}
		normalized = append(normalized, Rule{Keyword: keyword, UnitCode: r.UnitCode})
	}
	return &Classifier{rules: normalized, defaultCode: defaultCode}
}

// Classify returns the unit code for the first rule whose keyword
// occurs in the ticket's title, description or category. Pure function
// over the ticket text and the static table.
func (c *Classifier) Classify(ticket *domain.Ticket) string {
	haystack := strings.ToLower(ticket.Title + " " + ticket.Description + " " + ticket.Category)
	for _, rule := range c.rules {
		if strings.Contains(haystack, rule.Keyword) {
			return rule.UnitCode
		}
	}
	return c.defaultCode
}

// DefaultCode returns the fallback unit code.
func (c *Classifier) DefaultCode() string {
	return c.defaultCode
}

// DefaultRules is the stock keyword table. Order matters: more
// specific keywords come before generic ones.
func DefaultRules() []Rule {
	return []Rule{
		{Keyword: "wifi", UnitCode: "IT"},
		{Keyword: "network", UnitCode: "IT"},
		{Keyword: "password", UnitCode: "IT"},
		{Keyword: "printer", UnitCode: "IT"},
		{Keyword: "software", UnitCode: "IT"},
		{Keyword: "email", UnitCode: "IT"},
		{Keyword: "laptop", UnitCode: "IT"},
		{Keyword: "computer", UnitCode: "IT"},
		{Keyword: "air conditioning", UnitCode: "FACILITIES"},
		{Keyword: "heating", UnitCode: "FACILITIES"},
		{Keyword: "plumbing", UnitCode: "FACILITIES"},
		{Keyword: "electrical", UnitCode: "FACILITIES"},
		{Keyword: "furniture", UnitCode: "FACILITIES"},
		{Keyword: "cleaning", UnitCode: "FACILITIES"},
		{Keyword: "room", UnitCode: "FACILITIES"},
	}
}
