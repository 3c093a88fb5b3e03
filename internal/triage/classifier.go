// Package triage classifies free-text complaint descriptions into a priority
// tier and a sentiment using configurable keyword vocabularies.
package triage

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/liorkima5-coder/CityPulseAI/internal/domain"
)

// Keywords holds the vocabularies for each classification tier. Matching is
// lowercased substring containment; a keyword anywhere in the text triggers
// its tier.
type Keywords struct {
	Critical []string `json:"critical"`
	Urgent   []string `json:"urgent"`
	Negative []string `json:"negative"`
	Positive []string `json:"positive"`
}

// DefaultKeywords returns the production vocabulary used by the municipal
// intake form. The lists are Hebrew because that is the language residents
// file complaints in.
func DefaultKeywords() Keywords {
	return Keywords{
		Critical: []string{"סכנה", "דחוף", "דם", "פצוע", "בור", "חשמל", "שריפה", "ליפול", "ילדים", "מיידי"},
		Urgent:   []string{"מפריע", "רעש", "חוסם", "לכלוך", "תקוע"},
		Negative: []string{"בושה", "נמאס", "חוצפה", "מסוכן", "כועס", "ביזיון", "תתביישו", "סיוט"},
		Positive: []string{"תודה", "כל הכבוד", "מצוין", "יישר כוח", "עזרתם"},
	}
}

// LoadKeywords reads a keyword vocabulary from a JSON file.
func LoadKeywords(path string) (Keywords, error) {
	var kw Keywords
	content, err := os.ReadFile(path)
	if err != nil {
		return kw, err
	}
	if err := json.Unmarshal(content, &kw); err != nil {
		return kw, err
	}
	return kw, nil
}

// Classifier derives priority and sentiment from complaint text. It holds no
// mutable state and is safe for concurrent use.
type Classifier struct {
	critical []string
	urgent   []string
	negative []string
	positive []string
}

// NewClassifier builds a classifier over the given vocabulary. Keywords are
// lowercased once at construction.
func NewClassifier(kw Keywords) *Classifier {
	return &Classifier{
		critical: lowerAll(kw.Critical),
		urgent:   lowerAll(kw.Urgent),
		negative: lowerAll(kw.Negative),
		positive: lowerAll(kw.Positive),
	}
}

// Classify returns the priority and sentiment for the given text. Empty text
// yields the normal/neutral defaults. The two checks are independent: a text
// can be critical and positive at once.
func (c *Classifier) Classify(text string) (domain.TicketPriority, domain.TicketSentiment) {
	if text == "" {
		return domain.TicketPriorityNormal, domain.SentimentNeutral
	}

	lower := strings.ToLower(text)

	priority := domain.TicketPriorityNormal
	if containsAny(lower, c.critical) {
		priority = domain.TicketPriorityCritical
	} else if containsAny(lower, c.urgent) {
		priority = domain.TicketPriorityUrgent
	}

	sentiment := domain.SentimentNeutral
	if containsAny(lower, c.negative) {
		sentiment = domain.SentimentNegative
	} else if containsAny(lower, c.positive) {
		sentiment = domain.SentimentPositive
	}

	return priority, sentiment
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if word != "" && strings.Contains(text, word) {
			return true
		}
	}
	return false
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		out = append(out, strings.ToLower(strings.TrimSpace(word)))
	}
	return out
}
