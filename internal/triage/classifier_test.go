package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/liorkima5-coder/CityPulseAI/internal/domain"
)

func syntheticClassifier() *Classifier {
	return NewClassifier(Keywords{
		Critical: []string{"fire", "danger"},
		Urgent:   []string{"noise", "blocking"},
		Negative: []string{"shame", "angry"},
		Positive: []string{"thanks", "excellent"},
	})
}

func TestClassifyEmptyText(t *testing.T) {
	c := syntheticClassifier()

	priority, sentiment := c.Classify("")
	assert.Equal(t, domain.TicketPriorityNormal, priority)
	assert.Equal(t, domain.SentimentNeutral, sentiment)
}

func TestClassifyCriticalAnyCasing(t *testing.T) {
	c := syntheticClassifier()

	for _, text := range []string{
		"there is a FIRE on the corner",
		"Danger near the school",
		"xxfirexx",
	} {
		priority, _ := c.Classify(text)
		assert.Equal(t, domain.TicketPriorityCritical, priority, "text: %s", text)
	}
}

func TestClassifyCriticalBeatsUrgent(t *testing.T) {
	c := syntheticClassifier()

	priority, _ := c.Classify("the noise is bad and there is danger too")
	assert.Equal(t, domain.TicketPriorityCritical, priority)
}

func TestClassifyUrgentTier(t *testing.T) {
	c := syntheticClassifier()

	priority, sentiment := c.Classify("a truck is blocking my driveway")
	assert.Equal(t, domain.TicketPriorityUrgent, priority)
	assert.Equal(t, domain.SentimentNeutral, sentiment)
}

func TestClassifySentimentIndependentOfPriority(t *testing.T) {
	c := syntheticClassifier()

	// critical and positive can coexist
	priority, sentiment := c.Classify("thanks for fixing the fire hazard")
	assert.Equal(t, domain.TicketPriorityCritical, priority)
	assert.Equal(t, domain.SentimentPositive, sentiment)
}

func TestClassifyNegativeBeatsPositive(t *testing.T) {
	c := syntheticClassifier()

	_, sentiment := c.Classify("thanks for nothing, this is a shame")
	assert.Equal(t, domain.SentimentNegative, sentiment)
}

func TestClassifyHebrewDefaults(t *testing.T) {
	c := NewClassifier(DefaultKeywords())

	// "בור" and "ילדים" are critical keywords, "מסוכן" is negative
	priority, sentiment := c.Classify("יש בור מסוכן בכניסה, ילדים בסביבה")
	assert.Equal(t, domain.TicketPriorityCritical, priority)
	assert.Equal(t, domain.SentimentNegative, sentiment)
}

func TestClassifyNoMatches(t *testing.T) {
	c := syntheticClassifier()

	priority, sentiment := c.Classify("the bench in the park is broken")
	assert.Equal(t, domain.TicketPriorityNormal, priority)
	assert.Equal(t, domain.SentimentNeutral, sentiment)
}
