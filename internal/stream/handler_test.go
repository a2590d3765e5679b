package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vsvipul11/ai-test-bot/internal/events"
	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

func TestMatches(t *testing.T) {
	assert.True(t, matches("", ""), "unfiltered connection sees everything")
	assert.True(t, matches("", "s1"))
	assert.True(t, matches("s1", ""), "unscoped events reach every observer")
	assert.True(t, matches("s1", "s1"))
	assert.False(t, matches("s1", "s2"))
}

func TestNewHandlerDefaultsLogger(t *testing.T) {
	h := NewHandler(events.NewBus(logging.New("error")), nil)
	assert.NotNil(t, h.logger)
}
