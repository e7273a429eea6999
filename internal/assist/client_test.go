package assist

import (
	"strings"
	"testing"

	"gotest.tools/assert"

	"github.com/team2shop/storefront/config"
)

func TestMockChatIsDeterministic(t *testing.T) {
	c := NewClient(config.AssistConfig{Mock: true})

	msgs := []Message{
		{Role: "user", Content: "Does it ship internationally?"},
	}
	a, err := c.Chat(msgs, "p-3")
	assert.NilError(t, err)
	b, err := c.Chat(msgs, "p-3")
	assert.NilError(t, err)
	assert.DeepEqual(t, a, b)

	assert.Equal(t, "assistant", a.Role)
	assert.Assert(t, strings.Contains(a.Content, "p-3"))
	assert.Assert(t, strings.Contains(a.Content, "Does it ship internationally?"))
}

func TestMockChatTruncatesLongQuestions(t *testing.T) {
	c := NewClient(config.AssistConfig{Mock: true})

	long := strings.Repeat("why ", 60)
	reply, err := c.Chat([]Message{{Role: "user", Content: long}}, "")
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(reply.Content, "n/a"))
	assert.Assert(t, strings.Contains(reply.Content, "..."))
	assert.Assert(t, !strings.Contains(reply.Content, long))
}

func TestEmptyEndpointFallsBackToMock(t *testing.T) {
	c := NewClient(config.AssistConfig{Mock: false})
	reply, err := c.Chat(nil, "1")
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(reply.Content, "Mock Mode"))
}
