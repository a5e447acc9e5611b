package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreate(t *testing.T) {
	t.Parallel()

	s := NewStore(100)

	c := s.GetOrCreate("ses-1", "user-1")
	require.NotNil(t, c)
	assert.Equal(t, "ses-1", c.SessionID)
	assert.Equal(t, 1, s.Count())

	// Same id returns the same context.
	again := s.GetOrCreate("ses-1", "user-1")
	assert.Same(t, c, again)
	assert.Equal(t, 1, s.Count())
}

func TestAppendExchange(t *testing.T) {
	t.Parallel()

	s := NewStore(100)

	// First append implicitly creates the context.
	s.AppendExchange("ses-1", "user-1", "who is speaking?", "Ten speakers are on the programme.")
	assert.Equal(t, 1, s.Count())

	history := s.History("ses-1")
	require.Len(t, history, 2)
	assert.Equal(t, "user", string(history[0].Role))
	assert.Equal(t, "model", string(history[1].Role))
	assert.Equal(t, "who is speaking?", history[0].Content[0].Text)
}

func TestAppendExchange_BoundsHistory(t *testing.T) {
	t.Parallel()

	s := NewStore(6)

	for i := range 10 {
		s.AppendExchange("ses-1", "user-1", fmt.Sprintf("question %d", i), fmt.Sprintf("answer %d", i))
	}

	history := s.History("ses-1")
	require.Len(t, history, 6)
	// Window starts at a user turn and keeps the newest exchanges.
	assert.Equal(t, "user", string(history[0].Role))
	assert.Equal(t, "question 7", history[0].Content[0].Text)
	assert.Equal(t, "answer 9", history[5].Content[0].Text)
}

func TestHistory_UnknownSession(t *testing.T) {
	t.Parallel()

	s := NewStore(100)
	assert.Nil(t, s.History("nope"))
	assert.Equal(t, 0, s.Count())
}

func TestHistory_ReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewStore(100)
	s.AppendExchange("ses-1", "user-1", "hi", "hello")

	h := s.History("ses-1")
	h[0] = nil

	require.NotNil(t, s.History("ses-1")[0])
}

func TestStore_Concurrent(t *testing.T) {
	t.Parallel()

	s := NewStore(100)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("ses-%d", i%4)
			for j := range 20 {
				s.AppendExchange(id, "user", fmt.Sprintf("q%d", j), fmt.Sprintf("a%d", j))
				_ = s.History(id)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 4, s.Count())
}
