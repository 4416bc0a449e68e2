package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemoryDeck(t *testing.T) {
	deck := newMemoryDeck()
	require.Len(t, deck, 2*len(memoryFaces))

	counts := make(map[string]int)
	for i, card := range deck {
		assert.Equal(t, i, card.ID, "card IDs follow deck position")
		assert.False(t, card.IsFlipped)
		assert.False(t, card.IsMatched)
		counts[card.Face]++
	}

	for _, face := range memoryFaces {
		assert.Equal(t, 2, counts[face], "face %s must appear exactly twice", face)
	}
}

func TestStartMemory(t *testing.T) {
	s, out, _ := newTestSession()

	s.login("conn-1", "alice")
	out.reset()

	res := s.startMemory()
	require.Equal(t, accepted, res.verdict)
	assert.Equal(t, GameMemory, s.activeGame)

	started := out.broadcasts()[0].(MemoryStartedMessage)
	assert.Len(t, started.State.Cards, 16)
	assert.Zero(t, started.State.Moves)
	assert.Empty(t, started.State.Winner)
}

func TestCompleteMemory(t *testing.T) {
	t.Run("winner claim is relayed as-is", func(t *testing.T) {
		s, out, _ := newTestSession()

		s.startMemory()
		out.reset()

		res := s.completeMemory("alice")
		require.Equal(t, accepted, res.verdict)

		msg := out.broadcasts()[0].(MemoryCompletedMessage)
		assert.Equal(t, "alice", msg.Winner)
		assert.Equal(t, "alice", s.memory.Winner)
	})

	t.Run("empty winner is ignored", func(t *testing.T) {
		s, out, _ := newTestSession()

		s.startMemory()
		out.reset()

		res := s.completeMemory("")
		assert.Equal(t, ignored, res.verdict)
		assert.Empty(t, out.sent)
	})
}
