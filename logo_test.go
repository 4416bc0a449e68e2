package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// choiceIndex returns the index of the real or fake image in the
// current round.
func choiceIndex(s *Session, real bool) int {
	for i, c := range s.logo.round.choices {
		if c.IsReal == real {
			return i
		}
	}
	return -1
}

func TestStartLogoRound(t *testing.T) {
	t.Run("broadcasts round and leaderboard, switches mode", func(t *testing.T) {
		s, out, clock := newTestSession()

		res := s.startLogoRound("Apple", "real")
		require.Equal(t, accepted, res.verdict)
		assert.Equal(t, GameLogoQuiz, s.activeGame)

		round := out.broadcasts()[0].(LogoRoundMessage)
		assert.Equal(t, "Apple", round.Brand)
		assert.Equal(t, clock.current.UnixMilli(), round.RoundID)
		assert.Equal(t, clock.current.Add(10*time.Second).UnixMilli(), round.ExpiresAt)
		assert.Equal(t, int64(10000), round.DurationMs)
		assert.Equal(t, logoTypeReal, round.CorrectType)
		require.Len(t, round.Choices, 2)
		assert.NotEqual(t, round.Choices[0].IsReal, round.Choices[1].IsReal)

		_, ok := out.broadcasts()[1].(LeaderboardMessage)
		assert.True(t, ok)
	})

	t.Run("unknown brand is a silent no-op", func(t *testing.T) {
		s, out, _ := newTestSession()

		res := s.startLogoRound("Umbrella Corp", "real")
		assert.Equal(t, ignored, res.verdict)
		assert.Empty(t, out.sent)
		assert.Nil(t, s.logo.round)
	})

	t.Run("correct type defaults to real", func(t *testing.T) {
		s, _, _ := newTestSession()

		s.startLogoRound("Nike", "")
		assert.Equal(t, logoTypeReal, s.logo.round.correctType)
	})

	t.Run("new round replaces the old one and clears answers", func(t *testing.T) {
		s, _, clock := newTestSession()

		s.startLogoRound("Apple", "real")
		s.answerLogo("alice", s.logo.round.roundID, choiceIndex(s, true))
		clock.advance(time.Second)

		s.startLogoRound("Pepsi", "fake")
		assert.Equal(t, "Pepsi", s.logo.round.brand)
		assert.Empty(t, s.logo.round.answered)
	})
}

func TestAnswerLogoSpeedTiers(t *testing.T) {
	cases := []struct {
		name    string
		elapsed time.Duration
		points  int
	}{
		{"3 points within 2s", 1900 * time.Millisecond, 3},
		{"2 points within 4s", 2100 * time.Millisecond, 2},
		{"1 point after 4s", 4100 * time.Millisecond, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, out, clock := newTestSession()

			s.startLogoRound("Apple", "real")
			roundID := s.logo.round.roundID
			out.reset()

			clock.advance(tc.elapsed)
			res := s.answerLogo("alice", roundID, choiceIndex(s, true))
			require.Equal(t, accepted, res.verdict)

			update := out.broadcasts()[0].(ScoreUpdateMessage)
			assert.Equal(t, tc.points, update.Points)
			assert.Equal(t, tc.points, update.Score)
			assert.Equal(t, tc.points, s.logo.scores["alice"])
		})
	}

	t.Run("rejected past expiry", func(t *testing.T) {
		s, out, clock := newTestSession()

		s.startLogoRound("Apple", "real")
		roundID := s.logo.round.roundID
		out.reset()

		clock.advance(10*time.Second + time.Millisecond)
		res := s.answerLogo("alice", roundID, choiceIndex(s, true))
		assert.Equal(t, ignored, res.verdict)
		assert.Empty(t, out.sent)
		assert.Zero(t, s.logo.scores["alice"])
	})
}

func TestAnswerLogoAdjudication(t *testing.T) {
	t.Run("wrong answer costs a point, floored at zero", func(t *testing.T) {
		s, out, clock := newTestSession()

		s.startLogoRound("Apple", "real")
		out.reset()

		clock.advance(3 * time.Second)
		res := s.answerLogo("bob", s.logo.round.roundID, choiceIndex(s, false))
		require.Equal(t, accepted, res.verdict)

		update := out.broadcasts()[0].(ScoreUpdateMessage)
		assert.Equal(t, -1, update.Points)
		assert.Zero(t, update.Score, "score must not go negative")
		assert.Zero(t, s.logo.scores["bob"])
	})

	t.Run("repeated wrong answers across rounds never go negative", func(t *testing.T) {
		s, _, _ := newTestSession()

		for i := 0; i < 3; i++ {
			s.startLogoRound("Apple", "real")
			s.answerLogo("bob", s.logo.round.roundID, choiceIndex(s, false))
		}
		assert.Zero(t, s.logo.scores["bob"])
	})

	t.Run("fake as correct type flips adjudication", func(t *testing.T) {
		s, _, _ := newTestSession()

		s.startLogoRound("Apple", "fake")
		res := s.answerLogo("alice", s.logo.round.roundID, choiceIndex(s, false))
		require.Equal(t, accepted, res.verdict)
		assert.Equal(t, 3, s.logo.scores["alice"])
	})

	t.Run("each name answers at most once per round", func(t *testing.T) {
		s, out, _ := newTestSession()

		s.startLogoRound("Apple", "real")
		roundID := s.logo.round.roundID
		idx := choiceIndex(s, true)

		require.Equal(t, accepted, s.answerLogo("alice", roundID, idx).verdict)
		out.reset()

		for i := 0; i < 5; i++ {
			res := s.answerLogo("alice", roundID, idx)
			assert.Equal(t, ignored, res.verdict)
		}
		assert.Empty(t, out.sent)
		assert.Equal(t, 3, s.logo.scores["alice"])
	})

	t.Run("stale round id is ignored", func(t *testing.T) {
		s, out, clock := newTestSession()

		s.startLogoRound("Apple", "real")
		stale := s.logo.round.roundID

		clock.advance(time.Second)
		s.startLogoRound("Nike", "real")
		out.reset()

		res := s.answerLogo("alice", stale, 0)
		assert.Equal(t, ignored, res.verdict)
		assert.Empty(t, out.sent)
	})

	t.Run("out-of-range choice is ignored", func(t *testing.T) {
		s, out, _ := newTestSession()

		s.startLogoRound("Apple", "real")
		roundID := s.logo.round.roundID
		out.reset()

		assert.Equal(t, ignored, s.answerLogo("alice", roundID, 2).verdict)
		assert.Equal(t, ignored, s.answerLogo("alice", roundID, -1).verdict)
		assert.Empty(t, out.sent)
		assert.Empty(t, s.logo.round.answered, "rejected answers must not consume the attempt")
	})

	t.Run("no round active is ignored", func(t *testing.T) {
		s, out, _ := newTestSession()

		res := s.answerLogo("alice", 12345, 0)
		assert.Equal(t, ignored, res.verdict)
		assert.Empty(t, out.sent)
	})
}

func TestLogoRoundScenario(t *testing.T) {
	// Round on Apple with the real image correct: alice answers right
	// at 1.5s for 3 points, bob picks the fake at 3s and floors at 0.
	s, out, clock := newTestSession()

	s.login("conn-1", "alice")
	s.login("conn-2", "bob")
	s.startLogoRound("Apple", "real")
	roundID := s.logo.round.roundID
	out.reset()

	clock.advance(1500 * time.Millisecond)
	require.Equal(t, accepted, s.answerLogo("alice", roundID, choiceIndex(s, true)).verdict)

	aliceUpdate := out.broadcasts()[0].(ScoreUpdateMessage)
	assert.Equal(t, 3, aliceUpdate.Points)
	assert.Equal(t, 3, aliceUpdate.Score)
	out.reset()

	clock.advance(1500 * time.Millisecond)
	require.Equal(t, accepted, s.answerLogo("bob", roundID, choiceIndex(s, false)).verdict)

	bobUpdate := out.broadcasts()[0].(ScoreUpdateMessage)
	assert.Equal(t, -1, bobUpdate.Points)
	assert.Zero(t, bobUpdate.Score)

	board := out.broadcasts()[1].(LeaderboardMessage)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, LeaderboardEntry{Username: "alice", Score: 3}, board.Entries[0])
	assert.Equal(t, LeaderboardEntry{Username: "bob", Score: 0}, board.Entries[1])
}

func TestLeaderboard(t *testing.T) {
	t.Run("sorted by descending score, names break ties", func(t *testing.T) {
		s, _, _ := newTestSession()

		s.logo.scores["carol"] = 4
		s.logo.scores["alice"] = 9
		s.logo.scores["dave"] = 4
		s.logo.scores["bob"] = 7

		entries := s.logo.leaderboard(10)
		assert.Equal(t, []LeaderboardEntry{
			{Username: "alice", Score: 9},
			{Username: "bob", Score: 7},
			{Username: "carol", Score: 4},
			{Username: "dave", Score: 4},
		}, entries)
	})

	t.Run("truncated to the configured size", func(t *testing.T) {
		s, _, _ := newTestSession()
		s.cfg.leaderboardSize = 2

		s.logo.scores["alice"] = 3
		s.logo.scores["bob"] = 2
		s.logo.scores["carol"] = 1

		msg := s.leaderboardMessage()
		assert.Len(t, msg.Entries, 2)
	})
}

func TestResetLogo(t *testing.T) {
	s, out, _ := newTestSession()

	s.startLogoRound("Apple", "real")
	s.answerLogo("alice", s.logo.round.roundID, choiceIndex(s, true))
	require.NotEmpty(t, s.logo.scores)
	out.reset()

	res := s.resetLogo()
	require.Equal(t, accepted, res.verdict)
	assert.Empty(t, s.logo.scores)
	assert.Nil(t, s.logo.round)

	_, ok := out.broadcasts()[0].(LogoResetMessage)
	assert.True(t, ok)

	board := out.broadcasts()[1].(LeaderboardMessage)
	assert.Empty(t, board.Entries)
}
