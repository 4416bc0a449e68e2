package main

import (
	"sort"
	"time"
)

const (
	logoTypeReal = "real"
	logoTypeFake = "fake"
)

// LogoChoice is one of the two images offered in a round.
type LogoChoice struct {
	Image  string `json:"image"`
	IsReal bool   `json:"isReal"`
}

// logoRound is one timed round of the logo quiz. Expiry is lazy: a
// round simply becomes unanswerable once the clock passes expiresAt,
// with no background timer closing it.
type logoRound struct {
	brand       string
	roundID     int64
	startedAt   time.Time
	expiresAt   time.Time
	choices     []LogoChoice
	correctType string
	answered    map[string]bool
}

// LogoState holds the current round plus the scoring ledger. The
// ledger outlives rounds and is only ever cleared by an explicit
// reset.
type LogoState struct {
	round  *logoRound
	scores map[string]int
}

func newLogoState() *LogoState {
	return &LogoState{
		scores: make(map[string]int),
	}
}

// addPoints applies a delta to a player's score, flooring at zero.
func (l *LogoState) addPoints(username string, points int) int {
	score := l.scores[username] + points
	if score < 0 {
		score = 0
	}
	l.scores[username] = score
	return score
}

// leaderboard returns all scored names by descending score, ties in
// stable name order, truncated to limit.
func (l *LogoState) leaderboard(limit int) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(l.scores))
	for name, score := range l.scores {
		entries = append(entries, LeaderboardEntry{
			Username: name,
			Score:    score,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Username < entries[j].Username
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries
}

func (s *Session) leaderboardMessage() LeaderboardMessage {
	return LeaderboardMessage{
		Type:    "logoLeaderboard",
		Entries: s.logo.leaderboard(s.cfg.leaderboardSize),
	}
}

// startLogoRound begins a new round for a catalog brand, replacing any
// prior round. The two choices are shuffled once here, so every player
// sees the same ordering for the whole round.
func (s *Session) startLogoRound(brand, correctType string) outcome {
	pair, ok := logoCatalog[brand]
	if !ok {
		return ignore("unknown brand")
	}

	if correctType != logoTypeFake {
		correctType = logoTypeReal
	}

	choices := []LogoChoice{
		{Image: pair.real, IsReal: true},
		{Image: pair.fake, IsReal: false},
	}
	shuffle(choices)

	now := s.now()
	round := &logoRound{
		brand:       brand,
		roundID:     now.UnixMilli(),
		startedAt:   now,
		expiresAt:   now.Add(s.cfg.roundDuration),
		choices:     choices,
		correctType: correctType,
		answered:    make(map[string]bool),
	}
	s.logo.round = round

	logf(s.cfg, "GAMES: Logo round %d (%s) started in %s", round.roundID, brand, s.id)

	s.out.broadcast(LogoRoundMessage{
		Type:        "logoRoundStarted",
		Brand:       round.brand,
		RoundID:     round.roundID,
		Choices:     round.choices,
		ExpiresAt:   round.expiresAt.UnixMilli(),
		DurationMs:  s.cfg.roundDuration.Milliseconds(),
		CorrectType: round.correctType,
	})
	s.out.broadcast(s.leaderboardMessage())

	return s.setActiveGame(GameLogoQuiz)
}

// answerLogo adjudicates one answer. Stale, late, out-of-range, and
// duplicate answers are dropped without any observable effect; each
// name scores at most once per round.
func (s *Session) answerLogo(username string, roundID int64, choice int) outcome {
	round := s.logo.round

	switch {
	case round == nil:
		return ignore("no active round")
	case roundID != round.roundID:
		return ignore("stale round id")
	case s.now().After(round.expiresAt):
		return ignore("round expired")
	case choice < 0 || choice >= len(round.choices):
		return ignore("choice out of range")
	case round.answered[username]:
		return ignore("already answered")
	}

	round.answered[username] = true

	picked := round.choices[choice]
	correct := (round.correctType == logoTypeReal && picked.IsReal) ||
		(round.correctType == logoTypeFake && !picked.IsReal)

	points := -1
	if correct {
		// Faster answers earn more: 3 points within 2s, 2 within 4s,
		// 1 thereafter.
		elapsed := s.now().Sub(round.startedAt)
		switch {
		case elapsed <= 2*time.Second:
			points = 3
		case elapsed <= 4*time.Second:
			points = 2
		default:
			points = 1
		}
	}

	score := s.logo.addPoints(username, points)

	s.out.broadcast(ScoreUpdateMessage{
		Type:     "scoreUpdatedLogo",
		Username: username,
		Score:    score,
		Points:   points,
	})
	s.out.broadcast(s.leaderboardMessage())

	return accept()
}

// resetLogo clears the ledger and the current round.
func (s *Session) resetLogo() outcome {
	s.logo = newLogoState()

	s.out.broadcast(LogoResetMessage{
		Type: "logoGameReset",
	})
	s.out.broadcast(s.leaderboardMessage())

	return accept()
}
