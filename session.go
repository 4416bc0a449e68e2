package main

import (
	"encoding/json"
	"time"
)

// Game identifies one of the four mutually exclusive game modes. The
// numeric values are what travel on the wire in gameActive events.
type Game int

const (
	GameQuestion Game = iota + 1
	GameMemory
	GameBingo
	GameLogoQuiz
)

func (g Game) valid() bool {
	return g >= GameQuestion && g <= GameLogoQuiz
}

// anonymousName is used for events arriving before login completes.
const anonymousName = "Anonymous"

type verdict int

const (
	accepted verdict = iota
	denied
	ignored
)

func (v verdict) String() string {
	switch v {
	case accepted:
		return "accepted"
	case denied:
		return "denied"
	default:
		return "ignored"
	}
}

// outcome is what every session handler returns: handlers are total
// over their input, mapping bad input to a denied or ignored outcome
// rather than an error.
type outcome struct {
	verdict verdict
	reason  string
}

func accept() outcome {
	return outcome{verdict: accepted}
}

func deny(reason string) outcome {
	return outcome{verdict: denied, reason: reason}
}

func ignore(reason string) outcome {
	return outcome{verdict: ignored, reason: reason}
}

// sender delivers outbound messages to one connection or to all of
// them. The hub implements it over its websocket clients; tests
// implement it with a recorder.
type sender interface {
	broadcast(msg any)
	unicast(connID string, msg any)
}

// Session is the authoritative state machine for one game session:
// who is present, which game is active, and the per-game sub-state.
// All mutation happens on the owning hub's run loop, one inbound
// event at a time, so nothing in here needs its own lock.
type Session struct {
	cfg *Config
	id  string
	out sender
	now func() time.Time

	// connection ID -> display name; the identity registry
	users map[string]string

	activeGame Game
	question   json.RawMessage
	memory     *MemoryState
	bingo      *BingoState
	logo       *LogoState
}

func newSession(cfg *Config, id string, out sender) *Session {
	return &Session{
		cfg:   cfg,
		id:    id,
		out:   out,
		now:   time.Now,
		users: make(map[string]string),
		logo:  newLogoState(),
	}
}

// resolve maps a connection ID to its display name. Events can arrive
// before login completes (chat races the login frame), so unresolved
// connections degrade to a sentinel name instead of failing.
func (s *Session) resolve(connID string) string {
	if name, ok := s.users[connID]; ok {
		return name
	}
	return anonymousName
}

func (s *Session) roster() []string {
	names := make([]string, 0, len(s.users))
	for _, name := range s.users {
		names = append(names, name)
	}
	return names
}

// login records (or overwrites) the display name for a connection,
// announces the new roster, and resynchronizes the joiner with the
// in-progress state a continuously-connected client would have.
func (s *Session) login(connID, username string) outcome {
	if username == "" {
		return ignore("empty username")
	}

	s.users[connID] = username
	logf(s.cfg, "GAMES: %q logged in to %s", username, s.id)

	s.out.broadcast(UpdateUsersMessage{
		Type:  "updateUsers",
		Users: s.roster(),
	})

	s.resync(connID, username)

	return accept()
}

// resync pushes current state to a single joining or reconnecting
// connection. There is no event replay log; each sub-state carries
// enough denormalized state to answer "where are we right now".
func (s *Session) resync(connID, username string) {
	if !s.activeGame.valid() {
		return
	}

	s.out.unicast(connID, GameActiveMessage{
		Type: "gameActive",
		Game: int(s.activeGame),
	})

	// A player who refreshed mid-bingo resumes with an unchanged board
	// and the full draw history.
	if s.activeGame == GameBingo && s.bingo != nil && s.bingo.active {
		if board, ok := s.bingo.boards[username]; ok {
			s.out.unicast(connID, BingoStartedMessage{
				Type:   "gameStartedBingo",
				GameID: s.bingo.gameID,
				Board:  board,
				Drawn:  s.bingo.drawnCopy(),
			})
		}
	}

	if s.activeGame == GameLogoQuiz && s.logo.round != nil {
		round := s.logo.round
		s.out.unicast(connID, LogoRoundMessage{
			Type:        "logoRoundStarted",
			Brand:       round.brand,
			RoundID:     round.roundID,
			Choices:     round.choices,
			ExpiresAt:   round.expiresAt.UnixMilli(),
			DurationMs:  s.cfg.roundDuration.Milliseconds(),
			CorrectType: round.correctType,
		})
		// Zero delta marks this as informational, not a scoring event.
		s.out.unicast(connID, ScoreUpdateMessage{
			Type:     "scoreUpdatedLogo",
			Username: username,
			Score:    s.logo.scores[username],
			Points:   0,
		})
		s.out.unicast(connID, s.leaderboardMessage())
	}
}

// disconnect removes the connection's identity and announces the
// updated roster. Removing an unknown connection is a no-op.
func (s *Session) disconnect(connID string) outcome {
	name, known := s.users[connID]
	delete(s.users, connID)

	if known {
		logf(s.cfg, "GAMES: %q disconnected from %s", name, s.id)
	}

	s.out.broadcast(UpdateUsersMessage{
		Type:  "updateUsers",
		Users: s.roster(),
	})

	return accept()
}

// chat relays a message to everyone under the sender's resolved name.
func (s *Session) chat(connID, text string) outcome {
	s.out.broadcast(ChatMessage{
		Type:     "message",
		Username: s.resolve(connID),
		Text:     text,
	})

	return accept()
}

// setActiveGame switches the live game mode and announces it. Setting
// the already-active mode is a no-op beyond the repeated broadcast.
// Previous sub-state is kept, frozen, so late viewers can still be
// told what was last active.
func (s *Session) setActiveGame(game Game) outcome {
	if !game.valid() {
		return ignore("unknown game mode")
	}

	s.activeGame = game
	s.out.broadcast(GameActiveMessage{
		Type: "gameActive",
		Game: int(game),
	})

	return accept()
}
