package main

import (
	"fmt"
	"slices"
)

const (
	bingoMaxNumber = 75
	bingoBoardSize = 25
)

// Bingo sync statuses returned to requester-driven resync calls.
const (
	bingoStatusNoGame     = "NO_GAME"
	bingoStatusInProgress = "GAME_IN_PROGRESS"
	bingoStatusSync       = "SYNC"
)

// BingoState holds one bingo game. Boards are assigned to the players
// known at start time and, once any number has been drawn, are
// immutable for the rest of the game.
type BingoState struct {
	gameID string
	drawn  []int
	boards map[string][]int
	active bool
}

func (b *BingoState) drawnCopy() []int {
	return slices.Clone(b.drawn)
}

// newBingoBoard draws 25 unique numbers from 1..75 without
// replacement.
func newBingoBoard() []int {
	pool := make([]int, bingoMaxNumber)
	for i := range pool {
		pool[i] = i + 1
	}
	shuffle(pool)

	return pool[:bingoBoardSize:bingoBoardSize]
}

// startBingo begins a new bingo game, replacing any previous one.
// Every currently-known player gets a fresh board, pushed to their
// connection only; boards are private, so this is never a broadcast.
// Players joining after this point get no board for this game.
func (s *Session) startBingo() outcome {
	state := &BingoState{
		gameID: fmt.Sprintf("%04d", 1000+randInt(9000)),
		boards: make(map[string][]int, len(s.users)),
		active: true,
	}

	for connID, name := range s.users {
		board, ok := state.boards[name]
		if !ok {
			board = newBingoBoard()
			state.boards[name] = board
		}
		s.out.unicast(connID, BingoStartedMessage{
			Type:   "gameStartedBingo",
			GameID: state.gameID,
			Board:  board,
			Drawn:  []int{},
		})
	}

	s.bingo = state
	logf(s.cfg, "GAMES: Bingo game %s started in %s with %d boards", state.gameID, s.id, len(state.boards))

	return s.setActiveGame(GameBingo)
}

// syncBingo is the requester-driven reconciliation path, for clients
// that missed the push on login (e.g. a race on initial connection).
func (s *Session) syncBingo(connID, username string) outcome {
	if s.activeGame != GameBingo || s.bingo == nil || !s.bingo.active {
		s.out.unicast(connID, BingoSyncMessage{
			Type:   "bingoSyncResult",
			Status: bingoStatusNoGame,
		})
		return accept()
	}

	board, ok := s.bingo.boards[username]
	if !ok {
		// Joined after the game started; no board was dealt.
		s.out.unicast(connID, BingoSyncMessage{
			Type:   "bingoSyncResult",
			Status: bingoStatusInProgress,
			GameID: s.bingo.gameID,
		})
		return accept()
	}

	s.out.unicast(connID, BingoSyncMessage{
		Type:   "bingoSyncResult",
		Status: bingoStatusSync,
		GameID: s.bingo.gameID,
		Board:  board,
		Drawn:  s.bingo.drawnCopy(),
	})

	return accept()
}

// requestNewBoard replaces a player's board, but only while no number
// has been drawn; regenerating later would let a player discard an
// unfavorable board mid-game.
func (s *Session) requestNewBoard(connID, username string) outcome {
	if s.bingo == nil || !s.bingo.active {
		s.out.unicast(connID, BingoBoardDeniedMessage{
			Type:    "bingoBoardDenied",
			Message: "No bingo game is running.",
		})
		return deny("no active bingo game")
	}

	if len(s.bingo.drawn) > 0 {
		s.out.unicast(connID, BingoBoardDeniedMessage{
			Type:    "bingoBoardDenied",
			Message: "Numbers have already been drawn; boards are locked.",
		})
		return deny("draws in progress")
	}

	board := newBingoBoard()
	s.bingo.boards[username] = board

	s.out.unicast(connID, BingoBoardUpdatedMessage{
		Type:  "bingoBoardUpdated",
		Board: board,
	})

	return accept()
}

// drawBingoNumber draws the next number and announces it together with
// the full draw history. Draws are reject-and-resample against the
// history, with a hard stop once all 75 numbers are out.
func (s *Session) drawBingoNumber() outcome {
	if s.bingo == nil || !s.bingo.active {
		return ignore("no active bingo game")
	}

	if len(s.bingo.drawn) >= bingoMaxNumber {
		return ignore("all numbers drawn")
	}

	number := 1 + randInt(bingoMaxNumber)
	for slices.Contains(s.bingo.drawn, number) {
		number = 1 + randInt(bingoMaxNumber)
	}

	s.bingo.drawn = append(s.bingo.drawn, number)

	s.out.broadcast(BingoNumberMessage{
		Type:   "bingoNumber",
		GameID: s.bingo.gameID,
		Number: number,
		Drawn:  s.bingo.drawnCopy(),
	})

	return accept()
}

// completeBingo ends the game and announces the winner. The claim is
// not checked against the winner's board or the draw history; the
// client is trusted.
func (s *Session) completeBingo(username string) outcome {
	if s.bingo == nil || !s.bingo.active {
		return ignore("no active bingo game")
	}

	s.bingo.active = false

	s.out.broadcast(BingoWinnerMessage{
		Type:   "bingoWinner",
		Winner: username,
		GameID: s.bingo.gameID,
	})

	logf(s.cfg, "GAMES: %q won bingo game %s in %s", username, s.bingo.gameID, s.id)

	return accept()
}
