package main

import (
	"encoding/json"
)

// Inbound event names. These are the full client-facing surface of a
// session; anything else arriving on the socket is ignored.
const (
	eventLogin           = "login"
	eventMessage         = "message"
	eventGameActive      = "gameActive"
	eventNewQuestion     = "newQuestion"
	eventSubmitAnswer    = "submitAnswer"
	eventStartMemory     = "startGameMemory"
	eventCompleteMemory  = "gameCompleteMemory"
	eventStartBingo      = "startGameBingo"
	eventSyncBingo       = "syncBingoState"
	eventNewBingoBoard   = "requestNewBingoBoard"
	eventDrawBingoNumber = "drawBingoNumber"
	eventBingoComplete   = "bingoComplete"
	eventStartLogoRound  = "startLogoRoundAdmin"
	eventAnswerLogo      = "answerLogo"
	eventResetLogoGame   = "resetLogoGame"
)

// inboundEnvelope is the raw frame read off the socket. The payload is
// decoded into the matching typed struct at dispatch time, so a frame
// with the wrong shape for its type is rejected at the boundary.
type inboundEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type LoginPayload struct {
	Username string `json:"username"`
}

type ChatPayload struct {
	Text string `json:"text"`
}

type GameActivePayload struct {
	Game int `json:"game"`
}

type QuestionPayload struct {
	Question json.RawMessage `json:"question"`
}

type AnswerPayload struct {
	Answer json.RawMessage `json:"answer"`
}

type MemoryCompletePayload struct {
	Winner string `json:"winner"`
}

type BingoPlayerPayload struct {
	Username string `json:"username"`
}

type BingoCompletePayload struct {
	Username string `json:"username"`
	GameID   string `json:"gameId"`
}

type LogoStartPayload struct {
	Brand       string `json:"brand"`
	CorrectType string `json:"correctType,omitempty"`
}

type LogoAnswerPayload struct {
	Username string `json:"username"`
	RoundID  int64  `json:"roundId"`
	Choice   int    `json:"choice"`
}

// Messages sent to clients. Each carries its own type discriminator so
// clients can switch on it, same framing as the inbound side.

type UpdateUsersMessage struct {
	Type  string   `json:"type"` // "updateUsers"
	Users []string `json:"users"`
}

type ChatMessage struct {
	Type     string `json:"type"` // "message"
	Username string `json:"username"`
	Text     string `json:"text"`
}

type GameActiveMessage struct {
	Type string `json:"type"` // "gameActive"
	Game int    `json:"game"`
}

type GameStartedMessage struct {
	Type     string          `json:"type"` // "gameStarted"
	Question json.RawMessage `json:"question"`
}

type AnswerReceivedMessage struct {
	Type   string          `json:"type"` // "answerReceived"
	Answer json.RawMessage `json:"answer"`
}

type MemoryStartedMessage struct {
	Type  string      `json:"type"` // "gameStartedMemory"
	State MemoryState `json:"state"`
}

type MemoryCompletedMessage struct {
	Type   string `json:"type"` // "gameCompletedMemory"
	Winner string `json:"winner"`
}

// BingoStartedMessage is unicast; each board is private to its player.
type BingoStartedMessage struct {
	Type   string `json:"type"` // "gameStartedBingo"
	GameID string `json:"gameId"`
	Board  []int  `json:"board"`
	Drawn  []int  `json:"drawnNumbers"`
}

type BingoSyncMessage struct {
	Type   string `json:"type"`   // "bingoSyncResult"
	Status string `json:"status"` // "NO_GAME", "GAME_IN_PROGRESS", "SYNC"
	GameID string `json:"gameId,omitempty"`
	Board  []int  `json:"board,omitempty"`
	Drawn  []int  `json:"drawnNumbers,omitempty"`
}

type BingoBoardDeniedMessage struct {
	Type    string `json:"type"` // "bingoBoardDenied"
	Message string `json:"message"`
}

type BingoBoardUpdatedMessage struct {
	Type  string `json:"type"` // "bingoBoardUpdated"
	Board []int  `json:"board"`
}

type BingoNumberMessage struct {
	Type   string `json:"type"` // "bingoNumber"
	GameID string `json:"gameId"`
	Number int    `json:"number"`
	Drawn  []int  `json:"drawnNumbers"`
}

type BingoWinnerMessage struct {
	Type   string `json:"type"` // "bingoWinner"
	Winner string `json:"winner"`
	GameID string `json:"gameId"`
}

type LogoRoundMessage struct {
	Type        string       `json:"type"` // "logoRoundStarted"
	Brand       string       `json:"brand"`
	RoundID     int64        `json:"roundId"`
	Choices     []LogoChoice `json:"choices"`
	ExpiresAt   int64        `json:"expiresAt"` // unix millis
	DurationMs  int64        `json:"durationMs"`
	CorrectType string       `json:"correctType"`
}

type ScoreUpdateMessage struct {
	Type     string `json:"type"` // "scoreUpdatedLogo"
	Username string `json:"username"`
	Score    int    `json:"score"`
	Points   int    `json:"points"` // delta; 0 means informational resync
}

type LeaderboardMessage struct {
	Type    string             `json:"type"` // "logoLeaderboard"
	Entries []LeaderboardEntry `json:"entries"`
}

type LeaderboardEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

type LogoResetMessage struct {
	Type string `json:"type"` // "logoGameReset"
}
