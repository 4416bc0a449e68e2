package main

import (
	"encoding/json"
)

// The question game is a pass-through: the server stores and rebroadcasts
// opaque payloads, and answers are adjudicated by a human.

func (s *Session) startQuestion(question json.RawMessage) outcome {
	if len(question) == 0 {
		return ignore("empty question")
	}

	s.question = question

	s.out.broadcast(GameStartedMessage{
		Type:     "gameStarted",
		Question: question,
	})

	return s.setActiveGame(GameQuestion)
}

func (s *Session) submitAnswer(answer json.RawMessage) outcome {
	if len(answer) == 0 {
		return ignore("empty answer")
	}

	s.out.broadcast(AnswerReceivedMessage{
		Type:   "answerReceived",
		Answer: answer,
	})

	return accept()
}
