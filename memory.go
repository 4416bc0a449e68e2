package main

// MemoryCard is one card in the memory deck. Flip and match flags are
// maintained client-side; the server only deals the deck and relays
// the winner.
type MemoryCard struct {
	ID        int    `json:"id"`
	Face      string `json:"face"`
	IsFlipped bool   `json:"isFlipped"`
	IsMatched bool   `json:"isMatched"`
}

type MemoryState struct {
	Cards  []MemoryCard `json:"cards"`
	Moves  int          `json:"moves"`
	Winner string       `json:"winner,omitempty"`
}

func newMemoryDeck() []MemoryCard {
	faces := make([]string, 0, 2*len(memoryFaces))
	faces = append(faces, memoryFaces...)
	faces = append(faces, memoryFaces...)
	shuffle(faces)

	cards := make([]MemoryCard, len(faces))
	for i, face := range faces {
		cards[i] = MemoryCard{
			ID:   i,
			Face: face,
		}
	}

	return cards
}

// startMemory deals a fresh shuffled deck and announces it.
func (s *Session) startMemory() outcome {
	s.memory = &MemoryState{
		Cards: newMemoryDeck(),
	}

	s.out.broadcast(MemoryStartedMessage{
		Type:  "gameStartedMemory",
		State: *s.memory,
	})

	return s.setActiveGame(GameMemory)
}

// completeMemory relays a winner claim. The claim is trusted as-is;
// match adjudication happens entirely client-side.
func (s *Session) completeMemory(winner string) outcome {
	if winner == "" {
		return ignore("empty winner name")
	}

	if s.memory != nil {
		s.memory.Winner = winner
	}

	s.out.broadcast(MemoryCompletedMessage{
		Type:   "gameCompletedMemory",
		Winner: winner,
	})

	logf(s.cfg, "GAMES: %q completed the memory game in %s", winner, s.id)

	return accept()
}
