package matchmaking

import (
	"log"

	"github.com/iamasit07/connect4-arena/internal/service/game"
)

// SessionCreator starts a session for a pairing.
type SessionCreator interface {
	CreateSession(player1, player2 game.Conn) *game.GameSession
}

// MatchMakingListener starts a session for every match until the queue is
// closed.
func MatchMakingListener(queue *MatchmakingQueue, sm SessionCreator) {
	for match := range queue.MatchChannel {
		session := sm.CreateSession(match.Player1, match.Player2)
		if match.IsBot() {
			log.Printf("[MATCHMAKING] Match started against computer with game ID %s", session.GameID)
		} else {
			log.Printf("[MATCHMAKING] Match started between two players with game ID %s", session.GameID)
		}
	}
	log.Println("[MATCHMAKING] Queue closed, listener exiting")
}
