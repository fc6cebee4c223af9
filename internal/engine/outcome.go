package engine

import "github.com/KPWithCode/gambit-mobile/internal/game"

// Score a battle ends at, and the final quarter of regulation.
const (
	WinningScore = 100
	FinalQuarter = 4
)

// ShouldFinish reports whether a battle is over: either player reached
// the winning score, or regulation ran out of quarters.
func ShouldFinish(player1Score, player2Score, quarter int) bool {
	return player1Score >= WinningScore || player2Score >= WinningScore || quarter >= FinalQuarter
}

// Winner picks the winner and loser ids from final scores. A tie goes
// to player1.
func Winner(b *game.Battle) (winnerID, loserID string) {
	if b.Player1Score > b.Player2Score {
		return b.Player1ID, b.Player2ID
	}
	if b.Player2Score > b.Player1Score {
		return b.Player2ID, b.Player1ID
	}
	return b.Player1ID, b.Player2ID
}
