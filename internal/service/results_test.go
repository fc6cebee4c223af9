package service

import (
	"testing"

	"github.com/KPWithCode/gambit-mobile/internal/game"
)

func TestResultOutboxRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	seed := []game.BattleResult{
		{BattleID: "battle_a", WinnerID: "u1", Player1Score: 101, Player2Score: 40},
		{BattleID: "battle_b", WinnerID: "u2", Player1Score: 12, Player2Score: 30},
	}
	for i := range seed {
		if err := repo.CreateResult(&seed[i]); err != nil {
			t.Fatalf("seed result: %v", err)
		}
	}

	pending, err := GetUnsyncedResults(repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending results, got %d", len(pending))
	}

	if err := MarkResultSynced(repo, "battle_a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, err = GetUnsyncedResults(repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 || pending[0].BattleID != "battle_b" {
		t.Fatalf("acked result must drop out of the feed, got %+v", pending)
	}
}
