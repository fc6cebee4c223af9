package service

import (
	"testing"

	"github.com/KPWithCode/gambit-mobile/internal/game"
)

// Cards with extreme stats make the Bernoulli draw deterministic:
// a stat of 100 always succeeds, a stat of 0 always fails.
func newTestBattle() *game.Battle {
	return &game.Battle{
		BattleID:        "battle_test",
		Player1ID:       "p1",
		Player2ID:       "p2",
		Player1Username: "Ava",
		Player2Username: "Ben",
		Player1Deck: game.Deck{
			{ID: "ace", Name: "Ace Guard", Offense: 100, Speed: 100, ThreePoint: 100},
			{ID: "brick", Name: "Brick Hands", Offense: 0, Speed: 0, ThreePoint: 0},
		},
		Player2Deck: game.Deck{
			{ID: "ace2", Name: "Twin Ace", Offense: 100, Speed: 100, ThreePoint: 100},
		},
		Quarter:     1,
		CurrentTurn: "p1",
		Sport:       "basketball",
		Status:      game.StatusInProgress,
	}
}

func seedBattle(t *testing.T, repo *fakeRepo, b *game.Battle) {
	t.Helper()
	if err := repo.CreateBattle(b); err != nil {
		t.Fatalf("seed battle: %v", err)
	}
}

func TestSubmitAction_BattleNotFound(t *testing.T) {
	repo := newFakeRepo()
	_, err := SubmitAction(repo, ActionRequest{BattleID: "nope", PlayerID: "p1", Action: game.ActionPostUp, CardID: "ace"})
	if err != ErrBattleNotFound {
		t.Fatalf("expected ErrBattleNotFound, got %v", err)
	}
}

func TestSubmitAction_NotYourTurnLeavesStateUntouched(t *testing.T) {
	repo := newFakeRepo()
	b := newTestBattle()
	seedBattle(t, repo, b)

	_, err := SubmitAction(repo, ActionRequest{BattleID: b.BattleID, PlayerID: "p2", Action: game.ActionPostUp, CardID: "ace2"})
	if err != ErrNotYourTurn {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if b.Player1Score != 0 || b.Player2Score != 0 {
		t.Fatalf("scores must not change on a rejected action")
	}
	if b.CurrentTurn != "p1" {
		t.Fatalf("turn must not flip on a rejected action")
	}
	if len(repo.moves) != 0 {
		t.Fatalf("no move may be logged for a rejected action")
	}
}

func TestSubmitAction_CardNotFound(t *testing.T) {
	repo := newFakeRepo()
	b := newTestBattle()
	seedBattle(t, repo, b)

	_, err := SubmitAction(repo, ActionRequest{BattleID: b.BattleID, PlayerID: "p1", Action: game.ActionPostUp, CardID: "ghost"})
	if err != ErrCardNotFound {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestSubmitAction_FinishedBattleRejected(t *testing.T) {
	repo := newFakeRepo()
	b := newTestBattle()
	b.Status = game.StatusFinished
	seedBattle(t, repo, b)

	_, err := SubmitAction(repo, ActionRequest{BattleID: b.BattleID, PlayerID: "p1", Action: game.ActionPostUp, CardID: "ace"})
	if err != ErrBattleFinished {
		t.Fatalf("expected ErrBattleFinished, got %v", err)
	}
}

func TestSubmitAction_ThreePointScoresAndFlipsTurn(t *testing.T) {
	repo := newFakeRepo()
	b := newTestBattle()
	seedBattle(t, repo, b)

	res, err := SubmitAction(repo, ActionRequest{BattleID: b.BattleID, PlayerID: "p1", Action: game.ActionThreePoint, CardID: "ace", CardName: "Ace Guard"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.ActionSuccess || res.PointsScored != 3 {
		t.Fatalf("expected guaranteed 3-point make, got success=%v points=%d", res.ActionSuccess, res.PointsScored)
	}
	if b.Player1Score != 3 {
		t.Fatalf("expected player1 score 3, got %d", b.Player1Score)
	}
	if b.CurrentTurn != "p2" {
		t.Fatalf("expected turn to flip to p2, got %s", b.CurrentTurn)
	}
	if len(repo.moves) != 1 {
		t.Fatalf("expected exactly one move logged, got %d", len(repo.moves))
	}
	move := repo.moves[0]
	if move.Action != game.ActionThreePoint || move.PointsScored != 3 || !move.Success {
		t.Fatalf("unexpected move log entry: %+v", move)
	}
	if move.Description != "Ace Guard scored 3 points!" {
		t.Fatalf("unexpected move description: %q", move.Description)
	}
}

func TestSubmitAction_MissScoresNothing(t *testing.T) {
	repo := newFakeRepo()
	b := newTestBattle()
	seedBattle(t, repo, b)

	res, err := SubmitAction(repo, ActionRequest{BattleID: b.BattleID, PlayerID: "p1", Action: game.ActionFastBreak, CardID: "brick", CardName: "Brick Hands"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ActionSuccess || res.PointsScored != 0 {
		t.Fatalf("expected guaranteed miss, got success=%v points=%d", res.ActionSuccess, res.PointsScored)
	}
	if b.Player1Score != 0 {
		t.Fatalf("score must stay 0 after a miss, got %d", b.Player1Score)
	}
	if b.CurrentTurn != "p2" {
		t.Fatalf("turn flips even on a miss")
	}
	if repo.moves[0].Description != "Brick Hands missed the shot" {
		t.Fatalf("unexpected miss description: %q", repo.moves[0].Description)
	}
}

func TestSubmitAction_EffectBoostAppliesAndDecrements(t *testing.T) {
	repo := newFakeRepo()
	b := newTestBattle()
	// Half stats plus a +50 boost puts the three-pointer at certainty.
	b.Player1Deck = game.Deck{{ID: "mid", Name: "Mid Range", ThreePoint: 50}}
	seedBattle(t, repo, b)

	running := &game.ActiveEffect{BattleID: b.BattleID, PlayerID: "p1", StatBoosts: game.StatBoosts{ThreePoint: 50}, TurnsLeft: 2}
	spent := &game.ActiveEffect{BattleID: b.BattleID, PlayerID: "p1", StatBoosts: game.StatBoosts{ThreePoint: 50}, TurnsLeft: 0}
	if err := repo.CreateEffect(running); err != nil {
		t.Fatalf("seed effect: %v", err)
	}
	if err := repo.CreateEffect(spent); err != nil {
		t.Fatalf("seed effect: %v", err)
	}

	res, err := SubmitAction(repo, ActionRequest{BattleID: b.BattleID, PlayerID: "p1", Action: game.ActionThreePoint, CardID: "mid", CardName: "Mid Range"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.ActionSuccess {
		t.Fatalf("boosted shot at chance 1.0 must succeed")
	}
	if repo.effects[0].TurnsLeft != 1 {
		t.Fatalf("expected running effect decremented to 1, got %d", repo.effects[0].TurnsLeft)
	}
	if repo.effects[1].TurnsLeft != 0 {
		t.Fatalf("spent effect must stay at 0, got %d", repo.effects[1].TurnsLeft)
	}
}

func TestSubmitAction_TrapInterceptsSuccessfulAttack(t *testing.T) {
	repo := newFakeRepo()
	b := newTestBattle()
	seedBattle(t, repo, b)

	trap := &game.SetTrap{
		BattleID: b.BattleID,
		PlayerID: "p2",
		CardID:   "net",
		CardName: "Full Court Press",
		Trigger:  game.TriggerOnAttack,
		Effect:   game.TrapEffect{StatReduction: game.StatReduction{Offense: 20}},
	}
	if err := repo.CreateTrap(trap); err != nil {
		t.Fatalf("seed trap: %v", err)
	}

	res, err := SubmitAction(repo, ActionRequest{BattleID: b.BattleID, PlayerID: "p1", Action: game.ActionPostUp, CardID: "ace", CardName: "Ace Guard"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.ActionSuccess {
		t.Fatalf("post-up at chance 1.0 must succeed")
	}
	if res.PointsScored != 0 {
		t.Fatalf("trap must reduce 2 points to 0, got %d", res.PointsScored)
	}
	if b.Player1Score != 0 {
		t.Fatalf("intercepted points must not reach the score, got %d", b.Player1Score)
	}
	if !repo.traps[0].Triggered {
		t.Fatalf("trap must flip to triggered")
	}
	// Trap log entry first, then the primary move with post-trap points.
	if len(repo.moves) != 2 {
		t.Fatalf("expected trap log plus primary move, got %d entries", len(repo.moves))
	}
	trapMove := repo.moves[0]
	if trapMove.Action != game.ActionTrapTriggered || trapMove.PlayerID != "p2" || trapMove.PointsScored != 0 {
		t.Fatalf("unexpected trap log entry: %+v", trapMove)
	}
	if repo.moves[1].PointsScored != 0 {
		t.Fatalf("primary move must carry post-trap points, got %d", repo.moves[1].PointsScored)
	}
}

func TestSubmitAction_AllOpposingTrapsFire(t *testing.T) {
	repo := newFakeRepo()
	b := newTestBattle()
	seedBattle(t, repo, b)

	traps := []*game.SetTrap{
		{BattleID: b.BattleID, PlayerID: "p2", CardID: "net", CardName: "Full Court Press", Trigger: game.TriggerOnAttack, Effect: game.TrapEffect{StatReduction: game.StatReduction{Offense: 10}}},
		{BattleID: b.BattleID, PlayerID: "p2", CardID: "wall", CardName: "Zone Defense", Trigger: game.TriggerOnAttack, Effect: game.TrapEffect{StatReduction: game.StatReduction{Offense: 10}}},
	}
	for _, trap := range traps {
		if err := repo.CreateTrap(trap); err != nil {
			t.Fatalf("seed trap: %v", err)
		}
	}

	res, err := SubmitAction(repo, ActionRequest{BattleID: b.BattleID, PlayerID: "p1", Action: game.ActionThreePoint, CardID: "ace", CardName: "Ace Guard"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PointsScored != 1 {
		t.Fatalf("both traps must reduce 3 points to 1, got %d", res.PointsScored)
	}
	if b.Player1Score != 1 {
		t.Fatalf("expected player1 score 1, got %d", b.Player1Score)
	}
	for _, trap := range repo.traps {
		if !trap.Triggered {
			t.Fatalf("every opposing trap must spring on one attack: %+v", trap)
		}
	}
	// Two trap log entries, then the primary move.
	if len(repo.moves) != 3 {
		t.Fatalf("expected two trap logs plus the primary move, got %d entries", len(repo.moves))
	}
	if repo.moves[0].Action != game.ActionTrapTriggered || repo.moves[1].Action != game.ActionTrapTriggered {
		t.Fatalf("trap logs must precede the primary move: %+v", repo.moves)
	}
	if repo.moves[2].PointsScored != 1 {
		t.Fatalf("primary move must carry post-trap points, got %d", repo.moves[2].PointsScored)
	}
}

func TestSubmitAction_TrapIgnoresMiss(t *testing.T) {
	repo := newFakeRepo()
	b := newTestBattle()
	seedBattle(t, repo, b)

	trap := &game.SetTrap{BattleID: b.BattleID, PlayerID: "p2", Trigger: game.TriggerOnAttack, Effect: game.TrapEffect{StatReduction: game.StatReduction{Offense: 30}}}
	if err := repo.CreateTrap(trap); err != nil {
		t.Fatalf("seed trap: %v", err)
	}

	_, err := SubmitAction(repo, ActionRequest{BattleID: b.BattleID, PlayerID: "p1", Action: game.ActionPostUp, CardID: "brick", CardName: "Brick Hands"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.traps[0].Triggered {
		t.Fatalf("a missed action must not spring the trap")
	}
}

func TestSubmitAction_TerminationEmitsExactlyOneResult(t *testing.T) {
	repo := newFakeRepo()
	b := newTestBattle()
	b.Player1Score = 97
	b.Player2Score = 95
	b.Quarter = 3
	seedBattle(t, repo, b)

	res, err := SubmitAction(repo, ActionRequest{BattleID: b.BattleID, PlayerID: "p1", Action: game.ActionThreePoint, CardID: "ace", CardName: "Ace Guard"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PointsScored != 3 {
		t.Fatalf("expected winning 3 points, got %d", res.PointsScored)
	}
	if b.Player1Score != 100 || b.Status != game.StatusFinished {
		t.Fatalf("expected 100 points and FINISHED, got score=%d status=%s", b.Player1Score, b.Status)
	}
	if len(repo.results) != 1 {
		t.Fatalf("expected exactly one result, got %d", len(repo.results))
	}
	result := repo.results[0]
	if result.WinnerID != "p1" || result.LoserID != "p2" {
		t.Fatalf("expected p1 to win, got %+v", result)
	}
	if result.Player1Score != 100 || result.Player2Score != 95 {
		t.Fatalf("result must carry final scores, got %+v", result)
	}

	// A follow-up action must be rejected and must not mint a second result.
	_, err = SubmitAction(repo, ActionRequest{BattleID: b.BattleID, PlayerID: "p2", Action: game.ActionPostUp, CardID: "ace2"})
	if err != ErrBattleFinished {
		t.Fatalf("expected ErrBattleFinished after termination, got %v", err)
	}
	if len(repo.results) != 1 {
		t.Fatalf("termination must emit exactly once, got %d results", len(repo.results))
	}
}

func TestSubmitAction_FinalQuarterEndsBattle(t *testing.T) {
	repo := newFakeRepo()
	b := newTestBattle()
	b.Player1Score = 10
	b.Player2Score = 8
	b.Quarter = 4
	seedBattle(t, repo, b)

	_, err := SubmitAction(repo, ActionRequest{BattleID: b.BattleID, PlayerID: "p1", Action: game.ActionFastBreak, CardID: "brick", CardName: "Brick Hands"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != game.StatusFinished {
		t.Fatalf("the final quarter must end the battle, got status %s", b.Status)
	}
	if repo.results[0].WinnerID != "p1" {
		t.Fatalf("expected leader p1 to win at the buzzer, got %s", repo.results[0].WinnerID)
	}
}
