package game

import (
	"strings"
	"testing"

	"chipjack/server/engine"
)

func TestResultMessages(t *testing.T) {
	started := Result{
		Kind:        KindStarted,
		PlayerHand:  []engine.Card{9, 4}, // Tc 5c
		PlayerValue: 15,
		DealerHand:  []engine.Card{25}, // Kd
		DealerValue: 10,
		Bet:         100,
	}
	if got := started.Message(); got != "Game started! Your cards: [Tc 5c], value: 15. Dealer shows: [Kd]" {
		t.Fatalf("started message = %q", got)
	}

	drew := Result{Kind: KindDrew, PlayerHand: []engine.Card{9, 4, 1}, PlayerValue: 17}
	if got := drew.Message(); got != "Drew card. Your hand: [Tc 5c 2c], value: 17" {
		t.Fatalf("drew message = %q", got)
	}

	cases := []struct {
		outcome engine.Outcome
		want    string
	}{
		{engine.PlayerBust, "BUST! You lost 100 chips."},
		{engine.DealerBust, "Dealer BUST! You won 100 chips!"},
		{engine.PlayerWin, "YOU WIN! Won 100 chips!"},
		{engine.DealerWin, "Dealer wins. You lost 100 chips."},
		{engine.Push, "PUSH (tie). Bet returned."},
	}
	for _, tc := range cases {
		r := Result{Kind: KindFinished, Outcome: tc.outcome, Bet: 100}
		if got := r.Message(); !strings.HasPrefix(got, tc.want) {
			t.Fatalf("%s message = %q, want prefix %q", tc.outcome, got, tc.want)
		}
	}

	rejected := Result{Kind: KindRejected, Reject: RejectActiveGame}
	if got := rejected.Message(); got != "You already have an active game. Finish it first." {
		t.Fatalf("rejection message = %q", got)
	}
}
