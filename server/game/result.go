package game

import (
	"fmt"

	"chipjack/server/engine"
)

type Kind string

const (
	KindStarted  Kind = "started"
	KindDrew     Kind = "drew"
	KindFinished Kind = "finished"
	KindRejected Kind = "rejected"
)

// Reject classifies business-rule rejections. They are results, not
// errors: nothing was mutated and the caller just gets told why.
type Reject string

const (
	RejectActiveGame          Reject = "active_game"
	RejectInsufficientBalance Reject = "insufficient_balance"
	RejectNoGame              Reject = "no_game"
	RejectNotActive           Reject = "not_active"
)

// Result is the typed outcome of one operation. Handlers and tests branch
// on the tags; Message is the only place user-facing text is produced.
type Result struct {
	Kind    Kind
	Reject  Reject
	Outcome engine.Outcome

	PlayerHand  []engine.Card
	PlayerValue int
	DealerHand  []engine.Card
	DealerValue int

	Bet     uint64
	Payout  uint64
	Balance uint64
}

func (r Result) Message() string {
	switch r.Kind {
	case KindRejected:
		switch r.Reject {
		case RejectActiveGame:
			return "You already have an active game. Finish it first."
		case RejectInsufficientBalance:
			return fmt.Sprintf("Insufficient balance. You have %d but tried to bet %d", r.Balance, r.Bet)
		case RejectNoGame:
			return "No active game. Start a new game first."
		case RejectNotActive:
			return "Game is not active or you already stayed."
		}
	case KindStarted:
		return fmt.Sprintf("Game started! Your cards: %v, value: %d. Dealer shows: %v",
			engine.Strings(r.PlayerHand), r.PlayerValue, engine.Strings(r.DealerHand))
	case KindDrew:
		return fmt.Sprintf("Drew card. Your hand: %v, value: %d",
			engine.Strings(r.PlayerHand), r.PlayerValue)
	case KindFinished:
		tail := fmt.Sprintf("Player: %d, Dealer: %v (%d)",
			r.PlayerValue, engine.Strings(r.DealerHand), r.DealerValue)
		switch r.Outcome {
		case engine.PlayerBust:
			return fmt.Sprintf("BUST! You lost %d chips. %s", r.Bet, tail)
		case engine.DealerBust:
			return fmt.Sprintf("Dealer BUST! You won %d chips! %s", r.Bet, tail)
		case engine.PlayerWin:
			return fmt.Sprintf("YOU WIN! Won %d chips! %s", r.Bet, tail)
		case engine.DealerWin:
			return fmt.Sprintf("Dealer wins. You lost %d chips. %s", r.Bet, tail)
		case engine.Push:
			return fmt.Sprintf("PUSH (tie). Bet returned. %s", tail)
		}
	}
	return ""
}
