package engine

// Card is a single card encoded as an integer in [0, 52). Rank is
// card mod 13 + 1 (1 = ace, 11..13 = face cards); suit is card / 13 and
// never affects play.
type Card uint8

func (c Card) Rank() int { return int(c%13) + 1 }

// Game is one account's current blackjack round. A finished round stays
// on record (IsActive false) until the account's next start overwrites it.
type Game struct {
	PlayerHand       []Card `json:"player_hand"`
	DealerHand       []Card `json:"dealer_hand"`
	DealerHiddenCard Card   `json:"dealer_hidden_card"`
	BetAmount        uint64 `json:"bet_amount"`
	IsActive         bool   `json:"is_active"`
	PlayerStayed     bool   `json:"player_stayed"`
}

type Outcome string

const (
	PlayerBust Outcome = "player_bust"
	DealerBust Outcome = "dealer_bust"
	PlayerWin  Outcome = "player_win"
	DealerWin  Outcome = "dealer_win"
	Push       Outcome = "push"
)
