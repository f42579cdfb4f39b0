package store

import (
	"context"
	"time"

	"chipjack/server/engine"
)

// Tx is one atomic view of persisted state: the chips ledger, per-account
// game records, the shared deck-seed register and the resolution history.
// Mutations made through a Tx become visible only when the surrounding
// Update commits.
type Tx interface {
	Balance(ctx context.Context, account string) (chips uint64, ok bool, err error)
	SetBalance(ctx context.Context, account string, chips uint64) error

	Game(ctx context.Context, account string) (*engine.Game, error)
	PutGame(ctx context.Context, account string, g engine.Game) error

	DeckSeed(ctx context.Context) (uint64, error)
	SetDeckSeed(ctx context.Context, seed uint64) error

	AppendHistory(ctx context.Context, e HistoryEntry) error
	History(ctx context.Context, account string, limit int) ([]HistoryEntry, error)
	Stats(ctx context.Context, account string) (Stats, error)
	TopBalances(ctx context.Context, limit int) ([]AccountChips, error)
}

// Store runs functions against the state. Update serializes on the deck
// seed register, so at most one mutating unit runs at a time across all
// accounts. View must not mutate.
type Store interface {
	View(ctx context.Context, fn func(Tx) error) error
	Update(ctx context.Context, fn func(Tx) error) error
	Close()
}

// HistoryEntry is one settled round.
type HistoryEntry struct {
	Account     string         `json:"account"`
	BetAmount   uint64         `json:"bet_amount"`
	PlayerValue int            `json:"player_value"`
	DealerValue int            `json:"dealer_value"`
	Outcome     engine.Outcome `json:"outcome"`
	Payout      uint64         `json:"payout"`
	FinishedAt  time.Time      `json:"finished_at"`
}

// Stats aggregates an account's settled rounds.
type Stats struct {
	Games    int   `json:"games"`
	Wins     int   `json:"wins"`
	Losses   int   `json:"losses"`
	Pushes   int   `json:"pushes"`
	Busts    int   `json:"busts"`
	NetChips int64 `json:"net_chips"`
}

type AccountChips struct {
	Account string `json:"account"`
	Chips   uint64 `json:"chips"`
}
