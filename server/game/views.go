package game

import (
	"context"

	"chipjack/server/engine"
	"chipjack/server/store"
)

// GameView is the read-only projection of a game record. The dealer hand
// is the *visible* one: while the round is live the hole card is withheld
// and the dealer value covers only what is on the table.
type GameView struct {
	PlayerHand   []string `json:"player_hand"`
	PlayerValue  int      `json:"player_value"`
	DealerHand   []string `json:"dealer_hand"`
	DealerValue  int      `json:"dealer_value"`
	BetAmount    uint64   `json:"bet_amount"`
	IsActive     bool     `json:"is_active"`
	PlayerStayed bool     `json:"player_stayed"`
}

// Balance reads the ledger; accounts that never bet read as the faucet
// default.
func (s *Service) Balance(ctx context.Context, account string) (uint64, error) {
	var out uint64
	err := s.store.View(ctx, func(tx store.Tx) error {
		b, err := s.balance(ctx, tx, account)
		out = b
		return err
	})
	return out, err
}

// Game returns the account's current record, or nil if it never played.
func (s *Service) Game(ctx context.Context, account string) (*GameView, error) {
	var out *GameView
	err := s.store.View(ctx, func(tx store.Tx) error {
		g, err := tx.Game(ctx, account)
		if err != nil || g == nil {
			return err
		}
		visible := g.DealerHand
		if !g.IsActive && !g.PlayerStayed {
			// Round ended without a stay (natural 21 or bust), so the hole
			// card never made it into the visible hand. After a stay it is
			// already there.
			visible = append(append([]engine.Card(nil), g.DealerHand...), g.DealerHiddenCard)
		}
		out = &GameView{
			PlayerHand:   engine.Strings(g.PlayerHand),
			PlayerValue:  engine.HandValue(g.PlayerHand),
			DealerHand:   engine.Strings(visible),
			DealerValue:  engine.HandValue(visible),
			BetAmount:    g.BetAmount,
			IsActive:     g.IsActive,
			PlayerStayed: g.PlayerStayed,
		}
		return nil
	})
	return out, err
}

func (s *Service) History(ctx context.Context, account string, limit int) ([]store.HistoryEntry, error) {
	var out []store.HistoryEntry
	err := s.store.View(ctx, func(tx store.Tx) error {
		h, err := tx.History(ctx, account, limit)
		out = h
		return err
	})
	return out, err
}

func (s *Service) Stats(ctx context.Context, account string) (store.Stats, error) {
	var out store.Stats
	err := s.store.View(ctx, func(tx store.Tx) error {
		st, err := tx.Stats(ctx, account)
		out = st
		return err
	})
	return out, err
}

func (s *Service) Leaderboard(ctx context.Context, limit int) ([]store.AccountChips, error) {
	var out []store.AccountChips
	err := s.store.View(ctx, func(tx store.Tx) error {
		top, err := tx.TopBalances(ctx, limit)
		out = top
		return err
	})
	return out, err
}
