package game

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"chipjack/server/engine"
	"chipjack/server/store"
)

type Config struct {
	// StartingBalance is what an account that has never bet reads as.
	StartingBalance uint64
}

// Service is the table: it admits one operation at a time (the store
// serializes mutating units on the deck-seed register), runs the state
// machine and settles bets. Business rejections come back inside Result;
// an error return means storage failed and nothing was committed.
type Service struct {
	store store.Store
	cfg   Config
	log   *log.Logger
}

func NewService(st store.Store, cfg Config, logger *log.Logger) *Service {
	return &Service{store: st, cfg: cfg, log: logger}
}

// StartGame debits the bet, deals two player cards, one dealer upcard and
// one hole card (four sequencer draws, in that order) and, on a natural
// 21, settles immediately.
func (s *Service) StartGame(ctx context.Context, account string, bet uint64) (Result, error) {
	var res Result
	err := s.store.Update(ctx, func(tx store.Tx) error {
		prev, err := tx.Game(ctx, account)
		if err != nil {
			return err
		}
		if prev != nil && prev.IsActive {
			res = Result{Kind: KindRejected, Reject: RejectActiveGame}
			return nil
		}
		balance, err := s.balance(ctx, tx, account)
		if err != nil {
			return err
		}
		if balance < bet {
			res = Result{Kind: KindRejected, Reject: RejectInsufficientBalance, Balance: balance, Bet: bet}
			return nil
		}
		if err := tx.SetBalance(ctx, account, balance-bet); err != nil {
			return err
		}

		seed, err := tx.DeckSeed(ctx)
		if err != nil {
			return err
		}
		var p1, p2, up, hole engine.Card
		p1, seed = engine.Draw(seed)
		p2, seed = engine.Draw(seed)
		up, seed = engine.Draw(seed)
		hole, seed = engine.Draw(seed)
		if err := tx.SetDeckSeed(ctx, seed); err != nil {
			return err
		}

		g := engine.Game{
			PlayerHand:       []engine.Card{p1, p2},
			DealerHand:       []engine.Card{up},
			DealerHiddenCard: hole,
			BetAmount:        bet,
			IsActive:         true,
		}
		if engine.HandValue(g.PlayerHand) == 21 {
			res, err = s.settle(ctx, tx, account, &g)
			if err != nil {
				return err
			}
		} else {
			res = snapshot(KindStarted, &g)
		}
		return tx.PutGame(ctx, account, g)
	})
	if err == nil {
		s.log.Info("start game", "account", account, "bet", bet, "result", res.Kind, "outcome", res.Outcome)
	}
	return res, err
}

// Hit appends one drawn card to the player hand; going over 21 settles
// the round on the spot.
func (s *Service) Hit(ctx context.Context, account string) (Result, error) {
	var res Result
	err := s.store.Update(ctx, func(tx store.Tx) error {
		g, err := tx.Game(ctx, account)
		if err != nil {
			return err
		}
		if r, rejected := rejectUnplayable(g); rejected {
			res = r
			return nil
		}

		seed, err := tx.DeckSeed(ctx)
		if err != nil {
			return err
		}
		var c engine.Card
		c, seed = engine.Draw(seed)
		if err := tx.SetDeckSeed(ctx, seed); err != nil {
			return err
		}

		g.PlayerHand = append(g.PlayerHand, c)
		if engine.HandValue(g.PlayerHand) > 21 {
			res, err = s.settle(ctx, tx, account, g)
			if err != nil {
				return err
			}
		} else {
			res = snapshot(KindDrew, g)
		}
		return tx.PutGame(ctx, account, *g)
	})
	if err == nil {
		s.log.Info("hit", "account", account, "result", res.Kind, "outcome", res.Outcome)
	}
	return res, err
}

// Stay ends the player's turn: the hole card is revealed into the visible
// dealer hand, the dealer draws to 17 and the round settles.
func (s *Service) Stay(ctx context.Context, account string) (Result, error) {
	var res Result
	err := s.store.Update(ctx, func(tx store.Tx) error {
		g, err := tx.Game(ctx, account)
		if err != nil {
			return err
		}
		if r, rejected := rejectUnplayable(g); rejected {
			res = r
			return nil
		}

		g.PlayerStayed = true
		g.DealerHand = append(g.DealerHand, g.DealerHiddenCard)

		seed, err := tx.DeckSeed(ctx)
		if err != nil {
			return err
		}
		for engine.HandValue(g.DealerHand) < 17 {
			var c engine.Card
			c, seed = engine.Draw(seed)
			g.DealerHand = append(g.DealerHand, c)
		}
		if err := tx.SetDeckSeed(ctx, seed); err != nil {
			return err
		}

		res, err = s.settle(ctx, tx, account, g)
		if err != nil {
			return err
		}
		return tx.PutGame(ctx, account, *g)
	})
	if err == nil {
		s.log.Info("stay", "account", account, "outcome", res.Outcome, "payout", res.Payout)
	}
	return res, err
}

// settle runs the resolver exactly once for the round, credits the payout
// against the balance as it stands now (post-debit) and retires the game
// record.
func (s *Service) settle(ctx context.Context, tx store.Tx, account string, g *engine.Game) (Result, error) {
	pv := engine.HandValue(g.PlayerHand)
	dv := engine.HandValue(g.DealerHand)
	outcome, payout := engine.Resolve(pv, dv, g.BetAmount)

	balance, err := s.balance(ctx, tx, account)
	if err != nil {
		return Result{}, err
	}
	if payout > 0 {
		balance += payout
		if err := tx.SetBalance(ctx, account, balance); err != nil {
			return Result{}, err
		}
	}
	g.IsActive = false

	if err := tx.AppendHistory(ctx, store.HistoryEntry{
		Account:     account,
		BetAmount:   g.BetAmount,
		PlayerValue: pv,
		DealerValue: dv,
		Outcome:     outcome,
		Payout:      payout,
		FinishedAt:  time.Now().UTC(),
	}); err != nil {
		return Result{}, err
	}

	r := snapshot(KindFinished, g)
	r.Outcome = outcome
	r.Payout = payout
	r.Balance = balance
	return r, nil
}

// rejectUnplayable distinguishes "never dealt or record retired" from
// "dealt but no longer the player's turn"; the two read differently.
func rejectUnplayable(g *engine.Game) (Result, bool) {
	switch {
	case g == nil:
		return Result{Kind: KindRejected, Reject: RejectNoGame}, true
	case !g.IsActive || g.PlayerStayed:
		return Result{Kind: KindRejected, Reject: RejectNotActive}, true
	}
	return Result{}, false
}

func snapshot(kind Kind, g *engine.Game) Result {
	return Result{
		Kind:        kind,
		PlayerHand:  append([]engine.Card(nil), g.PlayerHand...),
		PlayerValue: engine.HandValue(g.PlayerHand),
		DealerHand:  append([]engine.Card(nil), g.DealerHand...),
		DealerValue: engine.HandValue(g.DealerHand),
		Bet:         g.BetAmount,
	}
}

// balance reads the ledger with the faucet default for accounts that have
// never bet.
func (s *Service) balance(ctx context.Context, tx store.Tx, account string) (uint64, error) {
	chips, ok, err := tx.Balance(ctx, account)
	if err != nil {
		return 0, err
	}
	if !ok {
		return s.cfg.StartingBalance, nil
	}
	return chips, nil
}
