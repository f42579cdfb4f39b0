package store

import (
	"context"
	"testing"
	"time"

	"chipjack/server/engine"
)

func TestMemoryDeckSeedStartsAtZero(t *testing.T) {
	m := NewMemory()
	err := m.View(context.Background(), func(tx Tx) error {
		seed, err := tx.DeckSeed(context.Background())
		if err != nil {
			return err
		}
		if seed != 0 {
			t.Fatalf("initial seed = %d, want 0", seed)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestMemoryBalanceRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	err := m.Update(ctx, func(tx Tx) error {
		if _, ok, err := tx.Balance(ctx, "alice"); err != nil || ok {
			t.Fatalf("fresh account should be absent, ok=%v err=%v", ok, err)
		}
		if err := tx.SetBalance(ctx, "alice", 900); err != nil {
			return err
		}
		chips, ok, err := tx.Balance(ctx, "alice")
		if err != nil || !ok || chips != 900 {
			t.Fatalf("balance = (%d,%v,%v), want (900,true,nil)", chips, ok, err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestMemoryGameIsolation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	err := m.Update(ctx, func(tx Tx) error {
		g := engine.Game{
			PlayerHand: []engine.Card{0, 12},
			DealerHand: []engine.Card{5},
			BetAmount:  50,
			IsActive:   true,
		}
		if err := tx.PutGame(ctx, "alice", g); err != nil {
			return err
		}
		got, err := tx.Game(ctx, "alice")
		if err != nil {
			return err
		}
		// mutating the returned copy must not touch the stored record
		got.PlayerHand[0] = 51
		again, err := tx.Game(ctx, "alice")
		if err != nil {
			return err
		}
		if again.PlayerHand[0] != 0 {
			t.Fatalf("stored hand mutated through returned copy")
		}
		if g2, err := tx.Game(ctx, "bob"); err != nil || g2 != nil {
			t.Fatalf("bob should have no game, got %+v err %v", g2, err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestMemoryHistoryAndLeaderboard(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	err := m.Update(ctx, func(tx Tx) error {
		for _, outcome := range []engine.Outcome{engine.PlayerWin, engine.Push, engine.PlayerBust} {
			e := HistoryEntry{
				Account: "alice", BetAmount: 10, PlayerValue: 20, DealerValue: 19,
				Outcome: outcome, FinishedAt: time.Now().UTC(),
			}
			if outcome == engine.PlayerWin {
				e.Payout = 20
			}
			if outcome == engine.Push {
				e.Payout = 10
			}
			if err := tx.AppendHistory(ctx, e); err != nil {
				return err
			}
		}
		hist, err := tx.History(ctx, "alice", 2)
		if err != nil {
			return err
		}
		if len(hist) != 2 || hist[0].Outcome != engine.PlayerBust {
			t.Fatalf("history = %+v, want 2 entries newest first", hist)
		}
		stats, err := tx.Stats(ctx, "alice")
		if err != nil {
			return err
		}
		want := Stats{Games: 3, Wins: 1, Losses: 1, Pushes: 1, Busts: 1, NetChips: 0}
		if stats != want {
			t.Fatalf("stats = %+v, want %+v", stats, want)
		}

		tx.SetBalance(ctx, "alice", 1010)
		tx.SetBalance(ctx, "bob", 990)
		tx.SetBalance(ctx, "carol", 2000)
		top, err := tx.TopBalances(ctx, 2)
		if err != nil {
			return err
		}
		if len(top) != 2 || top[0].Account != "carol" || top[1].Account != "alice" {
			t.Fatalf("leaderboard = %+v", top)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
}
