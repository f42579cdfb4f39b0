package store

import (
	"context"
	"sort"
	"sync"

	"chipjack/server/engine"
)

// Memory is a mutex-guarded in-memory store for dev mode and tests. The
// single mutex plays the role the deck-seed row lock plays in Postgres:
// one unit at a time, across all accounts.
type Memory struct {
	mu       sync.Mutex
	balances map[string]uint64
	games    map[string]engine.Game
	deckSeed uint64
	history  []HistoryEntry
}

func NewMemory() *Memory {
	return &Memory{
		balances: make(map[string]uint64),
		games:    make(map[string]engine.Game),
	}
}

func (m *Memory) View(ctx context.Context, fn func(Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(&memTx{m: m})
}

// Update applies fn directly; callers compute first and write last, so an
// error from fn means nothing was written yet.
func (m *Memory) Update(ctx context.Context, fn func(Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(&memTx{m: m})
}

func (m *Memory) Close() {}

type memTx struct{ m *Memory }

func (t *memTx) Balance(ctx context.Context, account string) (uint64, bool, error) {
	chips, ok := t.m.balances[account]
	return chips, ok, nil
}

func (t *memTx) SetBalance(ctx context.Context, account string, chips uint64) error {
	t.m.balances[account] = chips
	return nil
}

func (t *memTx) Game(ctx context.Context, account string) (*engine.Game, error) {
	g, ok := t.m.games[account]
	if !ok {
		return nil, nil
	}
	cp := g
	cp.PlayerHand = append([]engine.Card(nil), g.PlayerHand...)
	cp.DealerHand = append([]engine.Card(nil), g.DealerHand...)
	return &cp, nil
}

func (t *memTx) PutGame(ctx context.Context, account string, g engine.Game) error {
	g.PlayerHand = append([]engine.Card(nil), g.PlayerHand...)
	g.DealerHand = append([]engine.Card(nil), g.DealerHand...)
	t.m.games[account] = g
	return nil
}

func (t *memTx) DeckSeed(ctx context.Context) (uint64, error) {
	return t.m.deckSeed, nil
}

func (t *memTx) SetDeckSeed(ctx context.Context, seed uint64) error {
	t.m.deckSeed = seed
	return nil
}

func (t *memTx) AppendHistory(ctx context.Context, e HistoryEntry) error {
	t.m.history = append(t.m.history, e)
	return nil
}

func (t *memTx) History(ctx context.Context, account string, limit int) ([]HistoryEntry, error) {
	out := []HistoryEntry{}
	for i := len(t.m.history) - 1; i >= 0 && len(out) < limit; i-- {
		if t.m.history[i].Account == account {
			out = append(out, t.m.history[i])
		}
	}
	return out, nil
}

func (t *memTx) Stats(ctx context.Context, account string) (Stats, error) {
	var s Stats
	for _, e := range t.m.history {
		if e.Account != account {
			continue
		}
		s.Games++
		switch e.Outcome {
		case engine.PlayerWin, engine.DealerBust:
			s.Wins++
		case engine.DealerWin:
			s.Losses++
		case engine.PlayerBust:
			s.Losses++
			s.Busts++
		case engine.Push:
			s.Pushes++
		}
		s.NetChips += int64(e.Payout) - int64(e.BetAmount)
	}
	return s, nil
}

func (t *memTx) TopBalances(ctx context.Context, limit int) ([]AccountChips, error) {
	out := make([]AccountChips, 0, len(t.m.balances))
	for account, chips := range t.m.balances {
		out = append(out, AccountChips{Account: account, Chips: chips})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Chips != out[j].Chips {
			return out[i].Chips > out[j].Chips
		}
		return out[i].Account < out[j].Account
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
