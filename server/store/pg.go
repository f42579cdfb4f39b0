package store

import (
	"context"
	"embed"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chipjack/server/engine"
)

//go:embed schema.sql
var schema embed.FS

// PG is the Postgres-backed store.
type PG struct{ pool *pgxpool.Pool }

func Open(ctx context.Context, dsn string) (*PG, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &PG{pool: p}, nil
}

func (db *PG) Close() { db.pool.Close() }

func (db *PG) Ping(ctx context.Context) error { return db.pool.Ping(ctx) }

func Migrate(ctx context.Context, db *PG) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.pool.Exec(ctx, string(sqlBytes))
	return err
}

func (db *PG) View(ctx context.Context, fn func(Tx) error) error {
	tx, err := db.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // safe if already committed
	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (db *PG) Update(ctx context.Context, fn func(Tx) error) error {
	tx, err := db.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // safe if already committed
	ptx := &pgTx{tx: tx, forUpdate: true}
	// Take the deck-seed row lock up front: every mutating unit, from any
	// account, serializes here.
	if _, err := ptx.DeckSeed(ctx); err != nil {
		return err
	}
	if err := fn(ptx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type pgTx struct {
	tx        pgx.Tx
	forUpdate bool
}

func (t *pgTx) Balance(ctx context.Context, account string) (uint64, bool, error) {
	var chips int64
	err := t.tx.QueryRow(ctx, `SELECT chips FROM balances WHERE account = $1`, account).Scan(&chips)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return uint64(chips), true, nil
}

func (t *pgTx) SetBalance(ctx context.Context, account string, chips uint64) error {
	_, err := t.tx.Exec(ctx, `
        INSERT INTO balances(account, chips) VALUES ($1,$2)
        ON CONFLICT (account) DO UPDATE
          SET chips = EXCLUDED.chips,
              updated_at = now()
    `, account, int64(chips))
	return err
}

func (t *pgTx) Game(ctx context.Context, account string) (*engine.Game, error) {
	var (
		player, dealer []int16
		hidden         int16
		bet            int64
		g              engine.Game
	)
	err := t.tx.QueryRow(ctx, `
        SELECT player_hand, dealer_hand, dealer_hidden_card, bet_amount, is_active, player_stayed
          FROM games WHERE account = $1
    `, account).Scan(&player, &dealer, &hidden, &bet, &g.IsActive, &g.PlayerStayed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g.PlayerHand = toCards(player)
	g.DealerHand = toCards(dealer)
	g.DealerHiddenCard = engine.Card(hidden)
	g.BetAmount = uint64(bet)
	return &g, nil
}

func (t *pgTx) PutGame(ctx context.Context, account string, g engine.Game) error {
	_, err := t.tx.Exec(ctx, `
        INSERT INTO games(account, player_hand, dealer_hand, dealer_hidden_card, bet_amount, is_active, player_stayed)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (account) DO UPDATE
          SET player_hand = EXCLUDED.player_hand,
              dealer_hand = EXCLUDED.dealer_hand,
              dealer_hidden_card = EXCLUDED.dealer_hidden_card,
              bet_amount = EXCLUDED.bet_amount,
              is_active = EXCLUDED.is_active,
              player_stayed = EXCLUDED.player_stayed,
              updated_at = now()
    `, account, fromCards(g.PlayerHand), fromCards(g.DealerHand),
		int16(g.DealerHiddenCard), int64(g.BetAmount), g.IsActive, g.PlayerStayed)
	return err
}

func (t *pgTx) DeckSeed(ctx context.Context) (uint64, error) {
	q := `SELECT value FROM registers WHERE name = 'deck_seed'`
	if t.forUpdate {
		q += ` FOR UPDATE`
	}
	var v int64
	if err := t.tx.QueryRow(ctx, q).Scan(&v); err != nil {
		return 0, err
	}
	return uint64(v), nil
}

func (t *pgTx) SetDeckSeed(ctx context.Context, seed uint64) error {
	_, err := t.tx.Exec(ctx, `UPDATE registers SET value = $1 WHERE name = 'deck_seed'`, int64(seed))
	return err
}

func (t *pgTx) AppendHistory(ctx context.Context, e HistoryEntry) error {
	_, err := t.tx.Exec(ctx, `
        INSERT INTO game_history(account, bet_amount, player_value, dealer_value, outcome, payout, finished_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, e.Account, int64(e.BetAmount), e.PlayerValue, e.DealerValue, string(e.Outcome), int64(e.Payout), e.FinishedAt)
	return err
}

func (t *pgTx) History(ctx context.Context, account string, limit int) ([]HistoryEntry, error) {
	rows, err := t.tx.Query(ctx, `
        SELECT account, bet_amount, player_value, dealer_value, outcome, payout, finished_at
          FROM game_history
         WHERE account = $1
         ORDER BY id DESC
         LIMIT $2
    `, account, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []HistoryEntry{}
	for rows.Next() {
		var (
			e       HistoryEntry
			bet     int64
			payout  int64
			outcome string
		)
		if err := rows.Scan(&e.Account, &bet, &e.PlayerValue, &e.DealerValue, &outcome, &payout, &e.FinishedAt); err != nil {
			return nil, err
		}
		e.BetAmount = uint64(bet)
		e.Payout = uint64(payout)
		e.Outcome = engine.Outcome(outcome)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (t *pgTx) Stats(ctx context.Context, account string) (Stats, error) {
	var s Stats
	err := t.tx.QueryRow(ctx, `
        SELECT COUNT(*)::int,
               COALESCE(SUM(CASE WHEN outcome IN ('player_win','dealer_bust') THEN 1 ELSE 0 END),0)::int,
               COALESCE(SUM(CASE WHEN outcome IN ('dealer_win','player_bust') THEN 1 ELSE 0 END),0)::int,
               COALESCE(SUM(CASE WHEN outcome = 'push' THEN 1 ELSE 0 END),0)::int,
               COALESCE(SUM(CASE WHEN outcome = 'player_bust' THEN 1 ELSE 0 END),0)::int,
               COALESCE(SUM(payout - bet_amount),0)::bigint
          FROM game_history
         WHERE account = $1
    `, account).Scan(&s.Games, &s.Wins, &s.Losses, &s.Pushes, &s.Busts, &s.NetChips)
	return s, err
}

func (t *pgTx) TopBalances(ctx context.Context, limit int) ([]AccountChips, error) {
	rows, err := t.tx.Query(ctx, `
        SELECT account, chips FROM balances
         ORDER BY chips DESC, account
         LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []AccountChips{}
	for rows.Next() {
		var (
			a     AccountChips
			chips int64
		)
		if err := rows.Scan(&a.Account, &chips); err != nil {
			return nil, err
		}
		a.Chips = uint64(chips)
		out = append(out, a)
	}
	return out, rows.Err()
}

func toCards(vals []int16) []engine.Card {
	out := make([]engine.Card, len(vals))
	for i, v := range vals {
		out[i] = engine.Card(v)
	}
	return out
}

func fromCards(cards []engine.Card) []int16 {
	out := make([]int16, len(cards))
	for i, c := range cards {
		out[i] = int16(c)
	}
	return out
}
