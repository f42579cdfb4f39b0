package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"chipjack/server/engine"
	"chipjack/server/game"
)

// The proxy in front of this service authenticates callers and forwards
// the account id in this header; mutating operations are refused without
// it, before anything is dispatched.
const accountHeader = "X-Account"

func Router(svc *game.Service, logger *log.Logger) http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})
		r.Group(func(r chi.Router) {
			r.Use(requireAccount)
			r.Post("/game/start", handleStart(svc, logger))
			r.Post("/game/hit", handleOp(svc.Hit, logger, "hit"))
			r.Post("/game/stay", handleOp(svc.Stay, logger, "stay"))
		})
		r.Get("/balance", handleBalance(svc, logger))
		r.Get("/game", handleGame(svc, logger))
		r.Get("/history", handleHistory(svc, logger))
		r.Get("/stats", handleStats(svc, logger))
		r.Get("/leaderboard", handleLeaderboard(svc, logger))
	})

	return r
}

func requireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimSpace(r.Header.Get(accountHeader)) == "" {
			http.Error(w, "missing "+accountHeader+" header", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type opResponse struct {
	Outcome     string   `json:"outcome"`
	Message     string   `json:"message"`
	PlayerHand  []string `json:"player_hand,omitempty"`
	PlayerValue int      `json:"player_value,omitempty"`
	DealerHand  []string `json:"dealer_hand,omitempty"`
	DealerValue int      `json:"dealer_value,omitempty"`
	BetAmount   uint64   `json:"bet_amount,omitempty"`
	Payout      uint64   `json:"payout,omitempty"`
	Balance     uint64   `json:"balance,omitempty"`
}

func toResponse(res game.Result) opResponse {
	outcome := string(res.Kind)
	if res.Kind == game.KindFinished {
		outcome = string(res.Outcome)
	}
	return opResponse{
		Outcome:     outcome,
		Message:     res.Message(),
		PlayerHand:  engine.Strings(res.PlayerHand),
		PlayerValue: res.PlayerValue,
		DealerHand:  engine.Strings(res.DealerHand),
		DealerValue: res.DealerValue,
		BetAmount:   res.Bet,
		Payout:      res.Payout,
		Balance:     res.Balance,
	}
}

func handleStart(svc *game.Service, logger *log.Logger) http.HandlerFunc {
	type request struct {
		BetAmount uint64 `json:"bet_amount"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		account := r.Header.Get(accountHeader)
		res, err := svc.StartGame(r.Context(), account, req.BetAmount)
		if err != nil {
			logger.Error("start game aborted", "account", account, "err", err)
			http.Error(w, "storage failure", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(res))
	}
}

func handleOp(op func(context.Context, string) (game.Result, error), logger *log.Logger, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := r.Header.Get(accountHeader)
		res, err := op(r.Context(), account)
		if err != nil {
			logger.Error(name+" aborted", "account", account, "err", err)
			http.Error(w, "storage failure", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(res))
	}
}

func handleBalance(svc *game.Service, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := r.URL.Query().Get("account")
		if account == "" {
			http.Error(w, "missing account", http.StatusBadRequest)
			return
		}
		balance, err := svc.Balance(r.Context(), account)
		if err != nil {
			logger.Error("balance query failed", "account", account, "err", err)
			http.Error(w, "storage failure", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"account": account, "balance": balance})
	}
}

func handleGame(svc *game.Service, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := r.URL.Query().Get("account")
		if account == "" {
			http.Error(w, "missing account", http.StatusBadRequest)
			return
		}
		view, err := svc.Game(r.Context(), account)
		if err != nil {
			logger.Error("game query failed", "account", account, "err", err)
			http.Error(w, "storage failure", http.StatusInternalServerError)
			return
		}
		if view == nil {
			http.Error(w, "no game for account", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func handleHistory(svc *game.Service, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := r.URL.Query().Get("account")
		if account == "" {
			http.Error(w, "missing account", http.StatusBadRequest)
			return
		}
		limit := clampLimit(r.URL.Query().Get("limit"), 20, 100)
		hist, err := svc.History(r.Context(), account, limit)
		if err != nil {
			logger.Error("history query failed", "account", account, "err", err)
			http.Error(w, "storage failure", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"rows": hist})
	}
}

func handleStats(svc *game.Service, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := r.URL.Query().Get("account")
		if account == "" {
			http.Error(w, "missing account", http.StatusBadRequest)
			return
		}
		stats, err := svc.Stats(r.Context(), account)
		if err != nil {
			logger.Error("stats query failed", "account", account, "err", err)
			http.Error(w, "storage failure", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func handleLeaderboard(svc *game.Service, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := clampLimit(r.URL.Query().Get("limit"), 10, 100)
		top, err := svc.Leaderboard(r.Context(), limit)
		if err != nil {
			logger.Error("leaderboard query failed", "err", err)
			http.Error(w, "storage failure", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"rows": top})
	}
}

func clampLimit(s string, def, max int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
