package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/KirkDiggler/fairdice/internal/common/fault"
	"github.com/KirkDiggler/fairdice/internal/models"
	"github.com/KirkDiggler/fairdice/internal/services/roll"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxListLimit caps GET /rolls?limit=
const maxListLimit = 200

// Handler serves the dice game endpoints
type Handler struct {
	service roll.Service
	logger  *zap.Logger
}

type balanceResponse struct {
	Balance int64 `json:"balance"`
}

type commitmentResponse struct {
	ServerSeedHash string     `json:"server_seed_hash"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

type rollRequest struct {
	BetAmount  json.RawMessage `json:"bet_amount"`
	ClientSeed string          `json:"client_seed"`
}

// wager reads bet_amount as a whole number of credits. A missing amount is
// zero and left to the roll service to reject.
func (req *rollRequest) wager() (int64, error) {
	if len(req.BetAmount) == 0 || string(req.BetAmount) == "null" {
		return 0, nil
	}

	var amount json.Number
	if err := json.Unmarshal(req.BetAmount, &amount); err != nil {
		return 0, fault.ErrInvalidWager.With("bet_amount", string(req.BetAmount))
	}

	wager, err := amount.Int64()
	if err != nil {
		return 0, fault.ErrInvalidWager.With("bet_amount", amount.String())
	}
	return wager, nil
}

type rollResponse struct {
	ID             string `json:"id"`
	Roll           int    `json:"roll"`
	Result         string `json:"result"`
	Winnings       int64  `json:"winnings"`
	ServerSeed     string `json:"server_seed"`
	ServerSeedHash string `json:"server_seed_hash"`
	NewBalance     int64  `json:"new_balance"`
}

type historyResponse struct {
	Rolls []*models.RollRecord `json:"rolls"`
}

type verifyResponse struct {
	RollID       string `json:"roll_id"`
	OriginalRoll int    `json:"original_roll"`
	VerifiedRoll int    `json:"verified_roll"`
	Match        bool   `json:"match"`
	HashMatch    bool   `json:"hash_match"`

	// Code names the integrity fault when a check failed
	Code string `json:"code,omitempty"`
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetBalance handles GET /balance
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.GetBalance(r.Context(), &roll.GetBalanceInput{
		AccountID: AccountFromContext(r.Context()),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{Balance: out.Balance})
}

// IssueCommitment handles POST /commitments
func (h *Handler) IssueCommitment(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.IssueCommitment(r.Context(), &roll.IssueCommitmentInput{
		AccountID: AccountFromContext(r.Context()),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, commitmentResponse{
		ServerSeedHash: out.ServerSeedHash,
		ExpiresAt:      optionalTime(out.ExpiresAt),
	})
}

// GetCommitment handles GET /commitments/current
func (h *Handler) GetCommitment(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.GetCommitment(r.Context(), &roll.GetCommitmentInput{
		AccountID: AccountFromContext(r.Context()),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, commitmentResponse{
		ServerSeedHash: out.ServerSeedHash,
		IssuedAt:       optionalTime(out.IssuedAt),
		ExpiresAt:      optionalTime(out.ExpiresAt),
	})
}

// PlaceRoll handles POST /rolls
func (h *Handler) PlaceRoll(w http.ResponseWriter, r *http.Request) {
	var req rollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Code: codeInvalidRequest})
		return
	}

	wager, err := req.wager()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.service.PlaceRoll(r.Context(), &roll.PlaceRollInput{
		AccountID:  AccountFromContext(r.Context()),
		Wager:      wager,
		ClientSeed: req.ClientSeed,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	record := out.Record
	writeJSON(w, http.StatusOK, rollResponse{
		ID:             record.ID,
		Roll:           record.Outcome,
		Result:         string(record.Result),
		Winnings:       record.Payout,
		ServerSeed:     record.ServerSeed,
		ServerSeedHash: record.ServerSeedHash,
		NewBalance:     out.NewBalance,
	})
}

// ListRolls handles GET /rolls?limit=N
func (h *Handler) ListRolls(w http.ResponseWriter, r *http.Request) {
	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "limit must be between 1 and " + strconv.Itoa(maxListLimit),
				Code:  codeInvalidRequest,
			})
			return
		}
		limit = n
	}

	out, err := h.service.ListRolls(r.Context(), &roll.ListRollsInput{
		AccountID: AccountFromContext(r.Context()),
		Limit:     limit,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	records := out.Records
	if records == nil {
		records = []*models.RollRecord{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Rolls: records})
}

// VerifyRoll handles GET /rolls/{rollID}/verify. A record that fails a check
// is still reported; the failing check is named in the code field.
func (h *Handler) VerifyRoll(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.VerifyRoll(r.Context(), &roll.VerifyRollInput{
		RollID: chi.URLParam(r, "rollID"),
	})
	if err != nil && (out == nil || fault.KindOf(err) != fault.KindIntegrityFault) {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{
		RollID:       out.Record.ID,
		OriginalRoll: out.Record.Outcome,
		VerifiedRoll: out.RecomputedOutcome,
		Match:        out.Match,
		HashMatch:    out.HashMatch,
		Code:         string(fault.CodeOf(err)),
	})
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
