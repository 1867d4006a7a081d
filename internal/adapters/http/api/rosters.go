package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/cupline/internal/domain/model"
)

// Request limits.
const (
	maxBodyBytes     = 1 << 20
	maxRosterPlayers = 200
)

// RosterHandler handles roster evaluation requests.
type RosterHandler struct {
	deps Dependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps Dependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// evaluateRequest mirrors the OpenAPI schema for POST /rosters/evaluate.
type evaluateRequest struct {
	TeamID  string               `json:"team_id"`
	Season  string               `json:"season"`
	Players []model.PlayerSeason `json:"players"`
}

func (e *evaluateRequest) validate() error {
	if e.Players == nil {
		return fmt.Errorf("%w: missing players", ErrBadRequest)
	}
	if len(e.Players) > maxRosterPlayers {
		return fmt.Errorf("%w: %d players exceeds limit of %d", ErrBadRequest, len(e.Players), maxRosterPlayers)
	}
	seen := make(map[string]struct{}, len(e.Players))
	for i := range e.Players {
		id := strings.TrimSpace(e.Players[i].PlayerID)
		if id == "" {
			return fmt.Errorf("%w: players[%d] missing player_id", ErrBadRequest, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate player_id %q", ErrBadRequest, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// HandleEvaluate handles POST /rosters/evaluate.
func (h *RosterHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var req evaluateRequest
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeDomainError(r.Context(), w, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, tooLarge.Limit))
			return
		}
		writeDomainError(r.Context(), w, fmt.Errorf("%w: invalid JSON: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeDomainError(r.Context(), w, err)
		return
	}

	report, err := h.deps.EvaluatePlayers(r.Context(), req.TeamID, req.Season, req.Players)
	if err != nil {
		writeDomainError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleWeaknesses handles GET /teams/{team}/seasons/{season}/weaknesses.
func (h *RosterHandler) HandleWeaknesses(w http.ResponseWriter, r *http.Request) {
	report, err := h.deps.TeamWeaknesses(r.Context(), r.PathValue("team"), r.PathValue("season"))
	if err != nil {
		writeDomainError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleWeakLinks handles GET /teams/{team}/seasons/{season}/weak-links.
func (h *RosterHandler) HandleWeakLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.deps.WeakLinks(r.Context(), r.PathValue("team"), r.PathValue("season"))
	if err != nil {
		writeDomainError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}
