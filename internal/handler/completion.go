package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hollyoak/starjar/internal/bonus"
	"github.com/hollyoak/starjar/internal/model"
	"github.com/hollyoak/starjar/internal/store"
	"github.com/hollyoak/starjar/internal/websocket"
)

// CompletionHandler records chore completions and settles the bonus
// evaluation that approval triggers.
type CompletionHandler struct {
	completions *store.CompletionStore
	engine      *bonus.Engine
	hub         *websocket.Hub
	logger      *slog.Logger
}

func NewCompletionHandler(completions *store.CompletionStore, engine *bonus.Engine, hub *websocket.Hub, logger *slog.Logger) *CompletionHandler {
	return &CompletionHandler{
		completions: completions,
		engine:      engine,
		hub:         hub,
		logger:      logger,
	}
}

type recordCompletionRequest struct {
	AssignmentID int64 `json:"assignment_id"`
}

// Record handles POST /api/completions.
func (h *CompletionHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	assignment, err := h.completions.GetAssignment(req.AssignmentID)
	if err != nil {
		h.logger.Error("get assignment", "assignment_id", req.AssignmentID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load assignment"})
		return
	}
	if assignment == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "assignment not found"})
		return
	}

	completion, err := h.completions.Record(assignment.ID, assignment.ChildID)
	if err != nil {
		h.logger.Error("record completion", "assignment_id", assignment.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to record completion"})
		return
	}

	h.hub.Broadcast(websocket.NewMessage("completion", "recorded", completion.ID, map[string]any{
		"child_id":      completion.ChildID,
		"assignment_id": completion.AssignmentID,
	}))
	writeJSON(w, http.StatusCreated, completion)
}

type approveResponse struct {
	Completion *model.Completion `json:"completion"`
	Awards     []bonus.Award     `json:"awards"`
}

// Approve handles POST /api/completions/{id}/approve. Approval is the bonus
// trigger: every checker runs for the child and eligible results settle
// through the award guard, so re-approving the same completion cannot pay a
// deduplicated bonus twice.
func (h *CompletionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid completion id"})
		return
	}

	completion, err := h.completions.GetByID(id)
	if err != nil {
		h.logger.Error("get completion", "completion_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load completion"})
		return
	}
	if completion == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "completion not found"})
		return
	}

	completion, err = h.completions.Approve(id)
	if err != nil {
		h.logger.Error("approve completion", "completion_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to approve completion"})
		return
	}

	awards, err := h.engine.EvaluateAndAward(completion.ChildID)
	if err != nil {
		h.logger.Error("evaluate bonuses", "child_id", completion.ChildID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to evaluate bonuses"})
		return
	}

	h.hub.Broadcast(websocket.NewMessage("completion", "approved", completion.ID, map[string]any{
		"child_id": completion.ChildID,
	}))
	for _, award := range awards {
		if award.Outcome != store.Awarded {
			continue
		}
		h.hub.Broadcast(websocket.NewMessage("bonus", "awarded", completion.ChildID, map[string]any{
			"type":        string(award.Result.Type),
			"money_pence": award.Result.MoneyPence,
			"stars":       award.Result.Stars,
			"reason":      award.Result.Reason,
		}))
	}
	if len(awards) > 0 {
		h.hub.Broadcast(websocket.NewMessage("wallet", "updated", completion.ChildID, nil))
	}

	if awards == nil {
		awards = []bonus.Award{}
	}
	writeJSON(w, http.StatusOK, approveResponse{Completion: completion, Awards: awards})
}
