package http

import (
	"encoding/json"
	"net/http"

	"github.com/pranithapadala/FinWell/internal/core"
	"github.com/pranithapadala/FinWell/internal/goals"
)

type goalResponse struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Target  core.Money `json:"target"`
	Saved   core.Money `json:"saved"`
	Percent float64    `json:"percent"`
}

type createGoalRequest struct {
	Name   string `json:"name"`
	Target string `json:"target"`
	Saved  string `json:"saved"`
}

type updateGoalRequest struct {
	Saved string `json:"saved"`
}

func toGoalResponse(g goals.SavingsGoal) goalResponse {
	return goalResponse{
		ID:      g.ID,
		Name:    g.Name,
		Target:  g.Target,
		Saved:   g.Saved,
		Percent: goals.PercentComplete(g),
	}
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	collection := s.goals.List()
	out := make([]goalResponse, len(collection))
	for i, g := range collection {
		out[i] = toGoalResponse(g)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, ok := s.goals.Create(r.Context(), sanitizeInput(req.Name), req.Target, req.Saved)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "goal needs a name and a positive target amount")
		return
	}
	writeJSON(w, http.StatusCreated, toGoalResponse(g))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req updateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := r.PathValue("id")
	if _, found := s.goals.Get(id); !found {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}

	// A blank or unparseable edit retains the stored value; that is not an
	// error, the response carries whatever is current.
	s.goals.UpdateSaved(r.Context(), id, req.Saved)

	g, _ := s.goals.Get(id)
	writeJSON(w, http.StatusOK, toGoalResponse(g))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if !s.goals.Remove(r.Context(), r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
