package goals

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pranithapadala/FinWell/internal/core"
)

// SavingsGoal is a user-defined target with a running saved amount. Target is
// always positive for a stored goal; Saved may exceed it (over-saving is
// fine, the displayed completion clamps).
type SavingsGoal struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Target core.Money `json:"target"`
	Saved  core.Money `json:"saved"`
}

// Store persists the full goal collection under a fixed key. Load returns an
// empty collection when the stored state is missing or unreadable.
type Store interface {
	LoadGoals(ctx context.Context) ([]SavingsGoal, error)
	SaveGoals(ctx context.Context, goals []SavingsGoal) error
}

// Tracker owns the in-memory goal collection. It loads the store once at
// construction and writes the whole collection back after every mutation that
// changed state. Mutations hold the lock for their full duration, so a reader
// never observes a goal mid-update.
type Tracker struct {
	mu    sync.Mutex
	store Store
	goals []SavingsGoal
}

// NewTracker loads the persisted collection. An unreadable store starts the
// tracker empty rather than failing: the dashboard stays available and the
// next mutation rewrites the state.
func NewTracker(ctx context.Context, store Store) *Tracker {
	t := &Tracker{store: store}
	if store == nil {
		return t
	}
	goals, err := store.LoadGoals(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Goal store unreadable, starting with empty collection", "error", err)
		return t
	}
	t.goals = goals
	return t
}

// List returns the goals in insertion order.
func (t *Tracker) List() []SavingsGoal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]SavingsGoal(nil), t.goals...)
}

// Create validates and appends a new goal. It declines (no goal stored, ok
// false) when the name is blank or the target does not parse to a positive
// amount. An empty or unparseable saved input defaults to zero.
func (t *Tracker) Create(ctx context.Context, name, target, saved string) (SavingsGoal, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SavingsGoal{}, false
	}
	targetAmount, err := core.ParseAmount(target)
	if err != nil || targetAmount.Cents <= 0 {
		return SavingsGoal{}, false
	}
	savedAmount := core.Money{}
	if strings.TrimSpace(saved) != "" {
		if parsed, err := core.ParseAmount(saved); err == nil {
			savedAmount = parsed
		}
	}

	goal := SavingsGoal{
		ID:     uuid.NewString(),
		Name:   name,
		Target: targetAmount,
		Saved:  savedAmount,
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.goals = append(t.goals, goal)
	t.persistLocked(ctx)
	return goal, true
}

// Remove deletes the goal with the given id. A missing id is a no-op, not an
// error.
func (t *Tracker) Remove(ctx context.Context, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, g := range t.goals {
		if g.ID == id {
			t.goals = append(t.goals[:i], t.goals[i+1:]...)
			t.persistLocked(ctx)
			return true
		}
	}
	return false
}

// UpdateSaved commits a raw saved-amount edit. An empty input models an
// in-progress edit and leaves the stored value untouched; leading zeros are
// normalized away before parsing; input that still fails to parse is ignored
// and the prior value retained. Returns true only when the stored value was
// replaced.
func (t *Tracker) UpdateSaved(ctx context.Context, id, raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	amount, err := core.ParseAmount(core.NormalizeAmountInput(raw))
	if err != nil {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.goals {
		if t.goals[i].ID == id {
			t.goals[i].Saved = amount
			t.persistLocked(ctx)
			return true
		}
	}
	return false
}

// Get returns the goal with the given id.
func (t *Tracker) Get(id string) (SavingsGoal, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, g := range t.goals {
		if g.ID == id {
			return g, true
		}
	}
	return SavingsGoal{}, false
}

// persistLocked writes the collection back to the store. Persistence is
// best-effort: a write failure keeps the in-memory state authoritative.
func (t *Tracker) persistLocked(ctx context.Context) {
	if t.store == nil {
		return
	}
	snapshot := append([]SavingsGoal(nil), t.goals...)
	if err := t.store.SaveGoals(ctx, snapshot); err != nil {
		slog.WarnContext(ctx, "Failed to persist goal collection", "error", err, "count", len(snapshot))
	}
}

// PercentComplete reports the displayed completion, clamped to [0,100]. A
// non-positive target should not occur for a stored goal but yields 0 rather
// than dividing by zero.
func PercentComplete(g SavingsGoal) float64 {
	if g.Target.Cents <= 0 {
		return 0
	}
	pct := float64(g.Saved.Cents) / float64(g.Target.Cents) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
