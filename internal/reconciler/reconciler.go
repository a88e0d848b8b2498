// Package reconciler edits an agent's data-source assignments locally and
// replays the net change against the backend.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

// Gateway is the slice of the API the reconciler talks to
type Gateway interface {
	domain.AssignmentGateway
	ListDataSources(ctx context.Context) ([]entity.DataSource, error)
}

// RefreshFunc reloads agents and data sources after a commit
type RefreshFunc func(ctx context.Context)

// Reconciler holds the state of one open assignment editor. The zero state
// (after New or Close) is closed; Load opens it for an agent.
// A Reconciler is not safe for concurrent use.
type Reconciler struct {
	gateway Gateway
	refresh RefreshFunc
	logger  *slog.Logger

	open        bool
	agentID     int64
	catalog     []entity.DataSource
	assignments map[int64]entity.Assignment
	assigned    map[int64]bool
	selection   Selection
}

// New creates a closed reconciler. refresh may be nil.
func New(gateway Gateway, refresh RefreshFunc, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		gateway:   gateway,
		refresh:   refresh,
		logger:    logger,
		selection: NoSelection{},
	}
}

// Load fetches the agent's assignments and the data-source catalog and
// partitions the catalog into assigned and available. On failure the
// reconciler is left closed.
func (r *Reconciler) Load(ctx context.Context, agentID int64) error {
	r.Close()

	assignments, err := r.gateway.ListAssignments(ctx, agentID)
	if err != nil {
		return domain.NewLoadError(fmt.Sprintf("assignments of agent %d", agentID), err)
	}
	catalog, err := r.gateway.ListDataSources(ctx)
	if err != nil {
		return domain.NewLoadError("data sources", err)
	}

	byID := make(map[int64]entity.Assignment, len(assignments))
	for _, a := range assignments {
		byID[a.DataSourceID] = a
	}
	assigned := make(map[int64]bool, len(assignments))
	for _, ds := range catalog {
		if _, ok := byID[ds.ID]; ok {
			assigned[ds.ID] = true
		}
	}

	r.open = true
	r.agentID = agentID
	r.catalog = catalog
	r.assignments = byID
	r.assigned = assigned
	r.logger.Debug("assignments loaded", "agent_id", agentID, "assigned", len(assigned), "catalog", len(catalog))
	return nil
}

// Close discards all state
func (r *Reconciler) Close() {
	r.open = false
	r.agentID = 0
	r.catalog = nil
	r.assignments = nil
	r.assigned = nil
	r.selection = NoSelection{}
}

// IsOpen reports whether Load succeeded and the editor has not been closed
func (r *Reconciler) IsOpen() bool { return r.open }

// AgentID returns the agent being edited
func (r *Reconciler) AgentID() int64 { return r.agentID }

// Selection returns the current selection
func (r *Reconciler) Selection() Selection { return r.selection }

// Assigned returns the data sources currently marked assigned, in catalog order
func (r *Reconciler) Assigned() []entity.DataSource {
	return r.partition(true)
}

// Available returns the data sources not marked assigned, in catalog order
func (r *Reconciler) Available() []entity.DataSource {
	return r.partition(false)
}

// IsAssigned reports whether id is marked assigned
func (r *Reconciler) IsAssigned(id int64) bool {
	return r.assigned[id]
}

// Assignment returns the persisted assignment for a data source, as loaded
func (r *Reconciler) Assignment(dataSourceID int64) (entity.Assignment, bool) {
	a, ok := r.assignments[dataSourceID]
	return a, ok
}

func (r *Reconciler) partition(assigned bool) []entity.DataSource {
	out := make([]entity.DataSource, 0, len(r.catalog))
	for _, ds := range r.catalog {
		if r.assigned[ds.ID] == assigned {
			out = append(out, ds)
		}
	}
	return out
}

// ToggleAssign marks a catalog data source as assigned. Unknown ids and
// ids already assigned are ignored.
func (r *Reconciler) ToggleAssign(dataSourceID int64) {
	if r.inCatalog(dataSourceID) {
		r.assigned[dataSourceID] = true
	}
}

// ToggleUnassign marks a catalog data source as available. Unknown ids and
// ids already available are ignored.
func (r *Reconciler) ToggleUnassign(dataSourceID int64) {
	if r.inCatalog(dataSourceID) {
		delete(r.assigned, dataSourceID)
	}
}

func (r *Reconciler) inCatalog(id int64) bool {
	if !r.open {
		return false
	}
	for _, ds := range r.catalog {
		if ds.ID == id {
			return true
		}
	}
	return false
}

// SelectForEdit opens a persisted, currently assigned data source for
// configuration edits. Any previous selection and its unsaved draft are
// dropped.
func (r *Reconciler) SelectForEdit(dataSourceID int64) error {
	a, ok := r.assignments[dataSourceID]
	if !r.open || !ok || !r.assigned[dataSourceID] {
		return domain.NewNotFoundError("assignment", dataSourceID)
	}
	r.selection = Editing{Assignment: a, Draft: a.Settings()}
	return nil
}

// EditSelection replaces the draft settings of the selected assignment
func (r *Reconciler) EditSelection(priority int, queryTrigger string, isActive bool) error {
	editing, ok := r.selection.(Editing)
	if !ok {
		return domain.NewNotFoundError("selected assignment", "none")
	}
	editing.Draft = entity.AssignmentSettings{
		IsActive:     isActive,
		Priority:     priority,
		QueryTrigger: queryTrigger,
	}
	r.selection = editing
	return nil
}

// ClearSelection drops the current selection and its draft
func (r *Reconciler) ClearSelection() {
	r.selection = NoSelection{}
}

// Plan is the set of calls a commit would issue against a backend set
type Plan struct {
	ToAdd    []int64
	ToRemove []int64
	Update   *Editing
}

// Diff computes the plan for backend ids against the current local state
func (r *Reconciler) Diff(backend []int64) Plan {
	before := make(map[int64]bool, len(backend))
	for _, id := range backend {
		before[id] = true
	}

	var plan Plan
	for id := range r.assigned {
		if !before[id] {
			plan.ToAdd = append(plan.ToAdd, id)
		}
	}
	for id := range before {
		if !r.assigned[id] {
			plan.ToRemove = append(plan.ToRemove, id)
		}
	}
	sortIDs(plan.ToAdd)
	sortIDs(plan.ToRemove)

	if editing, ok := r.selection.(Editing); ok && editing.Dirty() {
		plan.Update = &editing
	}
	return plan
}

// Commit re-fetches the backend assignments, then issues creates for newly
// assigned ids, the delete and recreate of a dirty selection, and deletes
// for unassigned ids. Every call runs even when earlier ones fail. Once
// the calls are done the refresh signal fires and the reconciler closes.
//
// A failure to re-fetch aborts with a LoadError before anything is applied
// and leaves the editor open. Otherwise the returned error joins every
// failed call.
func (r *Reconciler) Commit(ctx context.Context) (*CommitResult, error) {
	if !r.open {
		return nil, domain.NewLoadError("assignments", errors.New("assignment editor is not open"))
	}

	current, err := r.gateway.ListAssignments(ctx, r.agentID)
	if err != nil {
		return nil, domain.NewLoadError(fmt.Sprintf("assignments of agent %d", r.agentID), err)
	}
	backend := make([]int64, 0, len(current))
	for _, a := range current {
		backend = append(backend, a.DataSourceID)
	}

	plan := r.Diff(backend)
	result := &CommitResult{AgentID: r.agentID}
	logger := r.logger.With("agent_id", r.agentID)

	for _, id := range plan.ToAdd {
		in := domain.NewAssignmentInput(id, entity.AssignmentSettings{IsActive: true})
		if _, err := r.gateway.CreateAssignment(ctx, r.agentID, in); err != nil {
			logger.Warn("failed to add data source", "data_source_id", id, "error", err)
			result.fail(OpCreate, id, err)
			continue
		}
		result.Created = append(result.Created, id)
	}

	if plan.Update != nil {
		r.applyUpdate(ctx, logger, *plan.Update, result)
	}

	for _, id := range plan.ToRemove {
		if err := r.gateway.DeleteAssignment(ctx, r.agentID, id); err != nil {
			logger.Warn("failed to remove data source", "data_source_id", id, "error", err)
			result.fail(OpDelete, id, err)
			continue
		}
		result.Removed = append(result.Removed, id)
	}

	if r.refresh != nil {
		r.refresh(ctx)
	}
	r.Close()

	logger.Info("assignments committed",
		"created", len(result.Created),
		"updated", len(result.Updated),
		"removed", len(result.Removed),
		"failed", len(result.Failures),
	)
	return result, result.Err()
}

// applyUpdate replaces the selected assignment with its draft. There is no
// update endpoint, so this is a delete followed by a create; a failed
// create after a successful delete loses the assignment.
func (r *Reconciler) applyUpdate(ctx context.Context, logger *slog.Logger, editing Editing, result *CommitResult) {
	id := editing.Assignment.DataSourceID

	if err := r.gateway.DeleteAssignment(ctx, r.agentID, id); err != nil {
		logger.Warn("failed to update data source settings", "data_source_id", id, "stage", "delete", "error", err)
		result.fail(OpUpdate, id, err)
		return
	}

	in := domain.NewAssignmentInput(id, editing.Draft)
	if _, err := r.gateway.CreateAssignment(ctx, r.agentID, in); err != nil {
		logger.Error("assignment lost: recreate failed after delete",
			"data_source_id", id,
			"priority", editing.Draft.Priority,
			"error", err,
		)
		result.fail(OpUpdate, id, err)
		result.Lost = append(result.Lost, id)
		return
	}
	result.Updated = append(result.Updated, id)
}

func sortIDs(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
