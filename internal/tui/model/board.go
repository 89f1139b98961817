// Package model holds the lead board state shared between views.
package model

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/client"
)

// Gateway is the daemon surface the board depends on.
type Gateway interface {
	ListLeads(ctx context.Context, status lead.Status, keyword string) ([]lead.Lead, error)
	GetStats(ctx context.Context) (*lead.Stats, error)
	ActivateLead(ctx context.Context, id int64) (*lead.Lead, error)
	ResearchLead(ctx context.Context, id int64) (*lead.Lead, error)
	GenerateLetter(ctx context.Context, id int64) (*lead.Lead, error)
	SaveLetter(ctx context.Context, id int64, text string) (*lead.Lead, error)
	UpdateStatus(ctx context.Context, id int64, status lead.Status) (*lead.Lead, error)
	DeleteLead(ctx context.Context, id int64) error
	SearchPostings(ctx context.Context, opts client.SearchOptions) ([]lead.Posting, error)
	ImportPostings(ctx context.Context, postings []lead.Posting) (*client.ImportSummary, error)
}

// Board caches daemon state for the UI and owns selection and search-session
// state. Mutations go through the daemon; the board reloads or patches its
// snapshot afterwards and signals a refresh.
type Board struct {
	mu sync.RWMutex

	gw    Gateway
	Flash Flash

	leads []lead.Lead
	stats *lead.Stats

	statusFilter  lead.Status
	keywordFilter string

	selection map[int64]struct{}

	// Leads with a mutation in flight; repeat triggers are rejected
	// until the first call returns.
	inflight map[int64]struct{}

	// One import session: search results plus the indices picked for import.
	results   []lead.Posting
	picked    map[int]struct{}
	searching bool

	refreshCh chan struct{}
}

// NewBoard creates a board backed by the given gateway.
func NewBoard(gw Gateway) *Board {
	return &Board{
		gw:        gw,
		selection: make(map[int64]struct{}),
		inflight:  make(map[int64]struct{}),
		picked:    make(map[int]struct{}),
		refreshCh: make(chan struct{}, 1),
	}
}

// RefreshCh signals that cached state changed and views should re-render.
func (b *Board) RefreshCh() <-chan struct{} {
	return b.refreshCh
}

func (b *Board) signalRefresh() {
	select {
	case b.refreshCh <- struct{}{}:
	default:
	}
}

// LoadLeads fetches the lead list with the current filters and replaces the
// snapshot. Concurrent loads are allowed; the reply applied last wins.
func (b *Board) LoadLeads(ctx context.Context) error {
	b.mu.RLock()
	status, keyword := b.statusFilter, b.keywordFilter
	b.mu.RUnlock()

	leads, err := b.gw.ListLeads(ctx, status, keyword)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.leads = leads
	b.mu.Unlock()
	b.signalRefresh()
	return nil
}

// LoadStats fetches the per-status counters.
func (b *Board) LoadStats(ctx context.Context) error {
	stats, err := b.gw.GetStats(ctx)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.stats = stats
	b.mu.Unlock()
	b.signalRefresh()
	return nil
}

// SetFilters stores the status and keyword filters used by LoadLeads.
func (b *Board) SetFilters(status lead.Status, keyword string) {
	b.mu.Lock()
	b.statusFilter = status
	b.keywordFilter = keyword
	b.mu.Unlock()
}

// Filters returns the active list filters.
func (b *Board) Filters() (lead.Status, string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.statusFilter, b.keywordFilter
}

// Leads returns a copy of the current lead snapshot.
func (b *Board) Leads() []lead.Lead {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]lead.Lead, len(b.leads))
	copy(out, b.leads)
	return out
}

// Lead returns the cached lead with the given id, or nil.
func (b *Board) Lead(id int64) *lead.Lead {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for i := range b.leads {
		if b.leads[i].ID == id {
			l := b.leads[i]
			return &l
		}
	}
	return nil
}

// Stats returns the cached counters, or nil before the first load.
func (b *Board) Stats() *lead.Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stats
}

// beginMutation latches a lead against concurrent mutations. Returns
// false when one is already running for it.
func (b *Board) beginMutation(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, busy := b.inflight[id]; busy {
		return false
	}
	b.inflight[id] = struct{}{}
	return true
}

func (b *Board) endMutation(id int64) {
	b.mu.Lock()
	delete(b.inflight, id)
	b.mu.Unlock()
}

var errMutationInFlight = fmt.Errorf("Aktion läuft bereits")

// Activate moves a fresh lead to the activated stage and reloads the list.
func (b *Board) Activate(ctx context.Context, id int64) error {
	if !b.beginMutation(id) {
		return errMutationInFlight
	}
	defer b.endMutation(id)

	if _, err := b.gw.ActivateLead(ctx, id); err != nil {
		return err
	}
	b.Flash.Info("Lead aktiviert")
	return b.LoadLeads(ctx)
}

// Research runs company research and patches only the affected lead in the
// snapshot, so the cursor position and the rest of the list stay put.
func (b *Board) Research(ctx context.Context, id int64) error {
	if !b.beginMutation(id) {
		return errMutationInFlight
	}
	defer b.endMutation(id)

	updated, err := b.gw.ResearchLead(ctx, id)
	if err != nil {
		return err
	}

	b.mu.Lock()
	for i := range b.leads {
		if b.leads[i].ID == id {
			b.leads[i] = *updated
			break
		}
	}
	b.mu.Unlock()
	b.Flash.Info("Recherche abgeschlossen")
	b.signalRefresh()
	return nil
}

// GenerateLetter drafts a cover letter. When the cached lead already has a
// letter the daemon is not contacted and the existing draft is returned.
func (b *Board) GenerateLetter(ctx context.Context, id int64) (*lead.Lead, error) {
	if cached := b.Lead(id); cached != nil && cached.HasLetter() {
		b.Flash.Info("Anschreiben bereits vorhanden")
		return cached, nil
	}

	if !b.beginMutation(id) {
		return nil, errMutationInFlight
	}
	defer b.endMutation(id)

	updated, err := b.gw.GenerateLetter(ctx, id)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	for i := range b.leads {
		if b.leads[i].ID == id {
			b.leads[i] = *updated
			break
		}
	}
	b.mu.Unlock()
	b.Flash.Info("Anschreiben erstellt")
	b.signalRefresh()
	return updated, nil
}

// SaveLetter stores an edited letter text and reloads the list.
func (b *Board) SaveLetter(ctx context.Context, id int64, text string) error {
	if _, err := b.gw.SaveLetter(ctx, id, text); err != nil {
		return err
	}
	b.Flash.Info("Anschreiben gespeichert")
	return b.LoadLeads(ctx)
}

// UpdateStatus sets a lead's status exactly as given and reloads the list.
func (b *Board) UpdateStatus(ctx context.Context, id int64, status lead.Status) error {
	if _, err := b.gw.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	b.Flash.Info(fmt.Sprintf("Status: %s", status.Label()))
	return b.LoadLeads(ctx)
}

// Delete removes one lead and reloads the list.
func (b *Board) Delete(ctx context.Context, id int64) error {
	if err := b.gw.DeleteLead(ctx, id); err != nil {
		return err
	}
	b.mu.Lock()
	delete(b.selection, id)
	b.mu.Unlock()
	b.Flash.Info("Lead gelöscht")
	return b.LoadLeads(ctx)
}

// ToggleSelect flips a lead's membership in the bulk selection.
func (b *Board) ToggleSelect(id int64) {
	b.mu.Lock()
	if _, ok := b.selection[id]; ok {
		delete(b.selection, id)
	} else {
		b.selection[id] = struct{}{}
	}
	b.mu.Unlock()
	b.signalRefresh()
}

// SelectAll selects every lead in the current snapshot. When all of them
// are already selected it clears the selection instead.
func (b *Board) SelectAll() {
	b.mu.Lock()
	all := len(b.leads) > 0
	for i := range b.leads {
		if _, ok := b.selection[b.leads[i].ID]; !ok {
			all = false
			break
		}
	}
	if all {
		b.selection = make(map[int64]struct{})
	} else {
		for i := range b.leads {
			b.selection[b.leads[i].ID] = struct{}{}
		}
	}
	b.mu.Unlock()
	b.signalRefresh()
}

// AllSelected reports whether every lead in the snapshot is selected.
func (b *Board) AllSelected() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.leads) == 0 {
		return false
	}
	for i := range b.leads {
		if _, ok := b.selection[b.leads[i].ID]; !ok {
			return false
		}
	}
	return true
}

// IsSelected reports bulk-selection membership.
func (b *Board) IsSelected(id int64) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.selection[id]
	return ok
}

// SelectedIDs returns the selected lead ids in unspecified order.
func (b *Board) SelectedIDs() []int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := make([]int64, 0, len(b.selection))
	for id := range b.selection {
		ids = append(ids, id)
	}
	return ids
}

// SelectionCount returns the number of selected leads.
func (b *Board) SelectionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.selection)
}

// ClearSelection empties the bulk selection.
func (b *Board) ClearSelection() {
	b.mu.Lock()
	b.selection = make(map[int64]struct{})
	b.mu.Unlock()
	b.signalRefresh()
}

// DeleteSelected deletes every selected lead concurrently, best effort. Leads
// that fail stay in the database but the selection is cleared and the list
// reloaded either way, so the board never shows stale rows.
func (b *Board) DeleteSelected(ctx context.Context) error {
	ids := b.SelectedIDs()
	if len(ids) == 0 {
		return nil
	}

	var (
		mu     sync.Mutex
		failed int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := b.gw.DeleteLead(gctx, id); err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	b.ClearSelection()
	if failed > 0 {
		b.Flash.Warn(fmt.Sprintf("%d von %d Leads gelöscht", len(ids)-failed, len(ids)))
	} else {
		b.Flash.Info(fmt.Sprintf("%d Leads gelöscht", len(ids)))
	}
	return b.LoadLeads(ctx)
}

// Search runs one job board search. A second search while one is in flight
// is rejected. New results discard the previous import session.
func (b *Board) Search(ctx context.Context, opts client.SearchOptions) error {
	b.mu.Lock()
	if b.searching {
		b.mu.Unlock()
		return fmt.Errorf("Suche läuft bereits")
	}
	b.searching = true
	b.mu.Unlock()

	results, err := b.gw.SearchPostings(ctx, opts)

	b.mu.Lock()
	b.searching = false
	if err == nil {
		b.results = results
		b.picked = make(map[int]struct{})
	}
	b.mu.Unlock()

	if err != nil {
		return err
	}
	b.Flash.Info(fmt.Sprintf("%d Treffer", len(results)))
	b.signalRefresh()
	return nil
}

// ResetSession discards the import session: search results and picks.
// Called when the import view is opened or left, so a stale session
// never leaks into the next one.
func (b *Board) ResetSession() {
	b.mu.Lock()
	b.results = nil
	b.picked = make(map[int]struct{})
	b.mu.Unlock()
	b.signalRefresh()
}

// Searching reports whether a search is in flight.
func (b *Board) Searching() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.searching
}

// Results returns a copy of the current search results.
func (b *Board) Results() []lead.Posting {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]lead.Posting, len(b.results))
	copy(out, b.results)
	return out
}

// TogglePick flips a search result's membership in the import picks.
func (b *Board) TogglePick(index int) {
	b.mu.Lock()
	if index < 0 || index >= len(b.results) {
		b.mu.Unlock()
		return
	}
	if _, ok := b.picked[index]; ok {
		delete(b.picked, index)
	} else {
		b.picked[index] = struct{}{}
	}
	b.mu.Unlock()
	b.signalRefresh()
}

// IsPicked reports import-pick membership for a result index.
func (b *Board) IsPicked(index int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.picked[index]
	return ok
}

// PickedCount returns the number of picked search results.
func (b *Board) PickedCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.picked)
}

// pickedPostings snapshots the picked postings in result order.
func (b *Board) pickedPostings() []lead.Posting {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]lead.Posting, 0, len(b.picked))
	for i := range b.results {
		if _, ok := b.picked[i]; ok {
			out = append(out, b.results[i])
		}
	}
	return out
}

// ImportSelected imports the picked postings as leads, then ends the import
// session and reloads the board.
func (b *Board) ImportSelected(ctx context.Context) (*client.ImportSummary, error) {
	postings := b.pickedPostings()
	if len(postings) == 0 {
		return nil, fmt.Errorf("Keine Jobs ausgewählt")
	}

	summary, err := b.gw.ImportPostings(ctx, postings)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.results = nil
	b.picked = make(map[int]struct{})
	b.mu.Unlock()

	b.Flash.Info(summary.Message)
	if err := b.LoadLeads(ctx); err != nil {
		return summary, err
	}
	return summary, nil
}
