// Package store implements the generic resource state container: one
// in-memory collection per dashboard resource, with the five standard
// operations (list, create, read-one, update, delete) plus a stats
// aggregate, all backed by the upstream REST client.
//
// The container holds items, a load status, the last error string, the
// current selection, and the screen's ephemeral query/filter/page state.
// Mutations patch the collection in place from the server's response; a
// failed list fetch leaves the previous items visible rather than clearing
// the view.
package store

import (
	"context"
	"encoding/json"
	"net/url"
	"slices"
	"sync"

	"github.com/edubridge/admingate/internal/domain"
	"github.com/edubridge/admingate/internal/resource"
	"github.com/edubridge/admingate/internal/upstream"
)

// Store is the state container for one resource collection.
type Store[T any] struct {
	client *upstream.Client
	desc   resource.Descriptor[T]

	mu       sync.Mutex
	items    []T
	status   domain.Status
	errMsg   string
	stats    map[string]float64
	selected *T
	query    string
	filters  map[string]string
	page     int

	// listGen sequences overlapping List calls: a response whose generation
	// is no longer current is discarded, so an older fetch resolving after a
	// newer one can never overwrite the newer result set.
	listGen uint64
}

// Snapshot is an immutable copy of a store's state.
type Snapshot[T any] struct {
	Items    []T
	Status   domain.Status
	Error    string
	Stats    map[string]float64
	Selected *T
	Query    string
	Filters  map[string]string
	Page     int
}

// New creates a store for the given resource, initially idle and empty.
func New[T any](client *upstream.Client, desc resource.Descriptor[T]) *Store[T] {
	return &Store[T]{
		client:  client,
		desc:    desc,
		status:  domain.StatusIdle,
		filters: make(map[string]string),
		page:    1,
	}
}

// Descriptor returns the resource descriptor this store was built with.
func (s *Store[T]) Descriptor() resource.Descriptor[T] {
	return s.desc
}

// Snapshot returns a copy of the current state.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]T, len(s.items))
	copy(items, s.items)

	filters := make(map[string]string, len(s.filters))
	for k, v := range s.filters {
		filters[k] = v
	}

	var stats map[string]float64
	if s.stats != nil {
		stats = make(map[string]float64, len(s.stats))
		for k, v := range s.stats {
			stats[k] = v
		}
	}

	var selected *T
	if s.selected != nil {
		sel := *s.selected
		selected = &sel
	}

	return Snapshot[T]{
		Items:    items,
		Status:   s.status,
		Error:    s.errMsg,
		Stats:    stats,
		Selected: selected,
		Query:    s.query,
		Filters:  filters,
		Page:     s.page,
	}
}

// SetQuery updates the free-text query. Changing it resets the page to 1.
func (s *Store[T]) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.query == q {
		return
	}
	s.query = q
	s.page = 1
}

// SetFilter updates one categorical filter field. Unknown fields are
// ignored. Changing a filter resets the page to 1.
func (s *Store[T]) SetFilter(field, value string) {
	if !slices.Contains(s.desc.FilterFields, field) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filters[field] == value {
		return
	}
	s.filters[field] = value
	s.page = 1
}

// SetPage moves to the given page. Values below 1 clamp to 1; clamping
// against the filtered total happens at view-derivation time.
func (s *Store[T]) SetPage(p int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p < 1 {
		p = 1
	}
	s.page = p
}

// ClearSelected drops the current selection.
func (s *Store[T]) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// ClearError drops the last error string.
func (s *Store[T]) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// EnsureLoaded fetches the collection when the store has never loaded.
func (s *Store[T]) EnsureLoaded(ctx context.Context) error {
	s.mu.Lock()
	idle := s.status == domain.StatusIdle
	s.mu.Unlock()
	if !idle {
		return nil
	}
	return s.List(ctx)
}

// List fetches the collection, replacing items wholesale on success. On
// failure the previous items stay visible and only the status and error
// string change. The current query and any non-wildcard filters are passed
// through to the backend.
func (s *Store[T]) List(ctx context.Context) error {
	s.mu.Lock()
	s.status = domain.StatusLoading
	s.errMsg = ""
	s.listGen++
	gen := s.listGen
	params := url.Values{}
	if s.query != "" {
		params.Set("query", s.query)
	}
	for field, value := range s.filters {
		if value != "" && value != domain.FilterAll {
			params.Set(field, value)
		}
	}
	s.mu.Unlock()

	payload, err := s.client.Get(ctx, s.collectionPath(), params)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.listGen {
		// A newer List superseded this one; drop the response either way.
		return nil
	}

	if err != nil {
		s.status = domain.StatusFailed
		s.errMsg = domain.Message(err, "failed to fetch "+s.desc.Plural)
		return err
	}

	raws, decodeErr := decodeCollection(payload)
	if decodeErr != nil {
		s.status = domain.StatusFailed
		s.errMsg = "failed to fetch " + s.desc.Plural
		return domain.NewAppError(domain.CodeUpstream, s.errMsg, decodeErr)
	}

	items := make([]T, 0, len(raws))
	seen := make(map[string]bool, len(raws))
	for _, r := range raws {
		rec := s.desc.Normalize(r)
		recID := s.desc.ID(rec)
		if recID != "" && seen[recID] {
			continue
		}
		seen[recID] = true
		items = append(items, rec)
	}

	s.items = items
	s.status = domain.StatusSucceeded
	return nil
}

// Create submits a new record and prepends the normalized server response to
// items (newest first). No follow-up list fetch is needed.
func (s *Store[T]) Create(ctx context.Context, payload resource.Raw) (T, error) {
	var zero T
	if s.desc.PrepareCreate != nil {
		payload = s.desc.PrepareCreate(payload)
	}

	resp, err := s.client.Post(ctx, s.collectionPath(), payload)
	if err != nil {
		s.fail(domain.Message(err, "failed to create "+s.desc.Name))
		return zero, err
	}

	raw, decodeErr := decodeRecord(resp)
	if decodeErr != nil {
		msg := "failed to create " + s.desc.Name
		s.fail(msg)
		return zero, domain.NewAppError(domain.CodeUpstream, msg, decodeErr)
	}
	rec := s.desc.Normalize(raw)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T{rec}, removeByID(s.items, s.desc.ID, s.desc.ID(rec))...)
	s.errMsg = ""
	return rec, nil
}

// Get fetches a single record and sets it as the selection. The previous
// selection is cleared as soon as the fetch starts so a stale record is
// never shown while a new one loads.
func (s *Store[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()

	resp, err := s.client.Get(ctx, s.recordPath(id), nil)
	if err != nil {
		s.fail(domain.Message(err, "failed to fetch "+s.desc.Name))
		return zero, err
	}

	raw, decodeErr := decodeRecord(resp)
	if decodeErr != nil {
		msg := "failed to fetch " + s.desc.Name
		s.fail(msg)
		return zero, domain.NewAppError(domain.CodeUpstream, msg, decodeErr)
	}
	rec := s.desc.Normalize(raw)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &rec
	s.errMsg = ""
	return rec, nil
}

// Update submits a partial payload and shallow-merges the server's response
// into the matching item and into the selection when their ids match. Fields
// absent from the response keep their stored values, which tolerates partial
// server responses.
//
// When no item matches the id (for example the record was deleted by another
// admin between fetch and update), the merge is silently dropped from items;
// the selection is still updated when its id matches.
func (s *Store[T]) Update(ctx context.Context, id string, partial resource.Raw) (T, error) {
	var zero T
	resp, err := s.client.Patch(ctx, s.recordPath(id), partial)
	if err != nil {
		s.fail(domain.Message(err, "failed to update "+s.desc.Name))
		return zero, err
	}

	overlay, decodeErr := decodeRecord(resp)
	if decodeErr != nil || len(overlay) == 0 {
		// Backend confirmed but returned no body; the submitted fields are
		// the best available view of the change.
		overlay = partial
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.desc.Normalize(overlay)
	found := false
	for i, item := range s.items {
		if s.desc.ID(item) == id {
			merged = mergeRecord(item, overlay, s.desc.Normalize)
			s.items[i] = merged
			found = true
			break
		}
	}

	if s.selected != nil && s.desc.ID(*s.selected) == id {
		if !found {
			merged = mergeRecord(*s.selected, overlay, s.desc.Normalize)
		}
		s.selected = &merged
	}

	s.errMsg = ""
	return merged, nil
}

// Delete removes a record after the backend confirms. There is no optimistic
// removal; items stay untouched until the call succeeds. The selection is
// cleared iff it held the deleted id.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, s.recordPath(id)); err != nil {
		s.fail(domain.Message(err, "failed to delete "+s.desc.Name))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = removeByID(s.items, s.desc.ID, id)
	if s.selected != nil && s.desc.ID(*s.selected) == id {
		s.selected = nil
	}
	s.errMsg = ""
	return nil
}

// Stats fetches the read-only aggregate for this resource. When the endpoint
// fails or returns nothing and the descriptor can derive the same shape from
// items, the derived aggregate is used as the fallback path.
func (s *Store[T]) Stats(ctx context.Context) (map[string]float64, error) {
	payload, err := s.client.Get(ctx, s.collectionPath()+"/stats", nil)

	var stats map[string]float64
	if err == nil {
		if decodeErr := json.Unmarshal(payload, &stats); decodeErr != nil {
			err = domain.NewAppError(domain.CodeUpstream, "failed to fetch "+s.desc.Name+" stats", decodeErr)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if (err != nil || len(stats) == 0) && s.desc.DeriveStats != nil {
		stats = s.desc.DeriveStats(s.items)
		s.stats = stats
		return stats, nil
	}
	if err != nil {
		s.errMsg = domain.Message(err, "failed to fetch "+s.desc.Name+" stats")
		return nil, err
	}

	s.stats = stats
	return stats, nil
}

func (s *Store[T]) collectionPath() string {
	return "/admin/" + s.desc.Path
}

func (s *Store[T]) recordPath(id string) string {
	return s.collectionPath() + "/" + url.PathEscape(id)
}

func (s *Store[T]) fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}

// mergeRecord overlays the fields present in overlay onto existing and
// re-normalizes, so unmentioned fields keep their stored values.
func mergeRecord[T any](existing T, overlay resource.Raw, normalize func(resource.Raw) T) T {
	m := resource.Fields(existing)
	for k, v := range overlay {
		m[k] = v
	}
	return normalize(m)
}

// decodeCollection accepts both {docs: [...]} and a bare array.
func decodeCollection(payload json.RawMessage) ([]resource.Raw, error) {
	var wrapped struct {
		Docs []resource.Raw `json:"docs"`
	}
	if err := json.Unmarshal(payload, &wrapped); err == nil && wrapped.Docs != nil {
		return wrapped.Docs, nil
	}

	var raws []resource.Raw
	if err := json.Unmarshal(payload, &raws); err != nil {
		return nil, err
	}
	return raws, nil
}

func decodeRecord(payload json.RawMessage) (resource.Raw, error) {
	if len(payload) == 0 {
		return resource.Raw{}, nil
	}
	var raw resource.Raw
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func removeByID[T any](items []T, idOf func(T) string, id string) []T {
	out := items[:0:0]
	for _, item := range items {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}
