// Package session holds browse sessions: the server-side state of one
// catalog screen.
package session

import (
	"sync"
	"time"

	"alltagslabor/internal/catalog"
	"alltagslabor/internal/domain"
)

// Session is one browse screen over a language dataset. All methods are safe
// for concurrent use.
type Session struct {
	id string

	mu       sync.Mutex
	dataset  *catalog.Dataset
	view     view
	query    catalog.Query
	open     *domain.Experiment
	tutorial *catalog.TutorialNavigator
	lastSeen time.Time
}

// Snapshot is a point-in-time copy of a session.
type Snapshot struct {
	ID             string
	Language       domain.Language
	Mode           Mode
	Query          catalog.Query
	ActiveCategory *domain.Category
	Items          []domain.Experiment
	Facets         catalog.Facets
	Open           *domain.Experiment
	Tutorial       *catalog.TutorialNavigator
	LastSeen       time.Time
}

func newSession(id string, ds *catalog.Dataset, now time.Time) *Session {
	return &Session{
		id:       id,
		dataset:  ds,
		view:     categoryBrowse{},
		query:    catalog.DefaultQuery(),
		lastSeen: now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Search filters the visible records and shows them as a flat list. Any
// active category is cleared.
func (s *Session) Search(q catalog.Query) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search(q.WithDefaults())
}

// ResetFilters puts every facet back to the wildcard and re-runs the search
// with the current text.
func (s *Session) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search(s.query.ResetFacets())
}

func (s *Session) search(q catalog.Query) {
	s.query = q
	s.view = flatList{items: catalog.Filter(s.dataset.Visible, q)}
}

// EnterCategory resolves a category entry. Theory and tasks entries open
// their record; the experiments entry shows its set as a flat list tagged
// with the category and resets the query. A miss leaves the session as it
// was.
func (s *Session) EnterCategory(key domain.CategoryKey, entry domain.EntryKind) (catalog.Resolution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := catalog.ResolveEntry(s.dataset.Visible, key, entry)
	if err != nil {
		return catalog.Resolution{}, err
	}

	switch res.Kind {
	case catalog.ResolutionSet:
		category := res.Category
		s.query = catalog.DefaultQuery()
		s.view = flatList{items: res.Experiments, category: &category}
	case catalog.ResolutionSingle:
		s.openRecord(res.Experiment)
	}
	return res, nil
}

// BackToCategories returns to the category grid and resets the query.
func (s *Session) BackToCategories() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = catalog.DefaultQuery()
	s.view = categoryBrowse{}
}

// ApplyDataset switches the session to ds, typically a different language.
// The query is reset, the session returns to the category grid and any open
// record is closed.
func (s *Session) ApplyDataset(ds *catalog.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = ds
	s.query = catalog.DefaultQuery()
	s.view = categoryBrowse{}
	s.closeRecord()
}

// Open opens the visible record with the given exact title. The tutorial
// cursor restarts at the first step, also when the record was already open.
func (s *Session) Open(title string) (domain.Experiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := catalog.FindByTitle(s.dataset.Visible, title)
	if !ok {
		return domain.Experiment{}, domain.NewExperimentNotFoundError(title)
	}
	s.openRecord(e)
	return e, nil
}

func (s *Session) openRecord(e domain.Experiment) {
	s.open = &e
	s.tutorial = nil
	if catalog.IsTutorialExperiment(e) {
		s.tutorial = catalog.NewTutorialNavigator(e.Steps)
	}
}

// Close closes the open record, if any.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeRecord()
}

func (s *Session) closeRecord() {
	s.open = nil
	s.tutorial = nil
}

// Next advances the tutorial cursor, saturating at the last step.
func (s *Session) Next() (catalog.Progress, error) {
	return s.step((*catalog.TutorialNavigator).Advance)
}

// Prev moves the tutorial cursor back, saturating at the first step.
func (s *Session) Prev() (catalog.Progress, error) {
	return s.step((*catalog.TutorialNavigator).Retreat)
}

func (s *Session) step(move func(*catalog.TutorialNavigator)) (catalog.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tutorial == nil {
		return catalog.Progress{}, domain.NewTutorialInactiveError()
	}
	move(s.tutorial)
	return s.tutorial.Progress(), nil
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:       s.id,
		Language: s.dataset.Language,
		Mode:     s.view.mode(),
		Query:    s.query,
		Facets:   s.dataset.Facets,
		LastSeen: s.lastSeen,
	}
	if list, ok := s.view.(flatList); ok {
		snap.Items = list.items
		if list.category != nil {
			category := *list.category
			snap.ActiveCategory = &category
		}
	}
	if s.open != nil {
		e := *s.open
		snap.Open = &e
	}
	if s.tutorial != nil {
		nav := *s.tutorial
		snap.Tutorial = &nav
	}
	return snap
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
