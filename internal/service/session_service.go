package service

import (
	"context"

	"alltagslabor/internal/catalog"
	"alltagslabor/internal/domain"
	"alltagslabor/internal/dto"
	"alltagslabor/internal/logger"
	"alltagslabor/internal/repository"
	"alltagslabor/internal/session"

	"go.uber.org/zap"
)

// SessionService drives browse sessions. Every operation returns the
// resulting session state.
type SessionService interface {
	Create(ctx context.Context, lang domain.Language) (*dto.SessionResponse, error)
	Get(ctx context.Context, id string) (*dto.SessionResponse, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, id string, req dto.SearchRequest) (*dto.SessionResponse, error)
	ResetFilters(ctx context.Context, id string) (*dto.SessionResponse, error)
	EnterCategory(ctx context.Context, id string, key domain.CategoryKey, entry domain.EntryKind) (*dto.SessionResponse, error)
	BackToCategories(ctx context.Context, id string) (*dto.SessionResponse, error)
	SwitchLanguage(ctx context.Context, id string, lang domain.Language) (*dto.SessionResponse, error)
	Open(ctx context.Context, id string, title string) (*dto.SessionResponse, error)
	Close(ctx context.Context, id string) (*dto.SessionResponse, error)
	Next(ctx context.Context, id string) (*dto.SessionResponse, error)
	Prev(ctx context.Context, id string) (*dto.SessionResponse, error)
}

type sessionService struct {
	repo     repository.ExperimentRepository
	store    *session.Store
	renderer catalog.Renderer
}

func NewSessionService(repo repository.ExperimentRepository, store *session.Store, renderer catalog.Renderer) SessionService {
	return &sessionService{repo: repo, store: store, renderer: renderer}
}

func (s *sessionService) Create(ctx context.Context, lang domain.Language) (*dto.SessionResponse, error) {
	ds, err := s.repo.Get(ctx, lang)
	if err != nil {
		return nil, err
	}
	sess := s.store.Create(ds)
	logger.Get().Debug("Session created", zap.String("session_id", sess.ID()), zap.String("language", string(lang.Code)))
	return s.respond(sess), nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.with(id, func(*session.Session) error { return nil })
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(id)
}

func (s *sessionService) Search(ctx context.Context, id string, req dto.SearchRequest) (*dto.SessionResponse, error) {
	return s.with(id, func(sess *session.Session) error {
		sess.Search(toQuery(req))
		return nil
	})
}

func (s *sessionService) ResetFilters(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.with(id, func(sess *session.Session) error {
		sess.ResetFilters()
		return nil
	})
}

func (s *sessionService) EnterCategory(ctx context.Context, id string, key domain.CategoryKey, entry domain.EntryKind) (*dto.SessionResponse, error) {
	return s.with(id, func(sess *session.Session) error {
		_, err := sess.EnterCategory(key, entry)
		return err
	})
}

func (s *sessionService) BackToCategories(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.with(id, func(sess *session.Session) error {
		sess.BackToCategories()
		return nil
	})
}

// SwitchLanguage fetches the dataset of lang again. When the fetch fails the
// session keeps its current dataset and state.
func (s *sessionService) SwitchLanguage(ctx context.Context, id string, lang domain.Language) (*dto.SessionResponse, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	ds, err := s.repo.Load(ctx, lang)
	if err != nil {
		return nil, err
	}
	sess.ApplyDataset(ds)
	return s.respond(sess), nil
}

func (s *sessionService) Open(ctx context.Context, id string, title string) (*dto.SessionResponse, error) {
	return s.with(id, func(sess *session.Session) error {
		_, err := sess.Open(title)
		return err
	})
}

func (s *sessionService) Close(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.with(id, func(sess *session.Session) error {
		sess.Close()
		return nil
	})
}

func (s *sessionService) Next(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.with(id, func(sess *session.Session) error {
		_, err := sess.Next()
		return err
	})
}

func (s *sessionService) Prev(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.with(id, func(sess *session.Session) error {
		_, err := sess.Prev()
		return err
	})
}

func (s *sessionService) with(id string, apply func(*session.Session) error) (*dto.SessionResponse, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if err := apply(sess); err != nil {
		return nil, err
	}
	return s.respond(sess), nil
}

func (s *sessionService) respond(sess *session.Session) *dto.SessionResponse {
	return toSessionResponse(sess.Snapshot(), s.renderer)
}
