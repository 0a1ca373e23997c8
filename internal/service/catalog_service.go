package service

import (
	"context"

	"alltagslabor/internal/catalog"
	"alltagslabor/internal/domain"
	"alltagslabor/internal/dto"
	"alltagslabor/internal/logger"
	"alltagslabor/internal/repository"

	"go.uber.org/zap"
)

// CatalogService defines the read operations over the experiment catalog.
type CatalogService interface {
	Languages() []dto.LanguageResponse
	UIStrings(lang domain.Language) dto.UIStringsResponse
	Categories(lang domain.Language) []dto.CategoryResponse
	ResolveEntry(ctx context.Context, lang domain.Language, key domain.CategoryKey, entry domain.EntryKind) (*dto.EntryResolutionResponse, error)
	ListExperiments(ctx context.Context, lang domain.Language) (*dto.ExperimentListResponse, error)
	Search(ctx context.Context, lang domain.Language, q catalog.Query) (*dto.ExperimentListResponse, error)
	GetExperiment(ctx context.Context, lang domain.Language, title string) (*dto.ExperimentDetailResponse, error)
	GetSteps(ctx context.Context, lang domain.Language, title string) ([]dto.StepResponse, error)
	Facets(ctx context.Context, lang domain.Language) (*dto.FacetsResponse, error)
	Grades(ctx context.Context, lang domain.Language) (*dto.GradesResponse, error)
	ResolveAsset(path string) dto.AssetURLResponse
	// Subjects and SchoolTypes return the published JSON lists verbatim.
	Subjects(ctx context.Context) ([]byte, error)
	SchoolTypes(ctx context.Context) ([]byte, error)
	Impressum(ctx context.Context) (*dto.ImpressumResponse, error)
}

// catalogService implements CatalogService
type catalogService struct {
	repo      repository.ExperimentRepository
	resources repository.ResourceRepository
	renderer  catalog.Renderer
}

// NewCatalogService creates a new instance of catalogService
func NewCatalogService(repo repository.ExperimentRepository, resources repository.ResourceRepository, renderer catalog.Renderer) CatalogService {
	return &catalogService{repo: repo, resources: resources, renderer: renderer}
}

func (s *catalogService) Languages() []dto.LanguageResponse {
	langs := domain.Languages()
	out := make([]dto.LanguageResponse, 0, len(langs))
	for _, lang := range langs {
		out = append(out, toLanguageResponse(lang))
	}
	return out
}

func (s *catalogService) UIStrings(lang domain.Language) dto.UIStringsResponse {
	return toUIStringsResponse(lang.Code, domain.UIStringsFor(lang.Code))
}

func (s *catalogService) Categories(lang domain.Language) []dto.CategoryResponse {
	ui := domain.UIStringsFor(lang.Code)
	categories := domain.Categories()
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c, ui))
	}
	return out
}

func (s *catalogService) ResolveEntry(ctx context.Context, lang domain.Language, key domain.CategoryKey, entry domain.EntryKind) (*dto.EntryResolutionResponse, error) {
	ds, err := s.repo.Get(ctx, lang)
	if err != nil {
		return nil, err
	}

	res, err := catalog.ResolveEntry(ds.Visible, key, entry)
	if err != nil {
		logger.Get().Info("Category entry not resolved",
			zap.String("category", string(key)),
			zap.String("entry", string(entry)),
			zap.Error(err))
		return nil, err
	}

	resp := &dto.EntryResolutionResponse{
		Category: string(res.Category.Key),
		Entry:    string(res.Entry),
		Kind:     res.Kind.String(),
	}
	switch res.Kind {
	case catalog.ResolutionSingle:
		resp.Experiment = toDetailResponse(s.renderer.RenderDetail(res.Experiment, nil))
	case catalog.ResolutionSet:
		resp.Experiments = toExperimentResponses(res.Experiments)
	}
	return resp, nil
}

func (s *catalogService) ListExperiments(ctx context.Context, lang domain.Language) (*dto.ExperimentListResponse, error) {
	ds, err := s.repo.Get(ctx, lang)
	if err != nil {
		return nil, err
	}
	return listResponse(ds, ds.Visible), nil
}

func (s *catalogService) Search(ctx context.Context, lang domain.Language, q catalog.Query) (*dto.ExperimentListResponse, error) {
	ds, err := s.repo.Get(ctx, lang)
	if err != nil {
		return nil, err
	}
	return listResponse(ds, catalog.Filter(ds.Visible, q.WithDefaults())), nil
}

func (s *catalogService) GetExperiment(ctx context.Context, lang domain.Language, title string) (*dto.ExperimentDetailResponse, error) {
	e, err := s.find(ctx, lang, title)
	if err != nil {
		return nil, err
	}
	return toDetailResponse(s.renderer.RenderDetail(e, nil)), nil
}

func (s *catalogService) GetSteps(ctx context.Context, lang domain.Language, title string) ([]dto.StepResponse, error) {
	e, err := s.find(ctx, lang, title)
	if err != nil {
		return nil, err
	}
	return toStepResponses(s.renderer.RenderSteps(e.Steps)), nil
}

func (s *catalogService) Facets(ctx context.Context, lang domain.Language) (*dto.FacetsResponse, error) {
	ds, err := s.repo.Get(ctx, lang)
	if err != nil {
		return nil, err
	}
	resp := toFacetsResponse(ds.Facets)
	return &resp, nil
}

func (s *catalogService) Grades(ctx context.Context, lang domain.Language) (*dto.GradesResponse, error) {
	ds, err := s.repo.Get(ctx, lang)
	if err != nil {
		return nil, err
	}
	return &dto.GradesResponse{Grades: catalog.Grades(ds.Visible)}, nil
}

func (s *catalogService) ResolveAsset(path string) dto.AssetURLResponse {
	return dto.AssetURLResponse{Path: path, URL: catalog.ResolveAssetURL(s.renderer.AssetBaseURL, path)}
}

func (s *catalogService) Subjects(ctx context.Context) ([]byte, error) {
	return s.resources.Get(ctx, domain.ResourceSubjects)
}

func (s *catalogService) SchoolTypes(ctx context.Context) ([]byte, error) {
	return s.resources.Get(ctx, domain.ResourceSchoolTypes)
}

func (s *catalogService) Impressum(ctx context.Context) (*dto.ImpressumResponse, error) {
	data, err := s.resources.Get(ctx, domain.ResourceImpressum)
	if err != nil {
		return nil, err
	}
	return &dto.ImpressumResponse{Content: string(data)}, nil
}

func (s *catalogService) find(ctx context.Context, lang domain.Language, title string) (domain.Experiment, error) {
	ds, err := s.repo.Get(ctx, lang)
	if err != nil {
		return domain.Experiment{}, err
	}
	e, ok := catalog.FindByTitle(ds.Visible, title)
	if !ok {
		return domain.Experiment{}, domain.NewExperimentNotFoundError(title)
	}
	return e, nil
}

func listResponse(ds *catalog.Dataset, experiments []domain.Experiment) *dto.ExperimentListResponse {
	return &dto.ExperimentListResponse{
		Language:    string(ds.Language.Code),
		Count:       len(experiments),
		Experiments: toExperimentResponses(experiments),
		LoadedAt:    ds.LoadedAt,
	}
}
