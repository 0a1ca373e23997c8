package handler_test

import (
	"context"
	"os"
	"testing"

	"alltagslabor/internal/catalog"
	"alltagslabor/internal/config"
	"alltagslabor/internal/domain"
	"alltagslabor/internal/dto"
	"alltagslabor/internal/handler"
	"alltagslabor/internal/logger"
	"alltagslabor/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "fatal"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	os.Exit(m.Run())
}

// --- Manual Mocks ---

// MockCatalogService
type MockCatalogService struct {
	LanguagesFunc       func() []dto.LanguageResponse
	UIStringsFunc       func(lang domain.Language) dto.UIStringsResponse
	CategoriesFunc      func(lang domain.Language) []dto.CategoryResponse
	ResolveEntryFunc    func(ctx context.Context, lang domain.Language, key domain.CategoryKey, entry domain.EntryKind) (*dto.EntryResolutionResponse, error)
	ListExperimentsFunc func(ctx context.Context, lang domain.Language) (*dto.ExperimentListResponse, error)
	SearchFunc          func(ctx context.Context, lang domain.Language, q catalog.Query) (*dto.ExperimentListResponse, error)
	GetExperimentFunc   func(ctx context.Context, lang domain.Language, title string) (*dto.ExperimentDetailResponse, error)
	GetStepsFunc        func(ctx context.Context, lang domain.Language, title string) ([]dto.StepResponse, error)
	FacetsFunc          func(ctx context.Context, lang domain.Language) (*dto.FacetsResponse, error)
	GradesFunc          func(ctx context.Context, lang domain.Language) (*dto.GradesResponse, error)
	ResolveAssetFunc    func(path string) dto.AssetURLResponse
	SubjectsFunc        func(ctx context.Context) ([]byte, error)
	SchoolTypesFunc     func(ctx context.Context) ([]byte, error)
	ImpressumFunc       func(ctx context.Context) (*dto.ImpressumResponse, error)
}

func (m *MockCatalogService) Languages() []dto.LanguageResponse {
	if m.LanguagesFunc != nil {
		return m.LanguagesFunc()
	}
	panic("MockCatalogService.LanguagesFunc not implemented")
}
func (m *MockCatalogService) UIStrings(lang domain.Language) dto.UIStringsResponse {
	if m.UIStringsFunc != nil {
		return m.UIStringsFunc(lang)
	}
	panic("MockCatalogService.UIStringsFunc not implemented")
}
func (m *MockCatalogService) Categories(lang domain.Language) []dto.CategoryResponse {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(lang)
	}
	panic("MockCatalogService.CategoriesFunc not implemented")
}
func (m *MockCatalogService) ResolveEntry(ctx context.Context, lang domain.Language, key domain.CategoryKey, entry domain.EntryKind) (*dto.EntryResolutionResponse, error) {
	if m.ResolveEntryFunc != nil {
		return m.ResolveEntryFunc(ctx, lang, key, entry)
	}
	panic("MockCatalogService.ResolveEntryFunc not implemented")
}
func (m *MockCatalogService) ListExperiments(ctx context.Context, lang domain.Language) (*dto.ExperimentListResponse, error) {
	if m.ListExperimentsFunc != nil {
		return m.ListExperimentsFunc(ctx, lang)
	}
	panic("MockCatalogService.ListExperimentsFunc not implemented")
}
func (m *MockCatalogService) Search(ctx context.Context, lang domain.Language, q catalog.Query) (*dto.ExperimentListResponse, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, lang, q)
	}
	panic("MockCatalogService.SearchFunc not implemented")
}
func (m *MockCatalogService) GetExperiment(ctx context.Context, lang domain.Language, title string) (*dto.ExperimentDetailResponse, error) {
	if m.GetExperimentFunc != nil {
		return m.GetExperimentFunc(ctx, lang, title)
	}
	panic("MockCatalogService.GetExperimentFunc not implemented")
}
func (m *MockCatalogService) GetSteps(ctx context.Context, lang domain.Language, title string) ([]dto.StepResponse, error) {
	if m.GetStepsFunc != nil {
		return m.GetStepsFunc(ctx, lang, title)
	}
	panic("MockCatalogService.GetStepsFunc not implemented")
}
func (m *MockCatalogService) Facets(ctx context.Context, lang domain.Language) (*dto.FacetsResponse, error) {
	if m.FacetsFunc != nil {
		return m.FacetsFunc(ctx, lang)
	}
	panic("MockCatalogService.FacetsFunc not implemented")
}
func (m *MockCatalogService) Grades(ctx context.Context, lang domain.Language) (*dto.GradesResponse, error) {
	if m.GradesFunc != nil {
		return m.GradesFunc(ctx, lang)
	}
	panic("MockCatalogService.GradesFunc not implemented")
}
func (m *MockCatalogService) ResolveAsset(path string) dto.AssetURLResponse {
	if m.ResolveAssetFunc != nil {
		return m.ResolveAssetFunc(path)
	}
	panic("MockCatalogService.ResolveAssetFunc not implemented")
}
func (m *MockCatalogService) Subjects(ctx context.Context) ([]byte, error) {
	if m.SubjectsFunc != nil {
		return m.SubjectsFunc(ctx)
	}
	panic("MockCatalogService.SubjectsFunc not implemented")
}
func (m *MockCatalogService) SchoolTypes(ctx context.Context) ([]byte, error) {
	if m.SchoolTypesFunc != nil {
		return m.SchoolTypesFunc(ctx)
	}
	panic("MockCatalogService.SchoolTypesFunc not implemented")
}
func (m *MockCatalogService) Impressum(ctx context.Context) (*dto.ImpressumResponse, error) {
	if m.ImpressumFunc != nil {
		return m.ImpressumFunc(ctx)
	}
	panic("MockCatalogService.ImpressumFunc not implemented")
}

// MockSessionService
type MockSessionService struct {
	CreateFunc           func(ctx context.Context, lang domain.Language) (*dto.SessionResponse, error)
	GetFunc              func(ctx context.Context, id string) (*dto.SessionResponse, error)
	DeleteFunc           func(ctx context.Context, id string) error
	SearchFunc           func(ctx context.Context, id string, req dto.SearchRequest) (*dto.SessionResponse, error)
	ResetFiltersFunc     func(ctx context.Context, id string) (*dto.SessionResponse, error)
	EnterCategoryFunc    func(ctx context.Context, id string, key domain.CategoryKey, entry domain.EntryKind) (*dto.SessionResponse, error)
	BackToCategoriesFunc func(ctx context.Context, id string) (*dto.SessionResponse, error)
	SwitchLanguageFunc   func(ctx context.Context, id string, lang domain.Language) (*dto.SessionResponse, error)
	OpenFunc             func(ctx context.Context, id string, title string) (*dto.SessionResponse, error)
	CloseFunc            func(ctx context.Context, id string) (*dto.SessionResponse, error)
	NextFunc             func(ctx context.Context, id string) (*dto.SessionResponse, error)
	PrevFunc             func(ctx context.Context, id string) (*dto.SessionResponse, error)
}

func (m *MockSessionService) Create(ctx context.Context, lang domain.Language) (*dto.SessionResponse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, lang)
	}
	panic("MockSessionService.CreateFunc not implemented")
}
func (m *MockSessionService) Get(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	panic("MockSessionService.GetFunc not implemented")
}
func (m *MockSessionService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	panic("MockSessionService.DeleteFunc not implemented")
}
func (m *MockSessionService) Search(ctx context.Context, id string, req dto.SearchRequest) (*dto.SessionResponse, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, id, req)
	}
	panic("MockSessionService.SearchFunc not implemented")
}
func (m *MockSessionService) ResetFilters(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.ResetFiltersFunc != nil {
		return m.ResetFiltersFunc(ctx, id)
	}
	panic("MockSessionService.ResetFiltersFunc not implemented")
}
func (m *MockSessionService) EnterCategory(ctx context.Context, id string, key domain.CategoryKey, entry domain.EntryKind) (*dto.SessionResponse, error) {
	if m.EnterCategoryFunc != nil {
		return m.EnterCategoryFunc(ctx, id, key, entry)
	}
	panic("MockSessionService.EnterCategoryFunc not implemented")
}
func (m *MockSessionService) BackToCategories(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.BackToCategoriesFunc != nil {
		return m.BackToCategoriesFunc(ctx, id)
	}
	panic("MockSessionService.BackToCategoriesFunc not implemented")
}
func (m *MockSessionService) SwitchLanguage(ctx context.Context, id string, lang domain.Language) (*dto.SessionResponse, error) {
	if m.SwitchLanguageFunc != nil {
		return m.SwitchLanguageFunc(ctx, id, lang)
	}
	panic("MockSessionService.SwitchLanguageFunc not implemented")
}
func (m *MockSessionService) Open(ctx context.Context, id string, title string) (*dto.SessionResponse, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, id, title)
	}
	panic("MockSessionService.OpenFunc not implemented")
}
func (m *MockSessionService) Close(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.CloseFunc != nil {
		return m.CloseFunc(ctx, id)
	}
	panic("MockSessionService.CloseFunc not implemented")
}
func (m *MockSessionService) Next(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, id)
	}
	panic("MockSessionService.NextFunc not implemented")
}
func (m *MockSessionService) Prev(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.PrevFunc != nil {
		return m.PrevFunc(ctx, id)
	}
	panic("MockSessionService.PrevFunc not implemented")
}

func setupApp(catalogService *MockCatalogService, sessionService *MockSessionService) *fiber.App {
	if catalogService == nil {
		catalogService = &MockCatalogService{}
	}
	if sessionService == nil {
		sessionService = &MockSessionService{}
	}
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.RegisterRoutes(app, handler.NewCatalogHandler(catalogService), handler.NewSessionHandler(sessionService))
	return app
}
