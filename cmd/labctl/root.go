package main

import (
	"context"
	"fmt"
	"os"

	"alltagslabor/internal/adapter/source"
	"alltagslabor/internal/catalog"
	"alltagslabor/internal/config"
	"alltagslabor/internal/domain"
	"alltagslabor/internal/logger"
	"alltagslabor/internal/repository"
	"alltagslabor/internal/validation"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var langCode string

var rootCmd = &cobra.Command{
	Use:   "labctl",
	Short: "Browse the AlltagsLabor experiment catalog",
	Long: `labctl loads the AlltagsLabor experiment datasets and lets you search,
browse categories, step through tutorials and play audio steps.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&langCode, "lang", "l", string(domain.LanguageGerman), "Dataset language (de, en, fr, ru, uk)")
}

// env is what every command needs: configuration, the dataset and resource
// repositories and the step renderer.
type env struct {
	cfg       *config.Config
	lang      domain.Language
	repo      repository.ExperimentRepository
	resources repository.ResourceRepository
	renderer  catalog.Renderer
}

func newEnv() (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	lang, errs := validation.NewValidator().ValidateLanguage(langCode)
	if len(errs) > 0 {
		return nil, errs
	}

	src, err := source.FromConfig(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:       cfg,
		lang:      lang,
		repo:      repository.NewExperimentRepository(src, nil, cfg.Cache.TTL),
		resources: repository.NewResourceRepository(src, nil, cfg.Cache.TTL),
		renderer:  catalog.NewRenderer(cfg.Catalog.AssetBaseURL),
	}, nil
}

// dataset loads the selected language behind a spinner.
func (e *env) dataset(ctx context.Context) (*catalog.Dataset, error) {
	var ds *catalog.Dataset
	var err error
	load := func() { ds, err = e.repo.Get(ctx, e.lang) }

	_ = spinner.New().
		Title(fmt.Sprintf("Loading experiments (%s)...", e.lang.Label)).
		Action(load).
		Run()

	// The spinner does not run its action without a terminal.
	if ds == nil && err == nil {
		load()
	}
	if err != nil {
		return nil, fmt.Errorf("could not load experiments: %w", err)
	}
	return ds, nil
}
