package service

import (
	"alltagslabor/internal/catalog"
	"alltagslabor/internal/domain"
	"alltagslabor/internal/dto"
	"alltagslabor/internal/session"
)

func toLanguageResponse(lang domain.Language) dto.LanguageResponse {
	return dto.LanguageResponse{
		Code:       string(lang.Code),
		Label:      lang.Label,
		File:       lang.File,
		Translated: lang.Translated,
	}
}

func toUIStringsResponse(code domain.LanguageCode, s domain.UIStrings) dto.UIStringsResponse {
	resp := dto.UIStringsResponse{
		Language:         string(code),
		CategoryLabels:   make(map[string]string, len(s.CategoryLabels)),
		EntryLabels:      make(map[string]string, len(s.EntryLabels)),
		IntroText:        s.IntroText,
		BackToCategories: s.BackToCategories,
		ThemePrefix:      s.ThemePrefix,
	}
	for k, v := range s.CategoryLabels {
		resp.CategoryLabels[string(k)] = v
	}
	for k, v := range s.EntryLabels {
		resp.EntryLabels[string(k)] = v
	}
	return resp
}

func toCategoryResponse(c domain.Category, s domain.UIStrings) dto.CategoryResponse {
	label := c.Label
	if l, ok := s.CategoryLabels[c.Key]; ok && l != "" {
		label = l
	}
	entries := make([]dto.CategoryEntryResponse, 0, len(domain.EntryKinds()))
	for _, kind := range domain.EntryKinds() {
		entries = append(entries, dto.CategoryEntryResponse{Kind: string(kind), Label: s.EntryLabels[kind]})
	}
	return dto.CategoryResponse{
		Key:               string(c.Key),
		Label:             label,
		TheoryTitle:       c.TheoryTitle,
		TasksTitle:        c.TasksTitle,
		ExperimentsPrefix: c.ExperimentsPrefix,
		Entries:           entries,
	}
}

func toExperimentResponse(e domain.Experiment) dto.ExperimentResponse {
	return dto.ExperimentResponse{
		Title:            e.Title,
		DisplayTitle:     catalog.DisplayTitle(e.Title),
		ShortDescription: e.ShortDescription,
		Description:      catalog.SanitizeHTML(e.ShortDescription),
		Subject:          e.Subject,
		GradeLevel:       e.GradeLevel,
		SchoolType:       e.SchoolType,
		Tutorial:         catalog.IsTutorialExperiment(e),
		StepCount:        len(e.Steps),
	}
}

func toExperimentResponses(experiments []domain.Experiment) []dto.ExperimentResponse {
	out := make([]dto.ExperimentResponse, 0, len(experiments))
	for _, e := range experiments {
		out = append(out, toExperimentResponse(e))
	}
	return out
}

func toStepResponse(s catalog.RenderedStep) dto.StepResponse {
	return dto.StepResponse{
		Index:    s.Index,
		Type:     s.Type,
		Label:    s.Label,
		Text:     s.Text,
		AssetURL: s.AssetURL,
		Caption:  s.Caption,
	}
}

func toStepResponses(steps []catalog.RenderedStep) []dto.StepResponse {
	out := make([]dto.StepResponse, 0, len(steps))
	for _, s := range steps {
		out = append(out, toStepResponse(s))
	}
	return out
}

func toProgressResponse(p catalog.Progress) *dto.ProgressResponse {
	return &dto.ProgressResponse{Position: p.Position, Total: p.Total, Label: p.String()}
}

func toDetailResponse(d catalog.Detail) *dto.ExperimentDetailResponse {
	resp := &dto.ExperimentDetailResponse{
		Title:        d.Title,
		DisplayTitle: d.DisplayTitle,
		Description:  d.Description,
		Subject:      d.Subject,
		GradeLevel:   d.GradeLevel,
		SchoolType:   d.SchoolType,
		Tutorial:     d.Tutorial,
		Steps:        toStepResponses(d.Steps),
		CanAdvance:   d.CanAdvance,
		CanRetreat:   d.CanRetreat,
	}
	if d.Progress != nil {
		resp.Progress = toProgressResponse(*d.Progress)
	}
	return resp
}

func toFacetsResponse(f catalog.Facets) dto.FacetsResponse {
	return dto.FacetsResponse{
		SchoolTypes: f.SchoolTypes,
		Subjects:    f.Subjects,
		Grades:      f.Grades,
	}
}

func toQuery(req dto.SearchRequest) catalog.Query {
	return catalog.Query{
		Text:       req.Text,
		SchoolType: req.SchoolType,
		Subject:    req.Subject,
		Grade:      req.Grade,
	}.WithDefaults()
}

func toSessionResponse(snap session.Snapshot, renderer catalog.Renderer) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:       snap.ID,
		Language: string(snap.Language.Code),
		Mode:     string(snap.Mode),
		Query: dto.QueryResponse{
			Text:       snap.Query.Text,
			SchoolType: snap.Query.SchoolType,
			Subject:    snap.Query.Subject,
			Grade:      snap.Query.Grade,
		},
		Items:    toExperimentResponses(snap.Items),
		Facets:   toFacetsResponse(snap.Facets),
		LastSeen: snap.LastSeen,
	}
	if snap.ActiveCategory != nil {
		ui := domain.UIStringsFor(snap.Language.Code)
		label := snap.ActiveCategory.Label
		if l, ok := ui.CategoryLabels[snap.ActiveCategory.Key]; ok && l != "" {
			label = l
		}
		resp.ActiveCategory = &dto.ActiveCategoryResponse{Key: string(snap.ActiveCategory.Key), Label: label}
	}
	if snap.Open != nil {
		resp.Open = toDetailResponse(renderer.RenderDetail(*snap.Open, snap.Tutorial))
	}
	return resp
}
