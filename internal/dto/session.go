package dto

import "time"

// CreateSessionRequest starts a browse session.
type CreateSessionRequest struct {
	Language string `json:"language"`
}

// SearchRequest is the free text plus facet selection of a session search.
// Empty facets mean the wildcard.
type SearchRequest struct {
	Text       string `json:"text"`
	SchoolType string `json:"schoolType"`
	Subject    string `json:"subject"`
	Grade      string `json:"grade"`
}

// LanguageRequest switches the language of a session.
type LanguageRequest struct {
	Language string `json:"language"`
}

// OpenRequest opens a record by exact title.
type OpenRequest struct {
	Title string `json:"title"`
}

// QueryResponse echoes the current search state.
type QueryResponse struct {
	Text       string `json:"text"`
	SchoolType string `json:"schoolType"`
	Subject    string `json:"subject"`
	Grade      string `json:"grade"`
}

// ActiveCategoryResponse is the breadcrumb of a category experiment list.
type ActiveCategoryResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// SessionResponse is the full state of a browse session.
// @Description Browse session state
type SessionResponse struct {
	ID             string                    `json:"id"`
	Language       string                    `json:"language"`
	Mode           string                    `json:"mode"`
	Query          QueryResponse             `json:"query"`
	ActiveCategory *ActiveCategoryResponse   `json:"activeCategory,omitempty"`
	Items          []ExperimentResponse      `json:"items"`
	Facets         FacetsResponse            `json:"facets"`
	Open           *ExperimentDetailResponse `json:"open,omitempty"`
	LastSeen       time.Time                 `json:"lastSeen"`
}
