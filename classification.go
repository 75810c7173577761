package sectag

import (
	"context"
	"time"
)

// Classification sources.
const (
	SourceRules = "rules"
	SourceJudge = "judge"
)

// Classification represents one persisted labeled TOC for a document.
type Classification struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	Rendered   string    `json:"rendered"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"createdAt"`

	// Per-entry label rows in document order.
	Entries []ClassificationEntry `json:"entries"`
}

// ClassificationEntry is one labeled TOC entry row.
type ClassificationEntry struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Level int    `json:"level"`
	Page  *int   `json:"page,omitempty"`
	Label Label  `json:"label"`
}

// Validate returns an error if the classification contains invalid fields.
func (c *Classification) Validate() error {
	if c.DocumentID == "" {
		return Errorf(EINVALID, "classification document ID required")
	}
	if c.Source != SourceRules && c.Source != SourceJudge {
		return Errorf(EINVALID, "classification source must be %q or %q", SourceRules, SourceJudge)
	}
	for _, entry := range c.Entries {
		if !entry.Label.Valid() {
			return Errorf(EINVALID, "entry %d has label %q outside the taxonomy", entry.Index, entry.Label)
		}
	}
	return nil
}

// NewClassification builds a classification record from a pipeline result.
func NewClassification(documentID, source string, result *Result) *Classification {
	c := &Classification{
		DocumentID: documentID,
		Rendered:   result.Render(),
		Source:     source,
		Entries:    make([]ClassificationEntry, 0, len(result.Entries)),
	}
	for _, entry := range result.Entries {
		c.Entries = append(c.Entries, ClassificationEntry{
			Index: entry.Index,
			Title: entry.Title,
			Level: entry.Level,
			Page:  entry.Page,
			Label: result.Labels.Get(entry.Index),
		})
	}
	return c
}

// ClassificationService represents a service for managing stored
// classifications.
type ClassificationService interface {
	// CreateClassification creates a new classification with its entries.
	CreateClassification(ctx context.Context, c *Classification) error

	// FindClassificationByID retrieves a classification by ID, entries
	// included. Returns ENOTFOUND if it does not exist.
	FindClassificationByID(ctx context.Context, id string) (*Classification, error)

	// FindClassifications retrieves classifications matching the filter,
	// entries included.
	FindClassifications(ctx context.Context, filter ClassificationFilter) ([]*Classification, error)

	// DeleteClassification permanently removes a classification.
	// Returns ENOTFOUND if it does not exist.
	DeleteClassification(ctx context.Context, id string) error

	// DeleteClassificationsByDocument removes all classifications for a
	// document.
	DeleteClassificationsByDocument(ctx context.Context, documentID string) error
}

// ClassificationFilter represents a filter for FindClassifications.
type ClassificationFilter struct {
	ID         *string `json:"id"`
	DocumentID *string `json:"documentId"`
	Source     *string `json:"source"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
