package sectag

import (
	"context"
	"time"
)

// Document represents a registered report whose TOC gets classified.
type Document struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	TOC         string    `json:"toc"`
	ContentHash string    `json:"contentHash"`
	PageCount   int       `json:"pageCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Context returns the document's classification context.
func (d *Document) Context() DocumentContext {
	return DocumentContext{TotalPages: d.PageCount}
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Name == "" {
		return Errorf(EINVALID, "document name required")
	}
	if d.TOC == "" {
		return Errorf(EINVALID, "document TOC text required")
	}
	if d.PageCount < 0 {
		return Errorf(EINVALID, "document page count cannot be negative")
	}
	return nil
}

// DocumentService represents a service for managing documents.
type DocumentService interface {
	// CreateDocument creates a new document.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// UpdateDocument updates an existing document.
	// Returns ENOTFOUND if document does not exist.
	UpdateDocument(ctx context.Context, id string, upd DocumentUpdate) (*Document, error)

	// DeleteDocument permanently removes a document and all associated
	// classifications. Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DocumentUpdate represents fields that can be updated on a document.
type DocumentUpdate struct {
	Name      *string `json:"name"`
	TOC       *string `json:"toc"`
	PageCount *int    `json:"pageCount"`
}
