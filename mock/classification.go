package mock

import (
	"context"

	"github.com/evaldoc/sectag"
)

var _ sectag.ClassificationService = (*ClassificationService)(nil)

// ClassificationService is a mock implementation of
// sectag.ClassificationService.
type ClassificationService struct {
	CreateClassificationFn            func(ctx context.Context, c *sectag.Classification) error
	FindClassificationByIDFn          func(ctx context.Context, id string) (*sectag.Classification, error)
	FindClassificationsFn             func(ctx context.Context, filter sectag.ClassificationFilter) ([]*sectag.Classification, error)
	DeleteClassificationFn            func(ctx context.Context, id string) error
	DeleteClassificationsByDocumentFn func(ctx context.Context, documentID string) error
}

func (s *ClassificationService) CreateClassification(ctx context.Context, c *sectag.Classification) error {
	return s.CreateClassificationFn(ctx, c)
}

func (s *ClassificationService) FindClassificationByID(ctx context.Context, id string) (*sectag.Classification, error) {
	return s.FindClassificationByIDFn(ctx, id)
}

func (s *ClassificationService) FindClassifications(ctx context.Context, filter sectag.ClassificationFilter) ([]*sectag.Classification, error) {
	return s.FindClassificationsFn(ctx, filter)
}

func (s *ClassificationService) DeleteClassification(ctx context.Context, id string) error {
	return s.DeleteClassificationFn(ctx, id)
}

func (s *ClassificationService) DeleteClassificationsByDocument(ctx context.Context, documentID string) error {
	return s.DeleteClassificationsByDocumentFn(ctx, documentID)
}
