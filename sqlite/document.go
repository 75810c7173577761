package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/evaldoc/sectag"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sectag.DocumentService = (*DocumentService)(nil)

// DocumentService implements sectag.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// CreateDocument creates a new document.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *sectag.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.CreatedAt = time.Now().UTC()
	doc.UpdatedAt = doc.CreatedAt
	doc.ContentHash = hashContent(doc.TOC)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, name, toc, content_hash, page_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Name, doc.TOC, doc.ContentHash, doc.PageCount,
		formatTime(doc.CreatedAt), formatTime(doc.UpdatedAt))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*sectag.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, toc, content_hash, page_count, created_at, updated_at
		FROM documents
		WHERE id = ?
	`, id)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, sectag.Errorf(sectag.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter, ordered by name.
func (s *DocumentService) FindDocuments(ctx context.Context, filter sectag.DocumentFilter) ([]*sectag.Document, error) {
	var where []string
	var args []any

	if filter.ID != nil {
		where = append(where, "id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		where = append(where, "name = ?")
		args = append(args, *filter.Name)
	}

	query := `
		SELECT id, name, toc, content_hash, page_count, created_at, updated_at
		FROM documents`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*sectag.Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// UpdateDocument updates an existing document. The content hash is
// recomputed when the TOC text changes.
func (s *DocumentService) UpdateDocument(ctx context.Context, id string, upd sectag.DocumentUpdate) (*sectag.Document, error) {
	doc, err := s.FindDocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		doc.Name = *upd.Name
	}
	if upd.TOC != nil {
		doc.TOC = *upd.TOC
		doc.ContentHash = hashContent(doc.TOC)
	}
	if upd.PageCount != nil {
		doc.PageCount = *upd.PageCount
	}
	doc.UpdatedAt = time.Now().UTC()

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE documents
		SET name = ?, toc = ?, content_hash = ?, page_count = ?, updated_at = ?
		WHERE id = ?
	`, doc.Name, doc.TOC, doc.ContentHash, doc.PageCount, formatTime(doc.UpdatedAt), doc.ID)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// DeleteDocument permanently removes a document. Associated classifications
// are removed by the ON DELETE CASCADE constraint.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sectag.Errorf(sectag.ENOTFOUND, "document not found")
	}
	return nil
}

// scanDocument scans one document row.
func scanDocument(scan func(dest ...any) error) (*sectag.Document, error) {
	var doc sectag.Document
	var createdAt, updatedAt string

	if err := scan(&doc.ID, &doc.Name, &doc.TOC, &doc.ContentHash, &doc.PageCount,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if doc.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if doc.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &doc, nil
}
