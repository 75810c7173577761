package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/evaldoc/sectag"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sectag.ClassificationService = (*ClassificationService)(nil)

// ClassificationService implements sectag.ClassificationService using SQLite.
type ClassificationService struct {
	db *DB
}

// NewClassificationService creates a new ClassificationService.
func NewClassificationService(db *DB) *ClassificationService {
	return &ClassificationService{db: db}
}

// CreateClassification creates a classification and its entry rows in a
// single transaction.
func (s *ClassificationService) CreateClassification(ctx context.Context, c *sectag.Classification) error {
	if err := c.Validate(); err != nil {
		return err
	}

	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO classifications (id, document_id, rendered, source, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.DocumentID, c.Rendered, c.Source, formatTime(c.CreatedAt)); err != nil {
		return err
	}

	for _, entry := range c.Entries {
		var page any
		if entry.Page != nil {
			page = *entry.Page
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO classification_entries (classification_id, entry_index, title, level, page, label)
			VALUES (?, ?, ?, ?, ?, ?)
		`, c.ID, entry.Index, entry.Title, entry.Level, page, string(entry.Label)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindClassificationByID retrieves a classification by ID, entries included.
func (s *ClassificationService) FindClassificationByID(ctx context.Context, id string) (*sectag.Classification, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, rendered, source, created_at
		FROM classifications
		WHERE id = ?
	`, id)

	c, err := scanClassification(row.Scan)
	if err == sql.ErrNoRows {
		return nil, sectag.Errorf(sectag.ENOTFOUND, "classification not found")
	}
	if err != nil {
		return nil, err
	}

	if c.Entries, err = s.findEntries(ctx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

// FindClassifications retrieves classifications matching the filter,
// newest first, entries included.
func (s *ClassificationService) FindClassifications(ctx context.Context, filter sectag.ClassificationFilter) ([]*sectag.Classification, error) {
	var where []string
	var args []any

	if filter.ID != nil {
		where = append(where, "id = ?")
		args = append(args, *filter.ID)
	}
	if filter.DocumentID != nil {
		where = append(where, "document_id = ?")
		args = append(args, *filter.DocumentID)
	}
	if filter.Source != nil {
		where = append(where, "source = ?")
		args = append(args, *filter.Source)
	}

	query := `
		SELECT id, document_id, rendered, source, created_at
		FROM classifications`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

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

	var classifications []*sectag.Classification
	for rows.Next() {
		c, err := scanClassification(rows.Scan)
		if err != nil {
			return nil, err
		}
		classifications = append(classifications, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range classifications {
		if c.Entries, err = s.findEntries(ctx, c.ID); err != nil {
			return nil, err
		}
	}
	return classifications, nil
}

// DeleteClassification permanently removes a classification. Entry rows are
// removed by the ON DELETE CASCADE constraint.
func (s *ClassificationService) DeleteClassification(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM classifications WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sectag.Errorf(sectag.ENOTFOUND, "classification not found")
	}
	return nil
}

// DeleteClassificationsByDocument removes all classifications for a document.
func (s *ClassificationService) DeleteClassificationsByDocument(ctx context.Context, documentID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM classifications WHERE document_id = ?`, documentID)
	return err
}

// findEntries loads the entry rows for a classification in index order.
func (s *ClassificationService) findEntries(ctx context.Context, classificationID string) ([]sectag.ClassificationEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry_index, title, level, page, label
		FROM classification_entries
		WHERE classification_id = ?
		ORDER BY entry_index
	`, classificationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []sectag.ClassificationEntry
	for rows.Next() {
		var entry sectag.ClassificationEntry
		var page sql.NullInt64
		var label string
		if err := rows.Scan(&entry.Index, &entry.Title, &entry.Level, &page, &label); err != nil {
			return nil, err
		}
		if page.Valid {
			p := int(page.Int64)
			entry.Page = &p
		}
		entry.Label = sectag.Label(label)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// scanClassification scans one classification row (without entries).
func scanClassification(scan func(dest ...any) error) (*sectag.Classification, error) {
	var c sectag.Classification
	var createdAt string

	if err := scan(&c.ID, &c.DocumentID, &c.Rendered, &c.Source, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if c.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &c, nil
}
