package tag_test

import (
	"context"
	"sync"
	"testing"

	"github.com/evaldoc/sectag"
	"github.com/evaldoc/sectag/mock"
	"github.com/evaldoc/sectag/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument(id, name, toc string) *sectag.Document {
	return &sectag.Document{
		ID:          id,
		Name:        name,
		TOC:         toc,
		ContentHash: "hash-" + toc,
		PageCount:   20,
	}
}

// capture collects created classifications behind a mutex so concurrent
// workers can record safely.
type capture struct {
	mu      sync.Mutex
	created []*sectag.Classification
}

func (c *capture) add(cl *sectag.Classification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.created = append(c.created, cl)
}

func (c *capture) all() []*sectag.Classification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.created
}

func TestTagger_TagOne(t *testing.T) {
	t.Parallel()

	t.Run("persists rule output", func(t *testing.T) {
		t.Parallel()

		var rec capture
		tagger := &tag.Tagger{
			Classifications: &mock.ClassificationService{
				CreateClassificationFn: func(ctx context.Context, c *sectag.Classification) error {
					rec.add(c)
					return nil
				},
			},
		}

		doc := testDocument("d1", "report", "[H1] Executive summary | page 2\n[H1] Findings | page 5")
		c, err := tagger.TagOne(context.Background(), doc)
		require.NoError(t, err)

		assert.Equal(t, "d1", c.DocumentID)
		assert.Equal(t, sectag.SourceRules, c.Source)
		require.Len(t, c.Entries, 2)
		assert.Equal(t, sectag.LabelExecutiveSummary, c.Entries[0].Label)
		assert.Equal(t, sectag.LabelFindings, c.Entries[1].Label)
		assert.NotEmpty(t, c.Rendered)
		require.Len(t, rec.all(), 1)
	})

	t.Run("judge corrections are persisted with judge source", func(t *testing.T) {
		t.Parallel()

		var rec capture
		waited := false
		tagger := &tag.Tagger{
			Classifications: &mock.ClassificationService{
				CreateClassificationFn: func(ctx context.Context, c *sectag.Classification) error {
					rec.add(c)
					return nil
				},
			},
			Judge: &mock.Judge{
				ReviewFn: func(ctx context.Context, entries []sectag.Entry, labels sectag.LabelMap) (sectag.LabelMap, error) {
					out := labels.Clone()
					out[1] = sectag.LabelContext
					return out, nil
				},
			},
			JudgeLimiter: &mock.RateLimiter{
				WaitFn: func(ctx context.Context) error {
					waited = true
					return nil
				},
			},
		}

		doc := testDocument("d1", "report", "[H1] Introduction | page 2\n[H1] Something else | page 5")
		c, err := tagger.TagOne(context.Background(), doc)
		require.NoError(t, err)

		assert.True(t, waited)
		assert.Equal(t, sectag.SourceJudge, c.Source)
		require.Len(t, c.Entries, 2)
		assert.Equal(t, sectag.LabelIntroduction, c.Entries[0].Label)
		assert.Equal(t, sectag.LabelContext, c.Entries[1].Label)
	})

	t.Run("judge labels outside the taxonomy are clamped", func(t *testing.T) {
		t.Parallel()

		tagger := &tag.Tagger{
			Classifications: &mock.ClassificationService{
				CreateClassificationFn: func(ctx context.Context, c *sectag.Classification) error {
					return nil
				},
			},
			Judge: &mock.Judge{
				ReviewFn: func(ctx context.Context, entries []sectag.Entry, labels sectag.LabelMap) (sectag.LabelMap, error) {
					out := labels.Clone()
					out[0] = "summary"
					return out, nil
				},
			},
		}

		doc := testDocument("d1", "report", "[H1] Introduction | page 2")
		c, err := tagger.TagOne(context.Background(), doc)
		require.NoError(t, err)
		require.Len(t, c.Entries, 1)
		assert.Equal(t, sectag.LabelOther, c.Entries[0].Label)
	})

	t.Run("judge error aborts without persisting", func(t *testing.T) {
		t.Parallel()

		var rec capture
		tagger := &tag.Tagger{
			Classifications: &mock.ClassificationService{
				CreateClassificationFn: func(ctx context.Context, c *sectag.Classification) error {
					rec.add(c)
					return nil
				},
			},
			Judge: &mock.Judge{
				ReviewFn: func(ctx context.Context, entries []sectag.Entry, labels sectag.LabelMap) (sectag.LabelMap, error) {
					return nil, sectag.Errorf(sectag.EINTERNAL, "model unavailable")
				},
			},
		}

		doc := testDocument("d1", "report", "[H1] Introduction | page 2")
		_, err := tagger.TagOne(context.Background(), doc)
		require.Error(t, err)
		assert.Empty(t, rec.all())
	})

	t.Run("limiter error aborts before the judge call", func(t *testing.T) {
		t.Parallel()

		tagger := &tag.Tagger{
			Classifications: &mock.ClassificationService{},
			Judge: &mock.Judge{
				ReviewFn: func(ctx context.Context, entries []sectag.Entry, labels sectag.LabelMap) (sectag.LabelMap, error) {
					t.Error("judge must not be called")
					return nil, nil
				},
			},
			JudgeLimiter: &mock.RateLimiter{
				WaitFn: func(ctx context.Context) error {
					return context.Canceled
				},
			},
		}

		doc := testDocument("d1", "report", "[H1] Introduction | page 2")
		_, err := tagger.TagOne(context.Background(), doc)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestTagger_TagAll(t *testing.T) {
	t.Parallel()

	t.Run("tags every document", func(t *testing.T) {
		t.Parallel()

		docs := []*sectag.Document{
			testDocument("d1", "alpha", "[H1] Introduction | page 2"),
			testDocument("d2", "beta", "[H1] Findings | page 5"),
			testDocument("d3", "gamma", "[H1] Conclusions | page 9"),
		}

		var rec capture
		tagger := &tag.Tagger{
			Documents: &mock.DocumentService{
				FindDocumentsFn: func(ctx context.Context, filter sectag.DocumentFilter) ([]*sectag.Document, error) {
					return docs, nil
				},
			},
			Classifications: &mock.ClassificationService{
				CreateClassificationFn: func(ctx context.Context, c *sectag.Classification) error {
					rec.add(c)
					return nil
				},
			},
			Concurrency: 2,
		}

		result, err := tagger.TagAll(context.Background(), nil)
		require.NoError(t, err)

		assert.Equal(t, 3, result.Saved)
		assert.Equal(t, 0, result.Skipped)
		assert.Equal(t, 0, result.Failed)
		assert.Len(t, rec.all(), 3)
	})

	t.Run("skips duplicate content hashes", func(t *testing.T) {
		t.Parallel()

		docs := []*sectag.Document{
			testDocument("d1", "alpha", "[H1] Introduction | page 2"),
			testDocument("d2", "beta", "[H1] Introduction | page 2"),
		}

		var rec capture
		tagger := &tag.Tagger{
			Documents: &mock.DocumentService{
				FindDocumentsFn: func(ctx context.Context, filter sectag.DocumentFilter) ([]*sectag.Document, error) {
					return docs, nil
				},
			},
			Classifications: &mock.ClassificationService{
				CreateClassificationFn: func(ctx context.Context, c *sectag.Classification) error {
					rec.add(c)
					return nil
				},
			},
			Concurrency: 1,
		}

		result, err := tagger.TagAll(context.Background(), nil)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, result.Skipped)
		assert.Len(t, rec.all(), 1)
	})

	t.Run("counts failures and keeps going", func(t *testing.T) {
		t.Parallel()

		docs := []*sectag.Document{
			testDocument("d1", "alpha", "[H1] Introduction | page 2"),
			testDocument("d2", "beta", "[H1] Findings | page 5"),
		}

		tagger := &tag.Tagger{
			Documents: &mock.DocumentService{
				FindDocumentsFn: func(ctx context.Context, filter sectag.DocumentFilter) ([]*sectag.Document, error) {
					return docs, nil
				},
			},
			Classifications: &mock.ClassificationService{
				CreateClassificationFn: func(ctx context.Context, c *sectag.Classification) error {
					if c.DocumentID == "d1" {
						return sectag.Errorf(sectag.EINTERNAL, "disk full")
					}
					return nil
				},
			},
			Concurrency: 1,
		}

		result, err := tagger.TagAll(context.Background(), nil)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		docs := []*sectag.Document{
			testDocument("d1", "alpha", "[H1] Introduction | page 2"),
			testDocument("d2", "beta", "[H1] Introduction | page 2"),
		}

		tagger := &tag.Tagger{
			Documents: &mock.DocumentService{
				FindDocumentsFn: func(ctx context.Context, filter sectag.DocumentFilter) ([]*sectag.Document, error) {
					return docs, nil
				},
			},
			Classifications: &mock.ClassificationService{
				CreateClassificationFn: func(ctx context.Context, c *sectag.Classification) error {
					return nil
				},
			},
			Concurrency: 1,
		}

		var events []tag.ProgressEvent
		_, err := tagger.TagAll(context.Background(), func(event tag.ProgressEvent) {
			events = append(events, event)
		})
		require.NoError(t, err)

		require.Len(t, events, 4)
		assert.Equal(t, tag.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, tag.ProgressFinished, events[3].Type)

		types := map[tag.ProgressType]int{}
		for _, event := range events[1:3] {
			types[event.Type]++
		}
		assert.Equal(t, 1, types[tag.ProgressCompleted])
		assert.Equal(t, 1, types[tag.ProgressSkipped])
	})

	t.Run("empty store is a no-op", func(t *testing.T) {
		t.Parallel()

		tagger := &tag.Tagger{
			Documents: &mock.DocumentService{
				FindDocumentsFn: func(ctx context.Context, filter sectag.DocumentFilter) ([]*sectag.Document, error) {
					return nil, nil
				},
			},
		}

		result, err := tagger.TagAll(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, &tag.Result{}, result)
	})

	t.Run("find error is returned", func(t *testing.T) {
		t.Parallel()

		tagger := &tag.Tagger{
			Documents: &mock.DocumentService{
				FindDocumentsFn: func(ctx context.Context, filter sectag.DocumentFilter) ([]*sectag.Document, error) {
					return nil, sectag.Errorf(sectag.EINTERNAL, "db closed")
				},
			},
		}

		_, err := tagger.TagAll(context.Background(), nil)
		require.Error(t, err)
		assert.Equal(t, sectag.EINTERNAL, sectag.ErrorCode(err))
	})
}

func TestLimiter(t *testing.T) {
	t.Parallel()

	t.Run("first call passes immediately", func(t *testing.T) {
		t.Parallel()

		l := tag.NewLimiter(100)
		require.NoError(t, l.Wait(context.Background()))
	})

	t.Run("canceled context returns an error", func(t *testing.T) {
		t.Parallel()

		l := tag.NewLimiter(0.0001)
		require.NoError(t, l.Wait(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Error(t, l.Wait(ctx))
	})
}
