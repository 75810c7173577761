// Package tag orchestrates batch classification: it runs the pure
// classification core over stored documents and persists the results.
package tag

import (
	"context"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/evaldoc/sectag"
	"golang.org/x/sync/errgroup"
)

// Bloom filter sizing for duplicate-TOC detection. A false positive only
// skips a document whose TOC looks identical to one already tagged.
const (
	dedupeExpectedDocuments = 10000
	dedupeFalsePositiveRate = 0.01
)

// Tagger classifies stored documents and persists classifications.
type Tagger struct {
	Documents       sectag.DocumentService
	Classifications sectag.ClassificationService

	// Optional LLM review of rule-produced labels.
	Judge sectag.Judge

	// Throttles judge calls; required when Judge is set.
	JudgeLimiter sectag.RateLimiter

	Concurrency int
}

// Result holds the outcome of a batch tagging run.
type Result struct {
	Saved   int
	Skipped int
	Failed  int
}

// ProgressEvent reports progress during a tagging run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Document  string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting tagging progress.
type ProgressFunc func(event ProgressEvent)

// tagResult holds the outcome of tagging a single document.
type tagResult struct {
	position int
	name     string
	skipped  bool
	err      error
}

// TagAll classifies every stored document and persists one classification
// per document. Documents whose TOC content hash was already seen in this
// run are skipped. The progress callback, if provided, receives events as
// tagging proceeds.
func (t *Tagger) TagAll(ctx context.Context, progress ProgressFunc) (*Result, error) {
	docs, err := t.Documents.FindDocuments(ctx, sectag.DocumentFilter{})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return &Result{}, nil
	}

	concurrency := t.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	total := len(docs)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	// Duplicate TOCs produce identical classifications; skip them.
	seen := bloom.NewWithEstimates(dedupeExpectedDocuments, dedupeFalsePositiveRate)
	var seenMu sync.Mutex

	resultCh := make(chan tagResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, doc := range docs {
			i, doc := i, doc
			g.Go(func() error {
				result := tagResult{position: i, name: doc.Name}

				seenMu.Lock()
				duplicate := doc.ContentHash != "" && seen.TestString(doc.ContentHash)
				if !duplicate && doc.ContentHash != "" {
					seen.AddString(doc.ContentHash)
				}
				seenMu.Unlock()

				if duplicate {
					result.skipped = true
				} else if _, err := t.TagOne(gctx, doc); err != nil {
					result.err = err
				}

				resultCh <- result
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var result Result
	completed := 0
	for r := range resultCh {
		completed++

		switch {
		case r.err != nil:
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: completed,
					Total:     total,
					Document:  r.name,
					Error:     r.err,
				})
			}
		case r.skipped:
			result.Skipped++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressSkipped,
					Completed: completed,
					Total:     total,
					Document:  r.name,
				})
			}
		default:
			result.Saved++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressCompleted,
					Completed: completed,
					Total:     total,
					Document:  r.name,
				})
			}
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &result, nil
}

// TagOne classifies a single document and persists the classification.
// When a judge is configured its corrections are persisted instead of the
// raw rule output.
func (t *Tagger) TagOne(ctx context.Context, doc *sectag.Document) (*sectag.Classification, error) {
	result := sectag.Classify(doc.TOC, doc.Context())

	source := sectag.SourceRules
	if t.Judge != nil {
		if t.JudgeLimiter != nil {
			if err := t.JudgeLimiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		reviewed, err := t.Judge.Review(ctx, result.Entries, result.Labels)
		if err != nil {
			return nil, err
		}
		result = &sectag.Result{
			Entries: result.Entries,
			Labels:  sectag.ValidateLabels(reviewed),
		}
		source = sectag.SourceJudge
	}

	c := sectag.NewClassification(doc.ID, source, result)
	if err := t.Classifications.CreateClassification(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
