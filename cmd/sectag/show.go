package main

import (
	"fmt"

	"github.com/evaldoc/sectag"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, sectag.DocumentFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sectag.ErrorMessage(err))
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'sectag list' to see registered documents.\n", c.Name)
		return sectag.Errorf(sectag.ENOTFOUND, "document %q not found", c.Name)
	}

	classifications, err := deps.Classifications.FindClassifications(deps.Ctx, sectag.ClassificationFilter{
		DocumentID: &docs[0].ID,
		Limit:      1,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sectag.ErrorMessage(err))
		return err
	}
	if len(classifications) == 0 {
		fmt.Fprintf(deps.Stderr, "error: document %q has no classification yet. Run 'sectag tag %s' first.\n", c.Name, c.Name)
		return sectag.Errorf(sectag.ENOTFOUND, "document %q has no classification", c.Name)
	}

	fmt.Fprintln(deps.Stdout, classifications[0].Rendered)
	return nil
}
