package main

import (
	"fmt"

	"github.com/evaldoc/sectag"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	text, err := readInput(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	existing, err := deps.Documents.FindDocuments(deps.Ctx, sectag.DocumentFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sectag.ErrorMessage(err))
		return err
	}

	if len(existing) > 0 {
		if !c.Force {
			fmt.Fprintf(deps.Stderr, "error: document %q already exists. Use --force to replace it.\n", c.Name)
			return sectag.Errorf(sectag.ECONFLICT, "document %q already exists", c.Name)
		}
		if err := deps.Documents.DeleteDocument(deps.Ctx, existing[0].ID); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sectag.ErrorMessage(err))
			return err
		}
	}

	doc := &sectag.Document{
		Name:      c.Name,
		TOC:       text,
		PageCount: c.Pages,
	}

	if err := deps.Documents.CreateDocument(deps.Ctx, doc); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sectag.ErrorMessage(err))
		return err
	}

	entries := sectag.ParseTOC(text)
	fmt.Fprintf(deps.Stdout, "Added %q: %d TOC entries, %d pages.\n", c.Name, len(entries), c.Pages)
	if len(entries) == 0 {
		fmt.Fprintln(deps.Stderr, "Warning: no TOC entries recognized; 'tag' will store an empty classification.")
	}

	return nil
}
