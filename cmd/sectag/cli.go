package main

import (
	"context"
	"io"

	"github.com/evaldoc/sectag"
	"github.com/evaldoc/sectag/sqlite"
	"github.com/evaldoc/sectag/tag"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx             context.Context
	Stdout          io.Writer
	Stderr          io.Writer
	DB              *sqlite.DB
	Documents       sectag.DocumentService
	Classifications sectag.ClassificationService
	Tagger          *tag.Tagger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Classify ClassifyCmd `cmd:"" help:"Classify TOC text and print the annotated result"`
	Add      AddCmd      `cmd:"" help:"Register a document's TOC text"`
	Tag      TagCmd      `cmd:"" help:"Classify stored documents and persist the results"`
	List     ListCmd     `cmd:"" help:"List registered documents"`
	Show     ShowCmd     `cmd:"" help:"Show the stored classified TOC for a document"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a document and its classifications"`
}

// ClassifyCmd is the "classify" subcommand.
type ClassifyCmd struct {
	Path   string `arg:"" help:"TOC text file, or '-' for stdin"`
	Pages  int    `short:"p" help:"Total page count of the document"`
	Labels bool   `short:"l" help:"Print an index/label map instead of annotated lines"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name  string `arg:"" help:"Document name"`
	Path  string `arg:"" help:"TOC text file, or '-' for stdin"`
	Pages int    `short:"p" help:"Total page count of the document"`
	Force bool   `short:"f" help:"Delete an existing document with the same name first"`
}

// TagCmd is the "tag" subcommand.
type TagCmd struct {
	Name        string `arg:"" optional:"" help:"Document name (omit with --all)"`
	All         bool   `help:"Tag every registered document"`
	Judge       bool   `help:"Review rule output with an LLM judge (requires GEMINI_API_KEY)"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent classification limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Name string `arg:"" help:"Document name"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Document name"`
	Force bool   `help:"Confirm deletion"`
}
