package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/evaldoc/sectag"
	"github.com/evaldoc/sectag/gemini"
	sectagslog "github.com/evaldoc/sectag/slog"
	"github.com/evaldoc/sectag/sqlite"
	"github.com/evaldoc/sectag/tag"
	"google.golang.org/genai"

	"log/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DocumentService       sectag.DocumentService
	ClassificationService sectag.ClassificationService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sectag"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sectag --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// The classify command is a pure computation; it runs without a
	// database.
	if cmd != "classify" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SECTAG_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.DocumentService = sqlite.NewDocumentService(m.DB)
		m.ClassificationService = sqlite.NewClassificationService(m.DB)
		deps.DB = m.DB
		deps.Documents = m.DocumentService
		deps.Classifications = m.ClassificationService
	}

	if cmd == "tag" {
		tagger := &tag.Tagger{
			Documents:       deps.Documents,
			Classifications: deps.Classifications,
			Concurrency:     cli.Tag.Concurrency,
		}

		if cli.Tag.Judge {
			apiKey := os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
				return fmt.Errorf("GEMINI_API_KEY not set")
			}

			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}

			logger := slog.New(slog.NewTextHandler(stderr, nil))
			tagger.Judge = sectagslog.NewLoggingJudge(gemini.NewJudge(client, ""), logger)
			tagger.JudgeLimiter = tag.NewLimiter(judgeCallsPerSecond)
		}

		deps.Tagger = tagger
	}

	return kongCtx.Run(deps)
}

// judgeCallsPerSecond limits how fast batch tagging calls the judge.
const judgeCallsPerSecond = 1.0

func defaultDBPath() string {
	if path := os.Getenv("SECTAG_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sectag.db"
	}
	dir := filepath.Join(home, ".sectag")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "sectag.db")
}
