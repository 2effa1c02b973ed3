package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"trimplan/internal/config"
	"trimplan/internal/domain/services"
	"trimplan/internal/repository"
	"trimplan/internal/service/plan"
	"trimplan/internal/service/render"

	"github.com/joho/godotenv"
)

const usage = `planctl manages the stored production plan.

Usage:
  planctl reset   [-force]                 replace the plan with defaults
  planctl export  [-o file]                write the plan as JSON (stdout by default)
  planctl import  <file>                   replace the plan with a JSON file
  planctl print   [-format f] [-o file]    render the plan (terminal, html, md)
  planctl migrate                          rewrite a legacy plan under the current key
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Logs go to stderr so export output can be piped
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	ctx := context.Background()
	storage, closeStorage, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer closeStorage()

	store := plan.NewStore(storage, logger)
	cmd, args := os.Args[1], os.Args[2:]

	err = run(ctx, cfg, store, logger, os.Stdout, cmd, args)
	if errors.Is(err, errUnknownCommand) {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		closeStorage()
		log.Fatalf("%s: %v", cmd, err)
	}
}

var errUnknownCommand = errors.New("unknown command")

// run dispatches one subcommand; stdout receives export and print output
func run(ctx context.Context, cfg *config.Config, store *plan.Store, logger *slog.Logger, stdout io.Writer, cmd string, args []string) error {
	switch cmd {
	case "migrate":
		return runMigrate(ctx, store, logger)
	case "reset":
		return runReset(ctx, cfg, store, logger, args)
	case "export":
		return runExport(ctx, cfg, store, logger, stdout, args)
	case "import":
		return runImport(ctx, cfg, store, logger, args)
	case "print":
		return runPrint(ctx, cfg, store, logger, stdout, args)
	default:
		return errUnknownCommand
	}
}

func openService(ctx context.Context, cfg *config.Config, store *plan.Store, logger *slog.Logger) services.PlanService {
	return plan.NewService(ctx, store, nil, cfg.DefaultDeadline, logger)
}

// runMigrate upgrades whatever is stored to the current schema and key.
// Unlike the server it reports write failures instead of swallowing them.
func runMigrate(ctx context.Context, store *plan.Store, logger *slog.Logger) error {
	raw, sourceKey, ok := store.Load(ctx)
	if !ok {
		logger.Info("nothing stored, nothing to migrate")
		return nil
	}

	doc := plan.Normalize(raw)
	if err := plan.ValidateDocument(doc); err != nil {
		return fmt.Errorf("normalized plan is invalid: %w", err)
	}
	if err := store.Write(ctx, doc); err != nil {
		return err
	}

	logger.Info("plan migrated",
		"from_key", sourceKey,
		"to_key", store.Key(),
		"schema_version", plan.SchemaVersion,
	)
	return nil
}

func runReset(ctx context.Context, cfg *config.Config, store *plan.Store, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	force := fs.Bool("force", false, "Confirm the reset (required; also required in production)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// SAFETY: Prevent accidental resets, especially in production
	if !*force {
		if cfg.IsProd() {
			return fmt.Errorf("🚫 BLOCKED: cannot reset the plan in production without -force")
		}
		return errors.New("refusing to reset without -force")
	}

	doc, err := openService(ctx, cfg, store, logger).Reset(ctx, true)
	if err != nil {
		return err
	}
	logger.Info("plan reset", "deadline", doc.Customer.Deadline)
	return nil
}

func runExport(ctx context.Context, cfg *config.Config, store *plan.Store, logger *slog.Logger, stdout io.Writer, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("o", "-", "Output file (- for stdout; use "+plan.ExportFileName+" to match the web download)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := openService(ctx, cfg, store, logger).Export()
	if err != nil {
		return err
	}
	return writeOutput(stdout, *out, append(data, '\n'))
}

func runImport(ctx context.Context, cfg *config.Config, store *plan.Store, logger *slog.Logger, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: planctl import <file>")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }() // Error ignored: read-only

	_, err = openService(ctx, cfg, store, logger).Import(ctx, args[0], f)
	return err
}

func runPrint(ctx context.Context, cfg *config.Config, store *plan.Store, logger *slog.Logger, stdout io.Writer, args []string) error {
	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	format := fs.String("format", "terminal", "Output format: terminal, html or md")
	out := fs.String("o", "-", "Output file (- for stdout)")
	width := fs.Int("width", 100, "Card width for terminal output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	doc := openService(ctx, cfg, store, logger).Current()

	var data []byte
	var err error
	switch *format {
	case "terminal":
		data = []byte(render.Terminal(doc, *width))
	case "html":
		data, err = render.HTML(doc)
	case "md":
		data, err = render.Markdown(doc)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		return err
	}

	if *out != "-" {
		ext := map[string]string{"terminal": "txt", "html": "html", "md": "md"}[*format]
		logger.Info("writing print output", "file", *out, "suggested_name", render.FileName(doc, ext))
	}
	return writeOutput(stdout, *out, data)
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
