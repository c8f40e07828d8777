// Command valvedocs is the operator CLI: run the extraction pipeline on a
// single PDF, or export a valve's history workbook, without starting the
// daemon.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/valvetrack/valve-docs/constants"
	"github.com/valvetrack/valve-docs/internal/common"
	"github.com/valvetrack/valve-docs/internal/export"
	"github.com/valvetrack/valve-docs/internal/pdftext"
	"github.com/valvetrack/valve-docs/internal/pipeline"
	"github.com/valvetrack/valve-docs/internal/repository"
	"github.com/valvetrack/valve-docs/internal/resolver"
)

var rootCmd = &cobra.Command{
	Use:   "valvedocs",
	Short: "Valve certificate and maintenance report toolkit",
	Long: `valvedocs inspects safety-valve PDFs (calibration certificates and
maintenance reports), classifies them, extracts their fields, and keeps a
valve registry with full document history.`,
	SilenceUsage: true,
}

var extractCmd = &cobra.Command{
	Use:   "extract [pdf-file]",
	Short: "Classify a PDF and print its extracted fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var exportCmd = &cobra.Command{
	Use:   "export [valve-id]",
	Short: "Write a valve's history workbook to disk",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var (
	extractJSON   bool
	extractStore  bool
	exportOutPath string
)

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(exportCmd)

	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "print the field set as JSON")
	extractCmd.Flags().BoolVar(&extractStore, "store", false, "persist the document and resolve its valve")
	exportCmd.Flags().StringVarP(&exportOutPath, "output", "o", "", "output path (default: hoja_vida_<id>.xlsx)")
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	path := args[0]
	if ext := filepath.Ext(path); !constants.IsAllowedExt(ext) {
		return fmt.Errorf("unsupported file type %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if extractStore {
		return extractAndStore(cmd.Context(), f, path, logger)
	}

	pipe := pipeline.NewPipeline(pdftext.NewExtractor(logger), nil, nil, logger)
	cls, fs, err := pipe.ClassifyAndExtract(f)
	if err != nil {
		if common.IsUnreadable(err) {
			color.Red("could not read %s: not a valid PDF", path)
			os.Exit(1)
		}
		return err
	}

	if extractJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"classification": cls, "fields": fs})
	}

	bold := color.New(color.Bold)
	bold.Printf("%s\n", path)
	fmt.Printf("  tipo: %s\n", cls.Type)
	printField("numero_documento", fs.DocumentNumber)
	printField("numero_serie", fs.SerialNumber)
	printField("fecha_emision", fs.IssueDate)
	printField("fecha_vencimiento", fs.ExpiryDate)
	printField("fecha_mantenimiento", fs.ServiceDate)
	switch fs.Result {
	case constants.ResultApproved:
		color.Green("  resultado: %s", fs.Result)
	case constants.ResultRejected:
		color.Red("  resultado: %s", fs.Result)
	}
	return nil
}

func printField(name, value string) {
	if value == "" {
		return
	}
	fmt.Printf("  %s: %s\n", name, value)
}

func extractAndStore(ctx context.Context, f *os.File, path string, logger *slog.Logger) error {
	db, valves, docs, err := openStack(ctx, logger)
	if err != nil {
		return err
	}
	defer repository.Close(db, logger)

	res := resolver.NewResolver(valves, logger)
	pipe := pipeline.NewPipeline(pdftext.NewExtractor(logger), docs, res, logger)

	out, err := pipe.Process(ctx, f, pipeline.ProcessRequest{
		Filename:   filepath.Base(path),
		StoredPath: path,
	})
	if err != nil {
		return err
	}

	color.Green("stored document %s (%s)", out.Document.ID, out.Document.DocumentType)
	if out.Valve != nil {
		verb := "matched"
		if out.ValveCreated {
			verb = "created"
		}
		fmt.Printf("%s valve %s (serial %s)\n", verb, out.Valve.ID, out.Valve.SerialNumber)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	valveID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("valve id must be a UUID: %w", err)
	}

	db, valves, docs, err := openStack(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer repository.Close(db, logger)

	data, err := export.NewService(valves, docs, logger).ExportValveHistoryXLSX(cmd.Context(), valveID)
	if err != nil {
		return err
	}

	out := exportOutPath
	if out == "" {
		out = fmt.Sprintf("hoja_vida_%s.xlsx", valveID)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	color.Green("wrote %s (%d bytes)", out, len(data))
	return nil
}

func openStack(ctx context.Context, logger *slog.Logger) (*sql.DB, repository.ValveRepository, repository.DocumentRepository, error) {
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}
	conn, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return conn, repository.NewValveRepository(conn, logger), repository.NewDocumentRepository(conn, logger), nil
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}
