package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"hrms/internal/app/server"
	"hrms/internal/domain/hr"
	"hrms/internal/domain/reports"
	"hrms/internal/export"
	"hrms/internal/platform/config"
	"hrms/internal/screen"
	"hrms/internal/view/table"
)

var (
	exportFormat string
	exportOut    string
	exportQuery  string
)

var exportCmd = &cobra.Command{
	Use:   "export <report>",
	Short: "Write a report to a PDF or XLSX file",
	Long: `Export derives a report from the configured data backend and writes it
to a file.

Reports: active-employees, department-statistics, attendance-summary,
expiring-contracts, leave-balance.

Example:
  hrms export leave-balance --format xlsx
  hrms export active-employees --format pdf --out staff.pdf --query engineering`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", string(export.PDF), "document format (pdf, xlsx)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default: <report>-<date>.<format>)")
	exportCmd.Flags().StringVar(&exportQuery, "query", "", "keep only rows matching this search")
}

func runExport(cmd *cobra.Command, args []string) error {
	kind, ok := reports.ParseKind(args[0])
	if !ok {
		return fmt.Errorf("unknown report %q", args[0])
	}
	rep, ok := screen.ReportFor(kind)
	if !ok {
		return fmt.Errorf("unknown report %q", args[0])
	}
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	if cfg.DataBackend == config.BackendREST {
		return fmt.Errorf("export reads the data store directly and cannot use DATA_BACKEND=rest")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	backend, err := server.OpenBackend(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	data := hr.NewService(backend.Store, backend.Bus, cfg.DataTimeout)
	loaded, err := rep.Load(cmd.Context(), reports.NewDeriver(data))
	if err != nil {
		return fmt.Errorf("load %s: %w", kind, err)
	}

	now := time.Now()
	path := exportOut
	if path == "" {
		path = format.Filename(string(kind), now)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	sheet := rep.Sheet(loaded.Rows, table.State{Query: exportQuery}, now)
	if err := export.Write(f, format, sheet); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(sheet.Rows), path)
	return nil
}
