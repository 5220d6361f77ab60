package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/importer"
)

func newImportCommand(dir *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import bank CSV transactions; with no file, drains the import/ directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			return runImport(*dir, cmd.OutOrStdout(), file, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "bank CSV format (default from config)")

	return cmd
}

func runImport(dir string, out io.Writer, file, format string) error {
	env, err := openLedger(dir)
	if err != nil {
		return err
	}

	if format == "" {
		format = env.cfg.Import.DefaultFormat
	}
	registry := importer.DefaultRegistry()
	parser := registry.Get(format)
	if parser == nil {
		return fmt.Errorf("unknown import format %q (available: %s)",
			format, strings.Join(registry.Formats(), ", "))
	}

	if file != "" {
		n, err := importFile(env, parser, file)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Imported %d transactions from %s\n", n, file)
		return nil
	}

	// No file given: drain the ledger's import/ directory.
	files, err := importer.Scan(env.dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "Nothing to import.")
		return nil
	}

	total := 0
	for _, f := range files {
		n, err := importFile(env, parser, f.Path)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		if err := importer.MarkProcessed(env.dir, f.Name); err != nil {
			return err
		}
		fmt.Fprintf(out, "Imported %d transactions from %s\n", n, f.Name)
		total += n
	}
	fmt.Fprintf(out, "Done: %d transactions from %d files\n", total, len(files))
	return nil
}

func importFile(env *ledgerEnv, parser importer.Parser, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := parser.Parse(f)
	if err != nil {
		return 0, err
	}

	for _, row := range rows {
		kind, amount := importer.Classify(row)
		if _, err := env.store.AddTransaction(kind, amount, row.Date, row.Description); err != nil {
			return 0, fmt.Errorf("%s: %w", row.Reference, err)
		}
	}

	env.recordMutation("import", fmt.Sprintf("Imported %d transactions from %s", len(rows), path))
	return len(rows), nil
}
