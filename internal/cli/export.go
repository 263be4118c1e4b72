package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/wordbook/internal/config"
	"github.com/mrlokans/wordbook/internal/database"
	"github.com/mrlokans/wordbook/internal/exporters"
	"github.com/mrlokans/wordbook/internal/storage"
)

// ExportCommand writes a user's deck as markdown without going through the
// task queue.
type ExportCommand struct {
	Username     string
	OutputDir    string
	DatabasePath string

	stdout io.Writer
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{stdout: os.Stdout}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "User whose deck to export (required)")
	fs.StringVar(&cmd.OutputDir, "output", "", "Output directory (default: EXPORT_DIR)")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the SQLite database (default: DATABASE_PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export -username <name> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Write <output>/<username>/%s with the user's words grouped by category.\n\n", exporters.DeckFileName)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" {
		return fmt.Errorf("required flag -username not provided")
	}

	return nil
}

func (cmd *ExportCommand) Run() error {
	cfg := config.NewConfig()
	if cmd.DatabasePath != "" {
		cfg.Database.Path = cmd.DatabasePath
	}
	if cmd.OutputDir == "" {
		cmd.OutputDir = cfg.Export.Dir
	}

	db, err := database.Open(cfg.Storage.Backend, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return cmd.export(context.Background(), db)
}

func (cmd *ExportCommand) export(ctx context.Context, store storage.Store) error {
	user, err := store.GetUserByUsername(ctx, cmd.Username)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %q not found", cmd.Username)
	}

	result, err := exporters.NewDeckExporter(store, cmd.OutputDir).ExportUser(ctx, user.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.stdout, "Exported %d words in %d categories to %s\n",
		result.WordsExported, result.CategoriesExported, result.Path)
	return nil
}
