// contacts-desk is a single-user contact database living in a local SQLite
// file. Run without arguments it opens the interactive editor; the import and
// export subcommands move contacts in and out as CSV.
package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/contacts-desk/internal/config"
	"gitlab.com/dirk.krummacker/contacts-desk/internal/csvio"
	"gitlab.com/dirk.krummacker/contacts-desk/internal/editor"
	"gitlab.com/dirk.krummacker/contacts-desk/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the configuration is loaded.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		databaseFlag string
		languageFlag string
	)

	root := &cobra.Command{
		Use:           "contacts-desk",
		Short:         "A contact database you edit in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if databaseFlag != "" {
				cfg.Database = databaseFlag
			}
			if languageFlag != "" {
				cfg.Language = languageFlag
			}
			a.cfg = cfg
			a.log = newLogger(cfg.Log)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEditor()
		},
	}
	root.PersistentFlags().StringVar(&databaseFlag, "database", "",
		"path of the SQLite database file")
	root.PersistentFlags().StringVar(&languageFlag, "language", "",
		"message language (en or ru)")

	root.AddCommand(a.newImportCmd(), a.newExportCmd(), a.newMigrateCmd())
	return root
}

// newMigrateCmd creates or upgrades the database file without starting the
// editor. Opening the store runs the schema migrations, so this is useful for
// provisioning and for checking that an old file upgrades cleanly.
func (a *app) newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database file and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(a.cfg.Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer st.Close()

			contacts, err := st.List("")
			if err != nil {
				return err
			}
			a.log.Info("database migrated",
				zap.String("database", a.cfg.Database), zap.Int("contacts", len(contacts)))
			cmd.Printf("database %s is up to date (%d contacts)\n",
				a.cfg.Database, len(contacts))
			return nil
		},
	}
}

// runEditor opens the store and hands the terminal to the interactive editor.
// Raw errors go to the log; the user sees the translated message only.
func (a *app) runEditor() error {
	msgs := editor.MessagesFor(a.cfg.Language)

	st, err := store.Open(a.cfg.Database)
	if err != nil {
		a.log.Error("open store failed",
			zap.String("database", a.cfg.Database), zap.Error(err))
		return errors.New(msgs.StorageError())
	}
	defer st.Close()

	m, err := editor.New(st, a.cfg.Language, a.log)
	if err != nil {
		a.log.Error("load contacts failed", zap.Error(err))
		return errors.New(msgs.StorageError())
	}

	a.log.Info("editor started", zap.String("database", a.cfg.Database))
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	if fm, ok := final.(editor.Model); ok && fm.Err() != nil {
		return errors.New(msgs.StorageError())
	}
	return nil
}

func (a *app) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Add contacts from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			fields, err := csvio.Read(file)
			if err != nil {
				return err
			}

			st, err := store.Open(a.cfg.Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer st.Close()

			for _, f := range fields {
				if _, err := st.Create(f); err != nil {
					return fmt.Errorf("import %q: %w", f.Name, err)
				}
			}
			a.log.Info("contacts imported",
				zap.String("file", args[0]), zap.Int("count", len(fields)))
			cmd.Printf("imported %d contacts\n", len(fields))
			return nil
		},
	}
}

func (a *app) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Write all contacts to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(a.cfg.Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer st.Close()

			contacts, err := st.List("")
			if err != nil {
				return err
			}

			file, err := os.Create(args[0])
			if err != nil {
				return err
			}
			count, err := csvio.Export(file, contacts)
			if err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			a.log.Info("contacts exported",
				zap.String("file", args[0]), zap.Int("count", count))
			cmd.Printf("exported %d contacts\n", count)
			return nil
		},
	}
}
