package main

import (
	"fmt"
	"io"
	"os"

	"github.com/coppahp/planner/internal/cli"
	"github.com/coppahp/planner/internal/config"
	"github.com/coppahp/planner/internal/db"
	"github.com/coppahp/planner/internal/repository"
	"github.com/coppahp/planner/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	records, imports, tx, closer, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}
	roster := config.RosterFile{Path: cfg.ForcesFile}
	thresholds := cfg.Thresholds()

	app := &cli.App{
		Projects:   service.NewProjectService(records, tx, roster, observer),
		Forces:     service.NewForceService(records, tx, roster, observer),
		Plans:      service.NewPlanService(records, tx, observer),
		Imports:    service.NewImportService(records, imports, tx, observer),
		Progress:   service.NewProgressService(records, roster, thresholds, observer),
		KO:         service.NewKOService(records, tx, observer),
		Exports:    service.NewExportService(records, roster, observer),
		Thresholds: thresholds,
	}

	// Prompts need a terminal on both ends.
	app.IsInteractive = func() bool {
		in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return in && out
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStores wires the configured backend.
func openStores(cfg *config.Config) (repository.RecordStore, repository.ImportJournal, repository.Transactor, io.Closer, error) {
	switch cfg.Store {
	case config.StoreFile:
		records, err := repository.NewFileRecordStore(cfg.ProjectsDir, cfg.ArchiveDir)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		imports := repository.NewFileImportJournal(cfg.ProjectsDir)
		tx := repository.DirectTransactor{Stores: repository.Stores{Records: records, Imports: imports}}
		return records, imports, tx, nopCloser{}, nil
	default:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("opening database: %w", err)
		}
		records := repository.NewSQLiteRecordStore(database)
		imports := repository.NewSQLiteImportJournal(database)
		tx := repository.NewSQLiteTransactor(db.NewSQLiteUnitOfWork(database))
		return records, imports, tx, database, nil
	}
}
