package main

import (
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jask/palette/internal/clock"
	"github.com/jask/palette/internal/command"
	"github.com/jask/palette/internal/config"
	"github.com/jask/palette/internal/database"
	"github.com/jask/palette/internal/database/repository"
	"github.com/jask/palette/internal/logging"
)

// palette bundles everything a subcommand needs. Close releases the
// database and the log file.
type palette struct {
	cfg    config.Config
	logger *log.Logger
	plugin *command.Plugin
	tree   *command.Tree

	db        *sql.DB
	logCloser io.Closer
}

type setupOptions struct {
	configFile string
	// logToStderr ignores log.path; CLI subcommands own the terminal output.
	logToStderr bool
	verbose     bool
}

func (f *rootFlags) setupOptions(logToStderr bool) setupOptions {
	return setupOptions{configFile: f.configFile, logToStderr: logToStderr, verbose: f.verbose}
}

func setup(opts setupOptions) (*palette, error) {
	cfg, err := config.LoadFrom(opts.configFile)
	if err != nil {
		return nil, err
	}
	if opts.logToStderr {
		cfg.Log.Path = ""
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	// the flag beats PALETTE_LOG_LEVEL
	if opts.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	db, err := database.OpenMigrated(cfg.Database.Path)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("open db: %w", err)
	}

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		logger.Warn("using local timezone", "timezone", cfg.UI.Timezone, "error", err)
		loc = time.Local
	}

	plugin := &command.Plugin{
		ActionKeyword: cfg.Plugin.ActionKeyword,
		IconPath:      cfg.Plugin.IconPath,
		Logger:        logger,
	}
	root := clock.Commands(repository.NewAlarmRepo(db), clock.Settings{
		TimeFormat: cfg.UI.TimeFormat,
		Location:   loc,
	})
	tree, err := command.NewTree(plugin, root)
	if err != nil {
		_ = db.Close()
		_ = closer.Close()
		return nil, fmt.Errorf("build commands: %w", err)
	}
	logger.Debug("palette ready", "keyword", plugin.ActionKeyword, "db", cfg.Database.Path)

	return &palette{
		cfg:       cfg,
		logger:    logger,
		plugin:    plugin,
		tree:      tree,
		db:        db,
		logCloser: closer,
	}, nil
}

func (p *palette) Close() {
	if err := p.db.Close(); err != nil {
		p.logger.Error("close db", "error", err)
	}
	_ = p.logCloser.Close()
}
