package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/Inxkls/xerces/internal/library"
	"github.com/Inxkls/xerces/internal/repositories"
	"github.com/Inxkls/xerces/internal/services"
	"github.com/Inxkls/xerces/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The database and collection are opened on first use so that commands like setup and api work without them.
type Runner struct {
	config     *shared.Config
	configPath string
	api        *services.APIService
	catalog    services.Catalog
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	db      *sql.DB
	repo    *repositories.CollectionRepository
	library *library.Service
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	API        *services.APIService
	Catalog    services.Catalog
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.Catalog.Timeout()}
	}
	if opts.API == nil {
		opts.API = services.NewAPIService(opts.Config.Catalog, opts.HTTPClient)
	}
	if opts.Catalog == nil {
		opts.Catalog = services.NewLastFMService(opts.API)
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		api:        opts.API,
		catalog:    opts.Catalog,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, searchCommand, addCommand, removeCommand, listCommand, tracksCommand,
		exportCommand, coverCommand, coversCommand, statusCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by subsequent commands.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Close releases the database connection if one was opened.
func (r *Runner) Close() {
	if r.db != nil {
		r.db.Close()
		r.db = nil
		r.repo = nil
		r.library = nil
	}
}

// collection opens the database and loads the album collection on first use.
func (r *Runner) collection(ctx context.Context) (*library.Service, error) {
	if r.library != nil {
		return r.library, nil
	}

	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	repo := repositories.NewCollectionRepository(db)
	store := library.NewStore(repo.For(r.config.Storage.Key))
	svc := library.NewService(r.catalog, store, shared.WithLogger(r.logger, "component", "library"))
	if err := svc.Load(ctx); err != nil {
		r.logger.Warn("starting with an empty collection", "error", err)
	}

	r.db, r.repo, r.library = db, repo, svc
	return svc, nil
}

// requireAPIKey reports a missing catalog key before any request is made.
func (r *Runner) requireAPIKey() error {
	if !r.config.Catalog.HasAPIKey() {
		return fmt.Errorf("%w: catalog.api_key is not set (set it in %s or %s)",
			shared.ErrMissingConfig, defaultConfigPath, shared.EnvAPIKey)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
