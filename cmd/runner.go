package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/agenda/internal/book"
	"github.com/desertthunder/agenda/internal/models"
	"github.com/desertthunder/agenda/internal/repositories"
	"github.com/desertthunder/agenda/internal/services"
	"github.com/desertthunder/agenda/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	lookup     services.Lookup
	store      models.AddressStore
	slot       repositories.Slot
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Lookup     services.Lookup
	Store      models.AddressStore // Opened from Config.Storage on first use when nil
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
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Lookup == nil {
		api := services.NewAPIService(opts.Config.Lookup.BaseURL, opts.HTTPClient, services.APIOpts{
			UserAgent: opts.Config.Lookup.UserAgent,
			RateLimit: opts.Config.Lookup.RateLimit,
		})
		opts.Lookup = services.NewViaCEPService(api)
	}

	return &Runner{
		config:     opts.Config,
		lookup:     opts.Lookup,
		store:      opts.Store,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, addCommand, listCommand, optionsCommand, editCommand, deleteCommand, lookupCommand, exportCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by the runner and everything it opens afterwards.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// Store returns the address store, opening the configured slot on first use.
func (r *Runner) Store() (models.AddressStore, error) {
	if r.store != nil {
		return r.store, nil
	}

	slot, err := repositories.OpenSlot(r.config.Storage)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("opened address book", "backend", r.config.Storage.Backend, "path", r.config.Storage.Path, "slot", r.config.Storage.Slot)

	r.slot = slot
	r.store = repositories.NewAddressRepository(slot, r.logger)
	return r.store, nil
}

// Close releases the slot opened by [Runner.Store], if any.
func (r *Runner) Close() error {
	if r.slot == nil {
		return nil
	}
	err := r.slot.Close()
	r.slot = nil
	r.store = nil
	return err
}

// controller builds a [book.Controller] over the runner's lookup and store.
func (r *Runner) controller(notifier book.Notifier) (*book.Controller, error) {
	store, err := r.Store()
	if err != nil {
		return nil, err
	}

	return book.NewController(book.ControllerOpts{
		Lookup:   r.lookup,
		Store:    store,
		Notifier: notifier,
		Logger:   r.logger,
	}), nil
}

// notifier writes success and info notifications to the output.
//
// Errors are only logged; the command returns them.
func (r *Runner) notifier() book.Notifier {
	return book.NotifierFunc(func(n book.Notification) {
		r.logger.Debug("notification", "status", n.Status, "title", n.Title, "description", n.Description)
		if n.Status != book.StatusError {
			r.writePlain("%s\n", n.Description)
		}
	})
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
