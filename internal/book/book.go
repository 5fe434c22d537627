package book

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/agenda/internal/models"
	"github.com/desertthunder/agenda/internal/services"
	"github.com/desertthunder/agenda/internal/shared"
)

// maxIDAttempts bounds regeneration when a fresh ID collides with a saved one.
const maxIDAttempts = 8

// Input is the add form state.
type Input struct {
	Username    string
	DisplayName string
	CEP         string
}

// Empty reports whether every field is blank.
func (in Input) Empty() bool {
	return in.Username == "" && in.DisplayName == "" && in.CEP == ""
}

// ControllerOpts configures a [Controller].
type ControllerOpts struct {
	Lookup   services.Lookup
	Store    models.AddressStore
	Notifier Notifier      // Optional, notifications are dropped when nil
	Logger   *log.Logger   // Optional, defaults to the charm default logger
	NewID    func() string // Optional, defaults to [shared.GenerateID]
}

// Controller orchestrates the add, delete and edit flows and holds the derived view state.
type Controller struct {
	lookup   services.Lookup
	store    models.AddressStore
	notifier Notifier
	logger   *log.Logger
	newID    func() string

	input    Input
	filter   Filter
	all      []models.Address
	filtered []models.Address
	editing  *models.Address
}

// NewController creates a Controller and loads the current address list from the store.
func NewController(opts ControllerOpts) *Controller {
	c := &Controller{
		lookup:   opts.Lookup,
		store:    opts.Store,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		newID:    opts.NewID,
		all:      []models.Address{},
		filtered: []models.Address{},
	}
	if c.notifier == nil {
		c.notifier = discardNotifier()
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.newID == nil {
		c.newID = shared.GenerateID
	}

	if err := c.Refresh(); err != nil {
		c.logger.Error("failed to load address book", "error", err)
	}
	return c
}

// Input returns the current add form state.
func (c *Controller) Input() Input { return c.input }

// SetInput replaces the add form state.
func (c *Controller) SetInput(in Input) { c.input = in }

// ClearInput empties the add form.
func (c *Controller) ClearInput() { c.input = Input{} }

// Addresses returns the full address list as last read from the store.
func (c *Controller) Addresses() []models.Address { return slices.Clone(c.all) }

// Filtered returns the addresses matching the current filter.
func (c *Controller) Filtered() []models.Address { return slices.Clone(c.filtered) }

// Cities returns the selectable city filter values.
func (c *Controller) Cities() []string { return Cities(c.all) }

// States returns the selectable state filter values.
func (c *Controller) States() []string { return States(c.all) }

// Find returns the address with id from the full list.
func (c *Controller) Find(id string) (models.Address, bool) {
	i := slices.IndexFunc(c.all, func(a models.Address) bool { return a.ID == id })
	if i < 0 {
		return models.Address{}, false
	}
	return c.all[i], true
}

// Refresh re-reads the address list from the store and re-applies the filter.
//
// On failure the previous lists are kept.
func (c *Controller) Refresh() error {
	addresses, err := c.store.List()
	if err != nil {
		return err
	}
	if addresses == nil {
		addresses = []models.Address{}
	}
	c.all = addresses
	c.applyFilter()
	return nil
}

// Add looks up the current input's CEP and saves the resulting address.
//
// It blocks on the lookup. Event loops should run [Controller.Resolve] off the loop and use [Controller.CompleteAdd].
func (c *Controller) Add(ctx context.Context) (*models.Address, error) {
	in := c.input
	loc, err := c.Resolve(ctx, in.CEP)
	return c.CompleteAdd(in, loc, err)
}

// Resolve looks up cep without touching controller state, so it may run on any goroutine.
func (c *Controller) Resolve(ctx context.Context, cep string) (*models.Location, error) {
	return c.lookup.Lookup(ctx, strings.TrimSpace(cep))
}

// CompleteAdd finishes an add for the submitted input given the lookup outcome.
//
// The store is only written when the lookup resolved an address. The input is cleared only after a successful save.
func (c *Controller) CompleteAdd(in Input, loc *models.Location, lookupErr error) (*models.Address, error) {
	if lookupErr != nil {
		c.logger.Error("CEP lookup failed", "cep", in.CEP, "error", lookupErr)
		c.notifier.Notify(lookupFailedNotification())
		return nil, lookupErr
	}

	if loc == nil || loc.NotFound() {
		c.logger.Warn("CEP not found", "cep", in.CEP)
		c.notifier.Notify(notFoundNotification(in.CEP))
		return nil, fmt.Errorf("%w: %s", shared.ErrCEPNotFound, in.CEP)
	}

	id, err := c.uniqueID()
	if err != nil {
		c.logger.Error("failed to generate address id", "error", err)
		c.notifier.Notify(storageFailedNotification())
		return nil, err
	}

	addr := models.NewAddress(id, in.Username, in.DisplayName, *loc)
	if err := c.store.Save(addr); err != nil {
		c.logger.Error("failed to save address", "id", id, "error", err)
		c.notifier.Notify(storageFailedNotification())
		c.refreshOrLog()
		return nil, err
	}

	c.refreshOrLog()
	c.logger.Info("address added", "id", id, "cep", addr.CEP, "city", addr.City, "state", addr.State)
	c.notifier.Notify(addedNotification(addr.DisplayName))
	c.input = Input{}
	return &addr, nil
}

// Delete removes the address with id. Deleting an unknown id only refreshes.
//
// An open edit bound to the deleted address is closed.
func (c *Controller) Delete(id string) error {
	if err := c.store.DeleteByID(id); err != nil {
		c.logger.Error("failed to delete address", "id", id, "error", err)
		c.notifier.Notify(storageFailedNotification())
		c.refreshOrLog()
		return err
	}

	if c.editing != nil && c.editing.ID == id {
		c.editing = nil
	}
	c.refreshOrLog()
	c.logger.Info("address deleted", "id", id)
	c.notifier.Notify(deletedNotification())
	return nil
}

// BeginEdit opens the edit surface bound to a copy of the address with id.
func (c *Controller) BeginEdit(id string) error {
	addr, ok := c.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrRecordNotFound, id)
	}
	c.editing = &addr
	return nil
}

// Editing returns the copy being edited and whether the edit surface is open.
func (c *Controller) Editing() (models.Address, bool) {
	if c.editing == nil {
		return models.Address{}, false
	}
	return *c.editing, true
}

// SetEditDisplayName changes the display name of the copy being edited. Nothing is persisted.
func (c *Controller) SetEditDisplayName(displayName string) {
	if c.editing != nil {
		c.editing.DisplayName = displayName
	}
}

// SaveEdit persists the edited display name and closes the edit surface.
//
// The surface stays open when the store write fails.
func (c *Controller) SaveEdit() error {
	if c.editing == nil {
		return fmt.Errorf("%w: no address is being edited", shared.ErrInvalidInput)
	}

	id, name := c.editing.ID, c.editing.DisplayName
	if err := c.store.UpdateDisplayName(id, name); err != nil {
		c.logger.Error("failed to update display name", "id", id, "error", err)
		c.notifier.Notify(storageFailedNotification())
		c.refreshOrLog()
		return err
	}

	c.editing = nil
	c.refreshOrLog()
	c.logger.Info("display name updated", "id", id)
	c.notifier.Notify(renamedNotification(name))
	return nil
}

// CancelEdit closes the edit surface without persisting anything.
func (c *Controller) CancelEdit() { c.editing = nil }

// Filter returns the current filter.
func (c *Controller) Filter() Filter { return c.filter }

// SetFilter replaces the filter and recomputes the filtered list.
func (c *Controller) SetFilter(f Filter) {
	c.filter = f
	c.applyFilter()
}

// SetSearch sets the display name search term.
func (c *Controller) SetSearch(term string) {
	c.filter.Search = term
	c.applyFilter()
}

// SetCity selects the city filter; "" matches every city.
func (c *Controller) SetCity(city string) {
	c.filter.City = city
	c.applyFilter()
}

// SetState selects the state filter; "" matches every state.
func (c *Controller) SetState(state string) {
	c.filter.State = state
	c.applyFilter()
}

// ClearFilter deactivates every predicate.
func (c *Controller) ClearFilter() { c.SetFilter(Filter{}) }

func (c *Controller) applyFilter() {
	c.filtered = c.filter.Apply(c.all)
}

func (c *Controller) refreshOrLog() {
	if err := c.Refresh(); err != nil {
		c.logger.Error("failed to refresh address book", "error", err)
	}
}

func (c *Controller) uniqueID() (string, error) {
	for range maxIDAttempts {
		id := c.newID()
		if _, taken := c.Find(id); !taken && id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: could not generate a unique id", shared.ErrInvalidRecord)
}
