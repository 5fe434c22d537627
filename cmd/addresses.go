package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/agenda/internal/book"
	"github.com/desertthunder/agenda/internal/formatter"
	"github.com/desertthunder/agenda/internal/models"
	"github.com/desertthunder/agenda/internal/shared"
	"github.com/urfave/cli/v3"
)

// Add looks up --cep and saves the resolved address.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	ctrl, err := r.controller(r.commandNotifier(useJSON))
	if err != nil {
		return err
	}

	ctrl.SetInput(book.Input{
		Username:    cmd.String("username"),
		DisplayName: cmd.String("display-name"),
		CEP:         cmd.String("cep"),
	})

	r.logger.Info("adding address", "cep", ctrl.Input().CEP)
	addr, err := ctrl.Add(ctx)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(addr, cmd.Bool("pretty"))
	}

	r.writeAddress(*addr)
	return nil
}

// List prints the saved addresses matching the filter flags.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	ctrl, err := r.controller(r.notifier())
	if err != nil {
		return err
	}

	ctrl.SetFilter(filterFromFlags(cmd))
	addresses := ctrl.Filtered()

	if cmd.Bool("json") {
		return r.writeJSON(addresses, cmd.Bool("pretty"))
	}

	if len(addresses) == 0 {
		if ctrl.Filter().Active() {
			return r.writePlain("No addresses match the filter (%d saved)\n", len(ctrl.Addresses()))
		}
		return r.writePlain("No saved addresses. Add one with 'agenda add --cep <cep>'\n")
	}

	r.writePlain("%s\n", renderAddresses(addresses))
	return r.writePlain("%d of %d addresses\n", len(addresses), len(ctrl.Addresses()))
}

// Options prints the distinct cities and states usable with --city and --state.
func (r *Runner) Options(ctx context.Context, cmd *cli.Command) error {
	ctrl, err := r.controller(r.notifier())
	if err != nil {
		return err
	}

	cities, states := ctrl.Cities(), ctrl.States()

	if cmd.Bool("json") {
		return r.writeJSON(struct {
			Cities []string `json:"cities"`
			States []string `json:"states"`
		}{cities, states}, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Cities")
	for _, c := range cities {
		r.writePlain("  %s\n", c)
	}
	r.writePlainHeader("States")
	for _, s := range states {
		r.writePlain("  %s\n", s)
	}
	return nil
}

// Edit changes the display name of the address with the given id.
func (r *Runner) Edit(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: address id is required", shared.ErrMissingArgument)
	}

	ctrl, err := r.controller(r.notifier())
	if err != nil {
		return err
	}

	if err := ctrl.BeginEdit(id); err != nil {
		return err
	}
	ctrl.SetEditDisplayName(cmd.String("display-name"))
	return ctrl.SaveEdit()
}

// Delete removes the address with the given id.
func (r *Runner) Delete(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: address id is required", shared.ErrMissingArgument)
	}

	ctrl, err := r.controller(r.notifier())
	if err != nil {
		return err
	}

	if _, ok := ctrl.Find(id); !ok {
		return fmt.Errorf("%w: %s", shared.ErrRecordNotFound, id)
	}
	return ctrl.Delete(id)
}

// Export renders the (optionally filtered) address book with the chosen formatter.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	ctrl, err := r.controller(r.notifier())
	if err != nil {
		return err
	}
	ctrl.SetFilter(filterFromFlags(cmd))
	addresses := ctrl.Filtered()

	output := cmd.String("output")
	if output == "-" {
		data, err := formatter.Export(format, addresses)
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	path, err := formatter.WriteExport(format, addresses, output)
	if err != nil {
		return err
	}

	r.logger.Info("exported address book", "format", format, "path", path, "count", len(addresses))
	return r.writePlain("✓ Exported %d addresses to %s\n", len(addresses), path)
}

// commandNotifier silences notifications when the command output is machine-readable.
func (r *Runner) commandNotifier(quiet bool) book.Notifier {
	if quiet {
		return book.NotifierFunc(func(n book.Notification) {
			r.logger.Debug("notification", "status", n.Status, "title", n.Title, "description", n.Description)
		})
	}
	return r.notifier()
}

func filterFromFlags(cmd *cli.Command) book.Filter {
	return book.Filter{
		Search: cmd.String("search"),
		City:   cmd.String("city"),
		State:  cmd.String("state"),
	}
}

func (r *Runner) writeAddress(a models.Address) {
	r.writePlain("ID:           %s\n", a.ID)
	r.writePlain("User:         %s\n", a.Username)
	r.writePlain("Display name: %s\n", a.DisplayName)
	r.writeLocation(a.Location)
}

func (r *Runner) writeLocation(l models.Location) {
	r.writePlain("CEP:          %s\n", l.CEP)
	r.writePlain("Street:       %s\n", l.Street)
	if l.Complement != "" {
		r.writePlain("Complement:   %s\n", l.Complement)
	}
	r.writePlain("Neighborhood: %s\n", l.Neighborhood)
	r.writePlain("City:         %s/%s\n", l.City, l.State)
	if l.DDD != "" {
		r.writePlain("DDD:          %s\n", l.DDD)
	}
}

func renderAddresses(addresses []models.Address) string {
	rows := make([][]string, len(addresses))
	for i, a := range addresses {
		rows[i] = []string{a.ID, a.Username, a.DisplayName, a.CEP, a.Street, a.Neighborhood, a.City, a.State}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "User", "Display Name", "CEP", "Street", "Neighborhood", "City", "State").
		Rows(rows...).
		String()
}
