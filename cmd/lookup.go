package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/agenda/internal/shared"
	"github.com/urfave/cli/v3"
)

// Lookup queries the lookup service for a CEP and prints the result without saving it.
func (r *Runner) Lookup(ctx context.Context, cmd *cli.Command) error {
	cep := strings.TrimSpace(cmd.StringArg("cep"))
	if cep == "" {
		return fmt.Errorf("%w: cep is required", shared.ErrMissingArgument)
	}

	r.logger.Info("lookup", "service", r.lookup.Name(), "cep", cep)

	loc, err := r.lookup.Lookup(ctx, cep)
	if err != nil {
		return err
	}
	if loc.NotFound() {
		return fmt.Errorf("%w: %s", shared.ErrCEPNotFound, cep)
	}

	if cmd.Bool("json") {
		return r.writeJSON(loc, cmd.Bool("pretty"))
	}

	r.writeLocation(*loc)
	return nil
}
