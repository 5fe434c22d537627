// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
	}
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "search",
			Aliases: []string{"s"},
			Usage:   "Only addresses whose display name contains this text (case-insensitive)",
		},
		&cli.StringFlag{
			Name:  "city",
			Usage: "Only addresses in this city (exact match)",
		},
		&cli.StringFlag{
			Name:  "state",
			Usage: "Only addresses in this state (exact match, e.g. SP)",
		},
	}
}

// setupCommand handles setup operations for the config file and the address book storage.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write the example configuration file",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the configured storage backend and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}

// addCommand looks up a CEP and saves the address
func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Look up a CEP and save the address",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "Who the address belongs to",
			},
			&cli.StringFlag{
				Name:    "display-name",
				Aliases: []string{"n"},
				Usage:   "Label shown in lists and used by search",
			},
			&cli.StringFlag{
				Name:     "cep",
				Usage:    "Postal code to look up",
				Required: true,
			},
		}, jsonFlags()...),
		Action: r.Add,
	}
}

// listCommand prints saved addresses
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List saved addresses",
		Flags:   append(filterFlags(), jsonFlags()...),
		Action:  r.List,
	}
}

// optionsCommand prints the values accepted by the city and state filters
func optionsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "options",
		Usage:  "Show the cities and states present in the address book",
		Flags:  jsonFlags(),
		Action: r.Options,
	}
}

// editCommand changes an address's display name
func editCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "edit",
		Usage: "Change the display name of a saved address",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "display-name",
				Aliases:  []string{"n"},
				Usage:    "New display name",
				Required: true,
			},
		},
		Action: r.Edit,
	}
}

// deleteCommand removes an address
func deleteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Aliases: []string{"rm"},
		Usage:   "Delete a saved address",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Action: r.Delete,
	}
}

// lookupCommand queries the lookup service without saving anything
func lookupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lookup",
		Usage: "Look up a CEP without saving it",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "cep"},
		},
		Flags:  jsonFlags(),
		Action: r.Lookup,
	}
}

// exportCommand writes the address book to a file
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export saved addresses as CSV, Markdown, text or JSON",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format (csv, markdown, txt, json)",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path, - for stdout (default: agenda.<ext>)",
			},
		}, filterFlags()...),
		Action: r.Export,
	}
}

// tuiCommand returns the top-level TUI command for interactive address book management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive address book",
		Action:  r.TUI,
	}
}
