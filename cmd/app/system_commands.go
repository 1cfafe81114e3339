package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/reviewdesk/tokenvault/cmd/app/commands"
	"github.com/reviewdesk/tokenvault/internal/app"
	"github.com/reviewdesk/tokenvault/internal/config"
)

func getSystemCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "migrate",
			Usage: "Run database schema migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "generate-key",
			Usage: "Generate a new 32-byte encryption key as 64 hex characters",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunGenerateKey(commands.DefaultIO(), cmd.String("format"))
			},
		},
	}
}
