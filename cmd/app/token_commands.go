package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/reviewdesk/tokenvault/cmd/app/commands"
	"github.com/reviewdesk/tokenvault/internal/app"
	"github.com/reviewdesk/tokenvault/internal/config"
)

func getTokenCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "store-token",
			Usage: "Encrypt and store a refresh token for a tenant",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "tenant-id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Tenant ID (UUID)",
				},
				&cli.StringFlag{
					Name:    "token",
					Aliases: []string{"t"},
					Usage:   "Refresh token value (omit to read from stdin)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunStoreToken(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("tenant-id"),
					cmd.String("token"),
				)
			},
		},
		{
			Name:  "get-token",
			Usage: "Decrypt and print a tenant's stored refresh token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "tenant-id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Tenant ID (UUID)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunGetToken(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("tenant-id"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "disconnect-token",
			Usage: "Remove a tenant's stored refresh token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "tenant-id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Tenant ID (UUID)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunDisconnectToken(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("tenant-id"),
				)
			},
		},
		{
			Name:  "migrate-tokens",
			Usage: "Re-encrypt all stored refresh tokens under the current key",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Report what would be migrated without writing",
				},
				&cli.BoolFlag{
					Name:  "force",
					Value: false,
					Usage: "Skip the interactive confirmation",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.TokenMigrationUseCase()
				if err != nil {
					return err
				}

				return commands.RunMigrateTokens(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.Bool("dry-run"),
					cmd.Bool("force"),
					cmd.String("format"),
				)
			},
		},
	}
}
