package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/blackroad/roadarchive/archive"
)

var extractCommand = &cli.Command{
	Name:      "extract",
	Usage:     "Extract an archive, optionally limited to named members",
	ArgsUsage: "<archive> [member]...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "dest",
			Aliases: []string{"C"},
			Value:   ".",
			Usage:   "Destination directory",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		logger := getLogger(ctx)

		args := command.Args().Slice()
		if len(args) < 1 {
			return fmt.Errorf("no archive path provided")
		}
		path, members := args[0], args[1:]

		a, err := archive.Open(path, archive.WithLogger(logger.Named("archive")))
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}

		paths, err := a.Extract(command.String("dest"), members...)
		if err != nil {
			return fmt.Errorf("failed to extract archive: %w", err)
		}

		logger.Info("archive extracted",
			zap.String("path", path),
			zap.Int("members", len(paths)))

		return nil
	},
}

var catCommand = &cli.Command{
	Name:      "cat",
	Usage:     "Print a single archive member to stdout",
	ArgsUsage: "<archive> <member>",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      "archive",
			UsageText: "The archive to read from",
		},
		&cli.StringArg{
			Name:      "member",
			UsageText: "The member name to print",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		logger := getLogger(ctx)

		path := command.StringArg("archive")
		member := command.StringArg("member")
		if path == "" || member == "" {
			return fmt.Errorf("expected an archive path and a member name")
		}

		a, err := archive.Open(path, archive.WithLogger(logger.Named("archive")))
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}

		data, err := a.Read(member)
		if err != nil {
			return fmt.Errorf("failed to read member: %w", err)
		}

		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}

		return nil
	},
}
