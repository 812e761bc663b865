package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/blackroad/roadarchive/archive"
)

var listCommand = &cli.Command{
	Name:      "list",
	Usage:     "List the members of an archive",
	ArgsUsage: "<archive>",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      "archive",
			UsageText: "The archive to list",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		logger := getLogger(ctx)

		path := command.StringArg("archive")
		if path == "" {
			return fmt.Errorf("no archive path provided")
		}

		a, err := archive.Open(path, archive.WithLogger(logger.Named("archive")))
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}

		entries, err := a.List()
		if err != nil {
			return fmt.Errorf("failed to list archive: %w", err)
		}

		for _, entry := range entries {
			marker := ""
			if entry.IsDir {
				marker = "/"
			}
			fmt.Printf("%10d  %s%s\n", entry.Size, entry.Name, marker)
		}

		return nil
	},
}

var infoCommand = &cli.Command{
	Name:      "info",
	Usage:     "Show an archive's format, size and member count",
	ArgsUsage: "<archive>",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      "archive",
			UsageText: "The archive to inspect",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		logger := getLogger(ctx)

		path := command.StringArg("archive")
		if path == "" {
			return fmt.Errorf("no archive path provided")
		}

		a, err := archive.Open(path, archive.WithLogger(logger.Named("archive")))
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}

		info, err := a.Info()
		if err != nil {
			return fmt.Errorf("failed to inspect archive: %w", err)
		}

		fmt.Printf("path:    %s\n", info.Path)
		fmt.Printf("format:  %s\n", info.Format)
		fmt.Printf("size:    %d\n", info.Size)
		fmt.Printf("members: %d\n", len(info.Entries))

		return nil
	},
}
