package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/blackroad/roadarchive/archive"
)

var createCommand = &cli.Command{
	Name:      "create",
	Usage:     "Create an archive from files and directories",
	ArgsUsage: "<archive> <source>...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Archive format (zip, tar, tar.gz, tar.bz2, tar.xz, tar.zst, gz); inferred from the path when omitted",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		logger := getLogger(ctx)

		args := command.Args().Slice()
		if len(args) < 2 {
			return fmt.Errorf("expected an archive path and at least one source")
		}
		target, sources := args[0], args[1:]

		opts := []archive.Option{archive.WithLogger(logger.Named("archive"))}
		if format := command.String("format"); format != "" {
			opts = append(opts, archive.WithFormat(archive.Format(format)))
		}

		builder := archive.NewBuilder(target, opts...)
		for _, src := range sources {
			st, err := os.Stat(src)
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", src, err)
			}
			if st.IsDir() {
				builder.AddDir(src, "")
			} else {
				builder.AddFile(src, "")
			}
		}

		built, err := builder.Build()
		if err != nil {
			return fmt.Errorf("failed to build archive: %w", err)
		}

		logger.Info("archive created",
			zap.String("path", built.Path()),
			zap.String("format", string(built.Format())))

		return nil
	},
}
