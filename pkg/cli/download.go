package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdDownload(rt *runtime) *cli.Command {
	var overwrite bool

	flags := append(rt.flags(), &cli.BoolFlag{
		Name:        "overwrite",
		Usage:       "Re-download files that are already cached",
		Destination: &overwrite,
		Sources:     cli.EnvVars("OPENDATA_OVERWRITE"),
	})

	return &cli.Command{
		Name:      "download",
		Usage:     "Download every file of a dataset into the cache",
		ArgsUsage: "<dataset>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			name := c.Args().First()
			if name == "" {
				return goerr.New("dataset name is required")
			}

			portal, err := rt.portal()
			if err != nil {
				return err
			}

			downloaded, err := portal.DownloadDataset(ctx, name, overwrite)
			if err != nil {
				return err
			}

			ctxlog.From(ctx).Info("downloaded dataset",
				slog.String("dataset", name),
				slog.Int("files", len(downloaded)),
			)
			for _, f := range downloaded {
				fmt.Println(f)
			}
			return nil
		},
	}
}

func cmdGet(rt *runtime) *cli.Command {
	var (
		reload bool
		decode bool
	)

	flags := append(rt.flags(),
		&cli.BoolFlag{
			Name:        "reload",
			Usage:       "Download the file again even if it is cached",
			Destination: &reload,
		},
		&cli.BoolFlag{
			Name:        "decode",
			Usage:       "Print the decoded content as JSON instead of the cached path",
			Destination: &decode,
		},
	)

	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch one file of a dataset and print its cached path",
		ArgsUsage: "<dataset> <file>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			name := c.Args().Get(0)
			filename := c.Args().Get(1)
			if name == "" {
				return goerr.New("dataset name is required")
			}

			portal, err := rt.portal()
			if err != nil {
				return err
			}

			result, err := portal.Load(ctx, name, filename, reload, decode)
			if err != nil {
				return err
			}

			if decode && result.Decoded() {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result.Data)
			}

			fmt.Println(result.Path)
			return nil
		},
	}
}

func cmdCached(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:      "cached",
		Usage:     "Check whether a file is in the local cache (exit 1 if not)",
		ArgsUsage: "<dataset> <file>",
		Flags:     rt.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			name := c.Args().Get(0)
			filename := c.Args().Get(1)
			if name == "" || filename == "" {
				return goerr.New("dataset and file name are required")
			}

			portal, err := rt.portal()
			if err != nil {
				return err
			}

			if !portal.IsFileCached(name, filename) {
				return cli.Exit(fmt.Sprintf("%s/%s is not cached", name, filename), 1)
			}

			fmt.Printf("%s/%s is cached\n", name, filename)
			return nil
		},
	}
}
