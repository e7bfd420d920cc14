package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/opendata/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdList(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List all dataset names in the portal",
		Flags: rt.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			portal, err := rt.portal()
			if err != nil {
				return err
			}

			names, err := portal.ListDatasets(ctx)
			if err != nil {
				return err
			}

			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func cmdSearch(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search datasets by keyword",
		ArgsUsage: "<query>",
		Flags:     rt.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			query := c.Args().First()
			if query == "" {
				return goerr.New("query is required")
			}

			portal, err := rt.portal()
			if err != nil {
				return err
			}

			results, err := portal.SearchDatasets(ctx, query)
			if err != nil {
				return err
			}

			name := color.New(color.FgCyan)
			for _, r := range results {
				fmt.Printf("%s\t%s\n", name.Sprint(r.Name), r.Title)
			}
			return nil
		},
	}
}

func cmdInfo(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Show full dataset metadata as JSON",
		ArgsUsage: "<dataset>",
		Flags:     rt.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			name := c.Args().First()
			if name == "" {
				return goerr.New("dataset name is required")
			}

			portal, err := rt.portal()
			if err != nil {
				return err
			}

			info, err := portal.GetDatasetInfo(ctx, name)
			if err != nil {
				return err
			}
			if info == nil {
				return goerr.New(fmt.Sprintf("dataset %q not found", name),
					goerr.V("dataset", name), goerr.T(types.TagNotFound))
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}
}

func cmdFiles(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:      "files",
		Usage:     "List the downloadable files of a dataset",
		ArgsUsage: "<dataset>",
		Flags:     rt.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			name := c.Args().First()
			if name == "" {
				return goerr.New("dataset name is required")
			}

			portal, err := rt.portal()
			if err != nil {
				return err
			}

			files, err := portal.GetAvailableFiles(ctx, name)
			if err != nil {
				return err
			}

			for _, f := range files {
				fmt.Println(f)
			}
			return nil
		},
	}
}
