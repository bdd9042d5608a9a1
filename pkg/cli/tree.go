package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/twentyq/pkg/tree"
	"github.com/urfave/cli/v3"
)

func treeCommand() *cli.Command {
	var (
		cfg    config
		format string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format (yaml, text)",
			Value:       "yaml",
			Destination: &format,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "tree",
		Usage: "Build the decision tree for a dataset and print it",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			w := c.Root().Writer
			ctx = cfg.setupLogger(ctx, c.Root().ErrWriter)

			rnd, err := cfg.newRand(ctx)
			if err != nil {
				return err
			}

			_, root, err := cfg.prepare(ctx, c.Root().ErrWriter, rnd)
			if err != nil {
				return err
			}

			switch format {
			case "yaml":
				return tree.WriteYAML(w, root)
			case "text":
				if err := tree.WriteText(w, root); err != nil {
					return err
				}
				s := tree.Collect(root)
				fmt.Fprintf(w, "\n%d nodes, %d questions, %d leaves, depth %d\n",
					s.Nodes, s.Questions, s.Leaves, s.Depth)
				return nil
			default:
				return goerr.New("unsupported format", goerr.V("format", format))
			}
		},
	}
}
