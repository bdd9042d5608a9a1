package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/twentyq/pkg/adapter"
	"github.com/m-mizutani/twentyq/pkg/usecase/game"
	"github.com/m-mizutani/twentyq/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func playCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "play",
		Usage: "Think of an object from the dataset and answer yes/no questions",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			w := c.Root().Writer
			ctx = cfg.setupLogger(ctx, c.Root().ErrWriter)

			rnd, err := cfg.newRand(ctx)
			if err != nil {
				return err
			}

			ds, root, err := cfg.prepare(ctx, c.Root().ErrWriter, rnd)
			if err != nil {
				return err
			}

			reader, closeReader, err := newLineReader(c.Root().Reader, w)
			if err != nil {
				return err
			}
			defer closeReader()

			session := game.New(game.NewInput{
				Root:     root,
				Dataset:  ds,
				Prompter: adapter.NewPrompter(reader, w),
				Writer:   w,
				Rand:     rnd,
			})

			if err := session.Run(ctx); err != nil {
				// Ctrl-D or Ctrl-C ends the game like declining another round
				if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
					logging.From(ctx).Debug("input closed", "error", err)
					return nil
				}
				return goerr.Wrap(err, "game session failed")
			}
			return nil
		},
	}
}

// newLineReader uses readline for an interactive terminal and a plain stream reader otherwise
func newLineReader(in io.Reader, w io.Writer) (adapter.LineReader, func(), error) {
	if in == nil {
		in = os.Stdin
	}

	if in == os.Stdin && readline.DefaultIsTerminal() {
		rl, err := adapter.NewTerminalReader(os.Stdin, w)
		if err != nil {
			return nil, nil, err
		}
		return rl, func() { _ = rl.Close() }, nil
	}

	return adapter.NewStreamReader(in, w), func() {}, nil
}
