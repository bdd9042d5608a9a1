package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "twentyq",
		Usage: "20 Questions over a CSV dataset of binary traits",
		Commands: []*cli.Command{
			playCommand(),
			treeCommand(),
		},
	}
}

func Run(ctx context.Context, argv []string) *Error {
	if err := newApp().Run(ctx, argv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
