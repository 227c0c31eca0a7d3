package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/birkland/servefs"
	ref "github.com/birkland/servefs/internal/resolv"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var cat cli.Command = cli.Command{
	Name:  "cat",
	Usage: "Resolve a path and print its content",
	Description: `Given a location and a path, resolve the path exactly as
	serve would, and write the content to stdout.

	If the path cannot be served (because it does not exist, or would
	escape the location), cat fails with the reason.  For example

	  servefs cat dir:/srv/static css/app.css
	  servefs -i index.html cat bundle:./site docs/`,
	ArgsUsage: "KIND:LOCATION [ path ]",

	Action: func(c *cli.Context) error {
		return catAction(os.Stdout, c.Args())
	},
}

func catAction(w io.Writer, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("cat takes a location and an optional path")
	}

	loc, err := ref.ParseLocation(args[0])
	if err != nil {
		return err
	}

	var segment string
	if len(args) == 2 {
		segment = args[1]
	}

	ctx := context.Background()
	res, err := open(ctx, loc)
	if err != nil {
		return err
	}

	content, err := res.Resolve(ctx, segment)
	if err != nil {
		return errors.Wrapf(err, "could not resolve '%s'", segment)
	}

	if content.Status != servefs.OK {
		return fmt.Errorf("could not resolve '%s': %s", segment, content.Status)
	}

	_, err = w.Write(content.Body)
	return err
}
