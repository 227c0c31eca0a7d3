package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/birkland/servefs"
	"github.com/birkland/servefs/bundle"
	ref "github.com/birkland/servefs/internal/resolv"
	"github.com/urfave/cli"
)

var lsOpts = struct {
	entryType string
}{}

var ls cli.Command = cli.Command{
	Name:  "ls",
	Usage: "List the contents of a bundle",
	Description: `Given a location, load it as a bundle and list every entry in it.

	Locations are given as KIND:LOCATION, where KIND is dir, bundle, or s3.
	Each line lists the type, path and size of an entry; directories have
	no size.  For example, to list the files of an s3 bundle

	  servefs ls -t file s3:assets/site`,
	ArgsUsage: "KIND:LOCATION",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:        "type, t",
			Usage:       "Show only {file, dir} entries",
			Destination: &lsOpts.entryType,
		},
	},

	Action: func(c *cli.Context) error {
		return lsAction(c.Args())
	},
}

func lsAction(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("ls takes exactly one location")
	}

	loc, err := ref.ParseLocation(args[0])
	if err != nil {
		return err
	}

	tree, err := loadTree(context.Background(), loc)
	if err != nil {
		return err
	}

	return list(os.Stdout, tree, servefs.ParseType(lsOpts.entryType))
}

// Lists every entry under tree (but not tree itself), optionally only those of
// a given type
func list(w io.Writer, tree *bundle.Dir, only servefs.Type) error {
	return tree.Walk(func(e bundle.Entry) error {
		if e.Type == servefs.Dir && e.Dir == tree {
			return nil
		}

		if only != 0 && e.Type != only {
			return nil
		}

		size := "-"
		if e.Type == servefs.File {
			size = strconv.Itoa(len(e.File.Contents()))
		}

		_, err := fmt.Fprintf(w, "%s    %s    %s\n", e.Type, e.Path(), size)
		return err
	})
}
