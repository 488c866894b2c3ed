/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/iand/ddx/catalog"
	"github.com/iand/ddx/diagnose"
)

func main() {
	app := &cli.App{
		Name:     "ddx",
		HelpName: "ddx",
		Usage:    "Rank probable diseases from reported symptoms using a table of diseases",
		Commands: []*cli.Command{
			diagnose.Command,
			catalog.Command,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
