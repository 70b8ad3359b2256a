package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli"

	"github.com/Maiven/corelang/core"
)

// main wires core's value/type runtime up behind a small urfave/cli shell,
// the same app shape the teacher used for its own "run"/"build" commands:
// this binary stands in for the interpreter collaborator spec.md §1 treats
// as out of scope, just enough to demonstrate the bootstrap and dispatch
// the core actually implements.
func main() {
	app := cli.NewApp()
	app.Name = "corelang"
	app.Usage = "demonstrates the core value/type runtime: bootstrap, generic dispatch, print"
	app.Commands = []cli.Command{
		{
			Name:   "demo",
			Usage:  "bootstrap the runtime and print a few built-in values",
			Action: demo,
		},
		{
			Name:   "types",
			Usage:  "print the names bound in the root namespace",
			Action: listNames,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}

func demo(c *cli.Context) error {
	ctx := core.NewContext(core.WithLogger(zerolog.New(os.Stderr).With().Timestamp().Logger()))
	ns := core.Bootstrap(ctx)

	printFn, ok := ns.PrintFunction()
	if !ok {
		return fmt.Errorf("print was not installed by bootstrap")
	}

	values := []*core.Value{
		core.NewBool(true),
		core.NewInt32(-42),
		core.NewUint8(200),
		core.NewFloat64(3.25),
		core.NewTuple(core.NewInt32(1), core.NewInt32(2), core.NewInt32(3)),
		core.NewTuple(core.NewInt32(7)),
		ctx.Intern("example"),
	}
	for _, v := range values {
		if _, err := core.PrintValue(ctx, printFn, v); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

func listNames(c *cli.Context) error {
	ctx := core.NewContext()
	ns := core.Bootstrap(ctx)
	for _, name := range ns.Names() {
		fmt.Fprintln(os.Stdout, name)
	}
	return nil
}
