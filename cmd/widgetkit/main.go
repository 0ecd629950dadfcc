// widgetkit renders widget manifests, builds manifests interactively and
// serves a demo page whose widgets can be updated over HTTP.
//
// Usage:
//
//	widgetkit render [--manifests dir] [--id widget]
//	widgetkit prompt [--output file.yaml]
//	widgetkit serve [--config file]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

type command struct {
	name    string
	summary string
	run     func(args []string, stdout, stderr io.Writer) error
}

var commands = []command{
	{name: "render", summary: "print the fragments declared in widget manifests", run: runRender},
	{name: "prompt", summary: "declare a widget interactively", run: runPrompt},
	{name: "serve", summary: "serve a demo page with live widget updates", run: runServe},
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(stderr)
		return nil
	}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			err := cmd.run(args[1:], stdout, stderr)
			if errors.Is(err, pflag.ErrHelp) {
				return nil
			}
			return err
		}
	}
	printUsage(stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: widgetkit <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, `Run "widgetkit <command> --help" for command flags.`)
}

func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	flags := pflag.NewFlagSet("widgetkit "+name, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	return flags
}
