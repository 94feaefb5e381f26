// Package app wires user input, printers and scenarios into the optrun command.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pouriyajamshidi/optrun"
	"golang.org/x/term"
)

// Run executes the optrun application and returns an exit code
func Run() int {
	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))

	ctx := setupSignalHandler(context.Background())

	return run(ctx, os.Args[1:], isTerminal, os.Stdout)
}

func run(ctx context.Context, args []string, isTerminal bool, out io.Writer) int {
	config, err := ProcessUserInput(args, isTerminal)
	if err != nil {
		return handleError(ctx, err, nil, out)
	}

	selected, err := SelectScenarios(config)
	if err != nil {
		return handleError(ctx, err, nil, out)
	}

	config.PrinterConfig.Out = out

	printer, err := optrun.NewPrinter(config.PrinterConfig)
	if err != nil {
		return handleError(ctx, err, nil, out)
	}
	defer printer.Done()

	runner := optrun.NewRunner(
		optrun.WithPrinter(printer),
		optrun.WithFormat(config.Format),
		optrun.WithStatistics(config.ShowStatistics),
	)

	if _, err := runner.ExecuteAll(ctx, selected); err != nil {
		return handleError(ctx, err, printer, out)
	}

	return 0
}

func setupSignalHandler(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

func handleError(ctx context.Context, err error, printer optrun.Printer, out io.Writer) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, ErrUsageRequested) {
		// a wrapped sentinel carries a parse error worth showing
		if err != ErrUsageRequested {
			printError(err, printer)
		}
		PrintUsage(out)
		return 1
	}

	if errors.Is(err, ErrVersionRequested) {
		PrintVersion(out)
		return 0
	}

	if errors.Is(err, ErrListRequested) {
		PrintScenarios(out)
		return 0
	}

	if errors.Is(err, ErrUpdateCheckRequested) {
		msg, checkErr := CheckForUpdates(ctx)
		if errors.Is(checkErr, ErrNoReleases) {
			fmt.Fprintf(out, "OPTRUN version %s, no release has been published yet\n", Version)
			return 0
		}
		if checkErr != nil {
			printError(checkErr, printer)
			return 1
		}
		fmt.Fprintln(out, msg)
		return 0
	}

	printError(err, printer)
	return 1
}

func printError(err error, printer optrun.Printer) {
	if printer != nil {
		printer.PrintError("%v", err)
		return
	}

	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
