package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/pouriyajamshidi/optrun"
	"github.com/pouriyajamshidi/optrun/printers"
	"github.com/pouriyajamshidi/optrun/scenarios"
)

var (
	// ErrUsageRequested indicates usage help was requested
	ErrUsageRequested = errors.New("usage requested")

	// ErrVersionRequested indicates version display was requested
	ErrVersionRequested = errors.New("version requested")

	// ErrUpdateCheckRequested indicates update check was requested
	ErrUpdateCheckRequested = errors.New("update check requested")

	// ErrListRequested indicates the list of built-in scenarios was requested
	ErrListRequested = errors.New("scenario list requested")
)

// RunConfig contains all configuration needed to select and run scenarios.
type RunConfig struct {
	// Scenario selection
	ScenarioNames []string
	Expression    string
	ScenarioFile  string

	// Output options
	Format         printers.Format
	ShowStatistics bool
	PrinterConfig  optrun.PrinterConfig
}

// flags that take a value; permuteArgs needs to keep them next to their argument
var valueFlags = []string{"e", "f", "x", "csv", "db"}

// permuteArgs moves flags in front of positional arguments, since flag parsing
// stops just before the first non-flag argument.
// see: https://pkg.go.dev/flag
func permuteArgs(args []string) error {
	var flagArgs []string
	var nonFlagArgs []string

	for i := 0; i < len(args); i++ {
		v := args[i]
		if len(v) < 2 || v[0] != '-' {
			nonFlagArgs = append(nonFlagArgs, v)
			continue
		}

		optionName := v[1:]
		if optionName[0] == '-' {
			optionName = optionName[1:]
		}

		if !slices.Contains(valueFlags, optionName) {
			flagArgs = append(flagArgs, v)
			continue
		}

		// out of index
		if len(args) <= i+1 {
			return ErrUsageRequested
		}

		flagArgs = append(flagArgs, args[i:i+2]...)
		i++
	}

	permutedArgs := slices.Concat(flagArgs, nonFlagArgs)

	// replace args in place
	copy(args, permutedArgs)

	return nil
}

type options struct {
	expression     *string
	scenarioFile   *string
	format         *string
	showStatistics *bool
	showTimestamp  *bool
	outputJSON     *bool
	prettyJSON     *bool
	noColor        *bool
	saveToCSV      *string
	saveToDB       *string
	listScenarios  *bool
	showVer        *bool
	checkUpdates   *bool
}

// newFlagSet declares every command line flag on a fresh FlagSet.
func newFlagSet() (*flag.FlagSet, options) {
	fs := flag.NewFlagSet("optrun", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	opts := options{
		expression: fs.String("e",
			"",
			"run an ad-hoc scenario filtering with the given expression over i, e.g. 'i % 3 == 0'."),
		scenarioFile:   fs.String("f", "", "path to a YAML file with scenario definitions."),
		format:         fs.String("x", "dec", "format of printed values: dec, hex or althex."),
		showStatistics: fs.Bool("s", false, "print statistics after every scenario."),
		showTimestamp:  fs.Bool("D", false, "show timestamp for each printed line."),
		outputJSON:     fs.Bool("j", false, "output in JSON format."),
		prettyJSON: fs.Bool("pretty",
			false,
			"use indentation when using json output format. No effect without the '-j' flag."),
		noColor: fs.Bool("no-color", false, "do not colorize output."),
		saveToCSV: fs.String("csv",
			"",
			"path and file name to store values to a CSV file. The stats will be saved with the same name and `_stats` suffix."),
		saveToDB:      fs.String("db", "", "path and file name to store output to a sqlite3 database."),
		listScenarios: fs.Bool("l", false, "list built-in scenarios and exit."),
		showVer:       fs.Bool("v", false, "show version and exit."),
		checkUpdates:  fs.Bool("u", false, "check for updates and exit."),
	}

	return fs, opts
}

// ProcessUserInput parses command-line arguments (without the program name).
// Returns ErrUsageRequested, ErrVersionRequested, ErrUpdateCheckRequested or
// ErrListRequested for special control flow.
func ProcessUserInput(args []string, isTerminal bool) (RunConfig, error) {
	fs, opts := newFlagSet()

	args = slices.Clone(args)
	if err := permuteArgs(args); err != nil {
		return RunConfig{}, err
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return RunConfig{}, ErrUsageRequested
		}
		return RunConfig{}, fmt.Errorf("%w: %v", ErrUsageRequested, err)
	}

	if *opts.showVer {
		return RunConfig{}, ErrVersionRequested
	}

	if *opts.checkUpdates {
		return RunConfig{}, ErrUpdateCheckRequested
	}

	if *opts.listScenarios {
		return RunConfig{}, ErrListRequested
	}

	format, err := printers.ParseFormat(*opts.format)
	if err != nil {
		return RunConfig{}, fmt.Errorf("%w: %v", ErrUsageRequested, err)
	}

	config := RunConfig{
		ScenarioNames:  fs.Args(),
		Expression:     *opts.expression,
		ScenarioFile:   *opts.scenarioFile,
		Format:         format,
		ShowStatistics: *opts.showStatistics,
		PrinterConfig: optrun.PrinterConfig{
			OutputJSON:    *opts.outputJSON,
			PrettyJSON:    *opts.prettyJSON,
			NoColor:       *opts.noColor || !isTerminal,
			WithTimestamp: *opts.showTimestamp,
			OutputDBPath:  *opts.saveToDB,
			OutputCSVPath: *opts.saveToCSV,
		},
	}

	return config, nil
}

// SelectScenarios resolves the scenarios the configuration asks for. Named
// built-ins come first, then the file, then the ad-hoc expression. When none
// of them is given every built-in scenario is returned.
func SelectScenarios(config RunConfig) ([]optrun.Scenario, error) {
	if len(config.ScenarioNames) == 0 && config.ScenarioFile == "" && config.Expression == "" {
		return scenarios.Builtin(), nil
	}

	var selected []optrun.Scenario

	if len(config.ScenarioNames) > 0 {
		named, err := scenarios.Lookup(config.ScenarioNames...)
		if err != nil {
			return nil, err
		}
		selected = append(selected, named...)
	}

	if config.ScenarioFile != "" {
		f, err := os.Open(config.ScenarioFile)
		if err != nil {
			return nil, fmt.Errorf("open scenario file: %w", err)
		}
		defer f.Close()

		loaded, err := scenarios.Load(f)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", config.ScenarioFile, err)
		}
		selected = append(selected, loaded...)
	}

	if config.Expression != "" {
		sc, err := scenarios.FromExpression("expression", config.Expression, "")
		if err != nil {
			return nil, err
		}
		selected = append(selected, sc)
	}

	return selected, nil
}
