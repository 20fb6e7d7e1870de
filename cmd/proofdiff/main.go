// Command proofdiff shows which lines and words of an original text changed
// in a revised version of it.
//
// Usage:
//
//	proofdiff original.txt revised.txt
//	proofdiff --side-by-side old.js new.js
//	proofdiff --json draft.md edited.md
//	git show HEAD:notes.md | proofdiff --stdin notes.md
//	git diff | proofdiff --diff-input
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dacharyc/proofdiff"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Exit codes
const (
	exitIdentical = 0 // texts are identical
	exitDiffer    = 1 // texts differ
	exitError     = 2 // error occurred
)

const defaultChangeColor = "\033[0;33;1m" // bold yellow (for line markers)

// config holds configuration from profile files
type config struct {
	mode        string
	algorithm   string
	noColor     bool
	colorSpec   string
	lineNumbers int
	context     int
	sideBySide  bool
	width       int
	jsonOutput  bool
	startDelete string
	stopDelete  string
	startModify string
	stopModify  string
	startInsert string
	stopInsert  string
	lessMode    bool
	printerMode bool
	statistics  bool
	verbose     bool
}

// cliFlags holds all parsed command-line flags
type cliFlags struct {
	mode        *string
	algorithm   *string
	noColor     *bool
	colorSpec   *string
	lineNumbers *int
	context     *int
	sideBySide  *bool
	width       *int
	jsonOutput  *bool
	startDelete *string
	stopDelete  *string
	startModify *string
	stopModify  *string
	startInsert *string
	stopInsert  *string
	lessMode    *bool
	printerMode *bool
	statistics  *bool
	verbose     *bool
	stdinMode   *bool
	diffInput   *bool
	help        *bool
	version     *bool
}

// prescanProfile extracts --profile value before flag parsing
func prescanProfile(args []string) string {
	for i, arg := range args {
		if arg == "--profile" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(arg, "--profile=") {
			return strings.TrimPrefix(arg, "--profile=")
		}
	}
	return ""
}

// defineFlags sets up all command-line flags with config defaults
func defineFlags(fs *flag.FlagSet, cfg config, stderr io.Writer) cliFlags {
	_ = fs.String("profile", "", "use settings from ~/.proofdiffrc.<profile>")

	f := cliFlags{
		mode:        fs.StringP("mode", "M", cfg.mode, "content mode: auto, code, or prose"),
		algorithm:   fs.StringP("algorithm", "A", cfg.algorithm, "sequence diff algorithm: myers or histogram"),
		noColor:     fs.Bool("no-color", cfg.noColor, "disable colored output"),
		colorSpec:   fs.StringP("color", "c", cfg.colorSpec, "set colors for deleted/modified text (format: delete[,modify], or 'list')"),
		lineNumbers: fs.IntP("line-numbers", "L", cfg.lineNumbers, "show line numbers with specified width (0 for auto-width)"),
		context:     fs.IntP("context", "C", cfg.context, "show only changed lines and N lines of context around them"),
		sideBySide:  fs.Bool("side-by-side", cfg.sideBySide, "show original and revision in two columns"),
		width:       fs.IntP("width", "W", cfg.width, "total output width for --side-by-side (0 uses $COLUMNS or 160)"),
		jsonOutput:  fs.Bool("json", cfg.jsonOutput, "print the line differences as JSON"),
		startDelete: fs.StringP("start-delete", "w", cfg.startDelete, "string to mark begin of deleted lines"),
		stopDelete:  fs.StringP("stop-delete", "x", cfg.stopDelete, "string to mark end of deleted lines"),
		startModify: fs.String("start-modify", cfg.startModify, "string to mark begin of modified text"),
		stopModify:  fs.String("stop-modify", cfg.stopModify, "string to mark end of modified text"),
		startInsert: fs.StringP("start-insert", "y", cfg.startInsert, "string to mark begin of inserted lines (side-by-side and diff input)"),
		stopInsert:  fs.StringP("stop-insert", "z", cfg.stopInsert, "string to mark end of inserted lines (side-by-side and diff input)"),
		lessMode:    fs.BoolP("less-mode", "l", cfg.lessMode, "use overstrike to highlight text for less -r"),
		printerMode: fs.BoolP("printer", "p", cfg.printerMode, "use overstrike to highlight text for printing"),
		statistics:  fs.BoolP("statistics", "s", cfg.statistics, "print statistics"),
		verbose:     fs.Bool("verbose", cfg.verbose, "log comparison details to stderr"),
		stdinMode:   fs.Bool("stdin", false, "read original text from stdin, revision from argument"),
		diffInput:   fs.Bool("diff-input", false, "read unified diff from stdin and annotate changed words"),
		help:        fs.BoolP("help", "h", false, "show help"),
		version:     fs.BoolP("version", "v", false, "show version"),
	}

	fs.Lookup("color").NoOptDefVal = "default"
	fs.Lookup("line-numbers").NoOptDefVal = "0"

	fs.Usage = func() {
		name := fs.Name()
		fmt.Fprintf(stderr, "Usage: %s [options] original revised\n", name)
		fmt.Fprintf(stderr, "       %s [options] --stdin revised\n", name)
		fmt.Fprintf(stderr, "\nLine and word level comparison of an original text and its revision.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fmt.Fprint(stderr, fs.FlagUsages())
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  %s draft.txt edited.txt\n", name)
		fmt.Fprintf(stderr, "  %s --side-by-side -C 2 old.js new.js\n", name)
		fmt.Fprintf(stderr, "  git show HEAD:notes.md | %s --stdin notes.md\n", name)
		fmt.Fprintf(stderr, "  git diff | %s --diff-input\n", name)
		fmt.Fprintf(stderr, "\nExit codes:\n")
		fmt.Fprintf(stderr, "  0  texts are identical\n")
		fmt.Fprintf(stderr, "  1  texts differ\n")
		fmt.Fprintf(stderr, "  2  error occurred\n")
	}

	return f
}

// printColorList prints available colors
func printColorList(w io.Writer) {
	fmt.Fprintln(w, "Available colors:")
	colors := proofdiff.ColorNames()
	fmt.Fprintf(w, "  %s\n", strings.Join(colors[:8], ", "))
	fmt.Fprintf(w, "  %s\n", strings.Join(colors[8:], ", "))
	fmt.Fprintln(w, "\nUsage: -c delete_color[,modify_color]")
	fmt.Fprintln(w, "Example: -c red,yellow")
	fmt.Fprintln(w, "Example: -c brightred")
}

// parseColors parses the color specification and returns delete/modify colors
func parseColors(colorSpec string) (deleteColor, modifyColor string, err error) {
	deleteColor = proofdiff.ANSIDeleteColor
	modifyColor = proofdiff.ANSIModifyColor
	if colorSpec != "" && colorSpec != "default" {
		return proofdiff.ParseColorSpec(colorSpec)
	}
	return deleteColor, modifyColor, nil
}

// readInputTexts reads input from stdin or files
func readInputTexts(args []string, stdinMode bool, stdin io.Reader) (text1, text2 string, err error) {
	if stdinMode {
		if len(args) < 1 {
			return "", "", fmt.Errorf("--stdin mode requires one file argument")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		text2, err = readFile(args[0])
		if err != nil {
			return "", "", err
		}
		return string(data), text2, nil
	}

	if len(args) < 2 {
		return "", "", fmt.Errorf("requires two file arguments")
	}
	text1, err = readFile(args[0])
	if err != nil {
		return "", "", err
	}
	text2, err = readFile(args[1])
	if err != nil {
		return "", "", err
	}
	return text1, text2, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns its exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	configPath, err := findConfigFile(prescanProfile(args))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config %s: %v\n", configPath, err)
		return exitError
	}

	fs := flag.NewFlagSet("proofdiff", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := defineFlags(fs, cfg, stderr)
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	if *f.version {
		fmt.Fprintf(stdout, "proofdiff version %s\n", Version)
		return exitIdentical
	}
	if *f.help {
		fs.Usage()
		return exitIdentical
	}
	if *f.colorSpec == "list" {
		printColorList(stdout)
		return exitIdentical
	}

	level := slog.LevelWarn
	if *f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts, err := buildOptions(*f.mode, *f.algorithm)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	deleteColor, modifyColor, err := parseColors(*f.colorSpec)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	useColor := !*f.noColor && os.Getenv("NO_COLOR") == "" && (isTerminal(stdout) || *f.colorSpec != "")
	if *f.lessMode || *f.printerMode {
		useColor = false
	}

	fmtOpts := proofdiff.FormatOptions{
		StartDelete: *f.startDelete,
		StopDelete:  *f.stopDelete,
		StartModify: *f.startModify,
		StopModify:  *f.stopModify,
		StartInsert: *f.startInsert,
		StopInsert:  *f.stopInsert,
		UseColor:    useColor,
		DeleteColor: deleteColor,
		ModifyColor: modifyColor,
		InsertColor: proofdiff.ANSIInsertColor,
		ColorReset:  proofdiff.ANSIReset,
		LessMode:    *f.lessMode,
		PrinterMode: *f.printerMode,
	}

	if *f.diffInput {
		if err := proofdiff.ProcessUnifiedDiff(stdin, stdout, opts, fmtOpts); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		return exitIdentical
	}

	text1, text2, err := readInputTexts(fs.Args(), *f.stdinMode, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if !*f.stdinMode {
			fs.Usage()
		}
		return exitError
	}

	started := time.Now()
	cmp := proofdiff.Compare(text1, text2, opts)
	logger.Debug("compared texts",
		"mode", cmp.Mode,
		"algorithm", opts.Algorithm,
		"source_lines", len(cmp.Source),
		"target_lines", len(cmp.Target),
		"elapsed", time.Since(started))

	fmtOpts.ShowLineNumbers = *f.lineNumbers >= 0
	fmtOpts.LineNumWidth = *f.lineNumbers
	if !*f.sideBySide {
		fmtOpts.ChangeMarker = "| "
		if useColor {
			fmtOpts.ChangeMarker = defaultChangeColor + "| " + proofdiff.ANSIReset
		}
	}

	switch {
	case *f.jsonOutput:
		if err := writeJSON(stdout, cmp.Source); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	case *f.sideBySide:
		fmt.Fprintln(stdout, proofdiff.FormatSideBySide(cmp, text1, text2, outputWidth(*f.width, stdout), fmtOpts))
	case *f.context > 0:
		printWithContext(stdout, text1, cmp.Source, *f.context, fmtOpts)
	default:
		fmt.Fprintln(stdout, proofdiff.FormatDifferences(text1, cmp.Source, fmtOpts))
	}

	if *f.statistics {
		printStatistics(stderr, proofdiff.ComputeStatistics(cmp.Source), proofdiff.ComputeStatistics(cmp.Target))
	}

	if proofdiff.HasChanges(cmp.Source) || proofdiff.HasChanges(cmp.Target) {
		return exitDiffer
	}
	return exitIdentical
}

// buildOptions converts the mode and algorithm names into engine options
func buildOptions(mode, algorithm string) (proofdiff.Options, error) {
	m, err := proofdiff.ParseContentMode(mode)
	if err != nil {
		return proofdiff.Options{}, err
	}
	a, err := proofdiff.ParseAlgorithm(algorithm)
	if err != nil {
		return proofdiff.Options{}, err
	}
	return proofdiff.Options{Mode: m, Algorithm: a}, nil
}

// writeJSON writes diffs as indented JSON
func writeJSON(w io.Writer, diffs []proofdiff.LineDiff) error {
	if diffs == nil {
		diffs = []proofdiff.LineDiff{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(diffs); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// outputWidth resolves the side-by-side width: the flag, then the
// terminal size of out, then $COLUMNS, then 160.
func outputWidth(width int, out io.Writer) int {
	if width > 0 {
		return width
	}
	if f, ok := out.(*os.File); ok && f != nil {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				return w
			}
		}
	}
	if cols, err := strconv.Atoi(strings.TrimSpace(os.Getenv("COLUMNS"))); err == nil && cols > 0 {
		return cols
	}
	return 160
}

// printWithContext prints only changed lines with surrounding context
func printWithContext(w io.Writer, text string, diffs []proofdiff.LineDiff, contextLines int, fmtOpts proofdiff.FormatOptions) {
	lines := proofdiff.SplitLines(text)
	if fmtOpts.ShowLineNumbers && fmtOpts.LineNumWidth == 0 {
		fmtOpts.LineNumWidth = max(3, len(strconv.Itoa(len(lines))))
	}

	toPrint := make([]bool, len(diffs))
	for i, d := range diffs {
		if d.IsDifferent {
			start := max(0, i-contextLines)
			end := min(len(diffs), i+contextLines+1)
			for j := start; j < end; j++ {
				toPrint[j] = true
			}
		}
	}

	lastPrinted := -1
	for i, d := range diffs {
		if !toPrint[i] {
			continue
		}
		if lastPrinted >= 0 && i > lastPrinted+1 {
			fmt.Fprintln(w, "---")
		}
		fmt.Fprintln(w, proofdiff.FormatDifferenceLine(lines[d.LineNumber], d, fmtOpts))
		lastPrinted = i
	}
}

// printStatistics prints diff statistics
func printStatistics(w io.Writer, oldSt, newSt proofdiff.Statistics) {
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "old: %d lines  %d %d%% unchanged  %d %d%% modified  %d %d%% deleted\n",
		oldSt.Lines,
		oldSt.Unchanged, percent(oldSt.Unchanged, oldSt.Lines),
		oldSt.Modified, percent(oldSt.Modified, oldSt.Lines),
		oldSt.Deleted, percent(oldSt.Deleted, oldSt.Lines))
	fmt.Fprintf(w, "new: %d lines  %d %d%% unchanged  %d %d%% modified  %d %d%% inserted\n",
		newSt.Lines,
		newSt.Unchanged, percent(newSt.Unchanged, newSt.Lines),
		newSt.Modified, percent(newSt.Modified, newSt.Lines),
		newSt.Deleted, percent(newSt.Deleted, newSt.Lines))
}

// percent calculates percentage, handling division by zero
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return (part * 100) / total
}

// readFile reads an entire file into a string
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// isTerminal returns true if w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && f != nil && term.IsTerminal(int(f.Fd()))
}

// findConfigFile returns the path to the config file for the given profile.
// If a profile is specified but the file doesn't exist, it returns an error.
func findConfigFile(profile string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil // No home dir, use defaults
	}

	if profile == "" {
		path := filepath.Join(home, ".proofdiffrc")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		xdgConfig := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfig == "" {
			xdgConfig = filepath.Join(home, ".config")
		}
		path = filepath.Join(xdgConfig, "proofdiff", "config")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		return "", nil
	}

	path := filepath.Join(home, ".proofdiffrc."+profile)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("profile config file not found: %s", path)
	}
	return path, nil
}

// loadConfig reads a config file and returns the configuration.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	return parseConfig(cfg, string(data))
}

// parseConfig applies "key = value" lines to cfg. Blank lines and lines
// starting with # are skipped; a bare key means "key = true".
func parseConfig(cfg config, data string) (config, error) {
	for i, raw := range strings.Split(data, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var key, value string
		if idx := strings.Index(line, "="); idx >= 0 {
			key = strings.TrimSpace(line[:idx])
			value = strings.TrimSpace(line[idx+1:])
		} else {
			key = line
			value = "true"
		}

		if err := applyConfigOption(&cfg, key, value); err != nil {
			return cfg, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return cfg, nil
}

// defaultConfig returns a config with default values
func defaultConfig() config {
	return config{
		mode:        "auto",
		algorithm:   "myers",
		lineNumbers: -1,
		startDelete: "[-",
		stopDelete:  "-]",
		startModify: "{~",
		stopModify:  "~}",
		startInsert: "{+",
		stopInsert:  "+}",
	}
}

// applyStringOption handles string config options
func applyStringOption(cfg *config, key, value string) bool {
	switch key {
	case "color", "c":
		cfg.colorSpec = value
	case "start-delete", "w":
		cfg.startDelete = value
	case "stop-delete", "x":
		cfg.stopDelete = value
	case "start-modify":
		cfg.startModify = value
	case "stop-modify":
		cfg.stopModify = value
	case "start-insert", "y":
		cfg.startInsert = value
	case "stop-insert", "z":
		cfg.stopInsert = value
	default:
		return false
	}
	return true
}

// applyBoolOption handles boolean config options
func applyBoolOption(cfg *config, key, value string) bool {
	switch key {
	case "no-color":
		cfg.noColor = parseBool(value)
	case "side-by-side":
		cfg.sideBySide = parseBool(value)
	case "json":
		cfg.jsonOutput = parseBool(value)
	case "less-mode", "l":
		cfg.lessMode = parseBool(value)
	case "printer", "p":
		cfg.printerMode = parseBool(value)
	case "statistics", "s":
		cfg.statistics = parseBool(value)
	case "verbose":
		cfg.verbose = parseBool(value)
	default:
		return false
	}
	return true
}

// applyIntOption handles integer config options
func applyIntOption(cfg *config, key, value string) bool {
	switch key {
	case "line-numbers", "L":
		cfg.lineNumbers = parseInt(value, -1)
	case "context", "C":
		cfg.context = parseInt(value, 0)
	case "width", "W":
		cfg.width = parseInt(value, 0)
	default:
		return false
	}
	return true
}

// applyConfigOption sets a config field based on key and value
func applyConfigOption(cfg *config, key, value string) error {
	if applyStringOption(cfg, key, value) {
		return nil
	}
	if applyBoolOption(cfg, key, value) {
		return nil
	}
	if applyIntOption(cfg, key, value) {
		return nil
	}

	// Special cases with validation
	switch key {
	case "mode", "M":
		if _, err := proofdiff.ParseContentMode(value); err != nil {
			return err
		}
		cfg.mode = value
	case "algorithm", "A":
		if _, err := proofdiff.ParseAlgorithm(value); err != nil {
			return err
		}
		cfg.algorithm = value
	default:
		return fmt.Errorf("unknown option: %s", key)
	}
	return nil
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "yes" || s == "1" || s == ""
}

// parseInt parses an integer value from a string
func parseInt(s string, defaultVal int) int {
	val, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultVal
	}
	return val
}
