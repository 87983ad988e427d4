// Package cmd implements the hooked CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (run, check, version).
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/go-drift/hooked/pkg/errors"
	"github.com/go-drift/hooked/pkg/hooked"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(env *Env, args []string) error
	SubCommands []*Command
}

// Env carries the output streams a command writes to.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
}

var rootCmd = &Command{
	Name:  "hooked",
	Short: "hooked - scripted runs of state bindings",
	Long: `hooked mounts a bound target, drives its setters from a scenario
file, and prints the rendered text and state after every step.

Use "hooked <command> --help" for more information about a command.`,
	Usage: "hooked <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return execute(&Env{Stdout: os.Stdout, Stderr: os.Stderr}, os.Args[1:])
}

func execute(env *Env, args []string) error {
	// Handle no arguments
	if len(args) == 0 {
		printHelp(env.Stdout, rootCmd)
		return nil
	}

	// Handle global flags and extract --log-level
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(env.Stdout, rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version":
			if len(filteredArgs) == 0 {
				return runVersion(env, nil)
			}
			filteredArgs = append(filteredArgs, arg)
		case "--log-level":
			if i+1 >= len(args) {
				return fmt.Errorf("--log-level requires a level (debug, info, warn, error)")
			}
			if err := setupLogging(env, args[i+1]); err != nil {
				return err
			}
			i++
		default:
			if level, ok := strings.CutPrefix(arg, "--log-level="); ok {
				if err := setupLogging(env, level); err != nil {
					return err
				}
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(env.Stdout, rootCmd)
		return nil
	}

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(env.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(env.Stderr, rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(env.Stdout, cmd)
			return nil
		}
	}

	return cmd.Run(env, cmdArgs)
}

// setupLogging installs a console logger at level for bindings and the
// error handler.
func setupLogging(env *Env, level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	logger := zap.New(zapcore.NewCore(encoder, zapcore.AddSync(env.Stderr), lvl))
	hooked.SetLogger(logger)
	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: lvl == zapcore.DebugLevel})
	return nil
}

func printHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  -v, --version        Show version information")
	fmt.Fprintln(w, "  --log-level LEVEL    Log binding activity to stderr (debug, info, warn, error)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  hooked run greeting.yaml        Run a scenario")
	fmt.Fprintln(w, "  hooked check scenarios/*.yaml   Validate scenario files")
}

func printCommandHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
}
