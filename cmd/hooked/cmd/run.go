package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-drift/hooked/cmd/hooked/internal/scenario"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Run one or more scenario files",
		Long: `Run scenario files and print a report for each.

Each scenario binds its target, mounts it, and executes its steps in order.
After every step the report shows the rendered text, the binding state, and
whether a deferred result is pending.

Flags:
  --strict   Exit with an error if any step failed`,
		Usage: "hooked run <scenario.yaml>... [--strict]",
		Run:   runRun,
	})
}

type runOptions struct {
	strict bool
}

func runRun(env *Env, args []string) error {
	paths, opts := parseRunArgs(args)
	if len(paths) == 0 {
		return fmt.Errorf("scenario file is required\n\nUsage: hooked run <scenario.yaml>... [--strict]")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	printer := scenario.NewPrinter(env.Stdout)
	failed := 0
	for i, path := range paths {
		s, err := scenario.Load(path)
		if err != nil {
			return err
		}
		report, err := scenario.Run(ctx, s)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if i > 0 {
			fmt.Fprintln(env.Stdout)
		}
		printer.Print(report)
		failed += report.Failed()
	}

	if opts.strict && failed > 0 {
		return fmt.Errorf("%d step(s) failed", failed)
	}
	return nil
}

func parseRunArgs(args []string) ([]string, runOptions) {
	opts := runOptions{}
	filtered := make([]string, 0, len(args))
	for _, arg := range args {
		switch arg {
		case "--strict":
			opts.strict = true
		default:
			filtered = append(filtered, arg)
		}
	}
	return filtered, opts
}
