package cmd

import (
	"fmt"

	"github.com/go-drift/hooked/cmd/hooked/internal/scenario"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Validate scenario files without running them",
		Long: `Validate scenario files: format version, target, options, setter
declarations, and step shapes. Nothing is mounted.`,
		Usage: "hooked check <scenario.yaml>...",
		Run:   runCheck,
	})
}

func runCheck(env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("scenario file is required\n\nUsage: hooked check <scenario.yaml>...")
	}

	invalid := 0
	for _, path := range args {
		s, err := scenario.Load(path)
		if err != nil {
			fmt.Fprintf(env.Stderr, "FAIL %v\n", err)
			invalid++
			continue
		}
		decl, _, err := s.Declaration()
		if err != nil {
			fmt.Fprintf(env.Stderr, "FAIL %s: %v\n", path, err)
			invalid++
			continue
		}
		fmt.Fprintf(env.Stdout, "ok   %s (%s, %d steps, %s setters)\n", path, s.Name, len(s.Steps), decl.Kind())
	}

	if invalid > 0 {
		return fmt.Errorf("%d invalid scenario(s)", invalid)
	}
	return nil
}
