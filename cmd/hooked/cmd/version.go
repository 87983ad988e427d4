package cmd

import (
	"fmt"

	"github.com/go-drift/hooked/cmd/hooked/internal/scenario"
)

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Show the CLI version and the scenario format it reads.",
		Usage: "hooked version",
		Run:   runVersion,
	})
}

func runVersion(env *Env, args []string) error {
	fmt.Fprintf(env.Stdout, "hooked CLI version %s (built %s)\n", Version, BuildTime)
	fmt.Fprintf(env.Stdout, "scenario format %s\n", scenario.SupportedMajor)
	return nil
}
