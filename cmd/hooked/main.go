// Command hooked runs scripted binding scenarios.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/hooked/cmd/hooked/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
