// Command w65harness runs W65C02S conformance jobs.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/w65harness/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
