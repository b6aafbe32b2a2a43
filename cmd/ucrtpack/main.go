package main

import (
	"fmt"
	"io"
	"os"

	"ucrtpack/internal/pipeline"
	"ucrtpack/internal/utils"
)

func main() {
	if err := utils.InitConsole(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to initialize console: %v\n", err)
	}

	os.Exit(runMain(os.Args[1:], os.Stderr))
}

// runMain reports any failure and maps it to the process exit status, so
// the failing tool's own code reaches the orchestrator. Errors raised
// before the pipeline starts (bad environment, broken manifest) are
// reported here too; the runner only logs step failures.
func runMain(args []string, errW io.Writer) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(errW, "ucrtpack: %v\n", err)
		return pipeline.ExitCode(err)
	}
	return 0
}
