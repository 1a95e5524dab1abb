package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudposse/tfmatrix/cmd"
	errUtils "github.com/cloudposse/tfmatrix/errors"
	log "github.com/cloudposse/tfmatrix/pkg/logger"
)

func main() {
	// Set up signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		// Exit with correct POSIX exit code (128 + signal number).
		if s, ok := sig.(syscall.Signal); ok {
			errUtils.OsExit(128 + int(s))
		}
		errUtils.OsExit(130)
	}()

	errUtils.OsExit(run())
}

// run executes the main application logic and returns an exit code.
func run() int {
	err := cmd.Execute()
	if err != nil {
		formatted := errUtils.Format(err, errUtils.DefaultFormatterConfig())
		os.Stderr.WriteString(formatted + "\n")

		exitCode := errUtils.GetExitCode(err)
		log.Debug("Exiting with exit code", "code", exitCode)
		return exitCode
	}
	return 0
}
