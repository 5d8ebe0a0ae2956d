// Command reqkit issues HTTP requests through the reqkit transports.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	apperrors "github.com/kbukum/reqkit/errors"
	"github.com/kbukum/reqkit/fetch"
	"github.com/kbukum/reqkit/hostfetch"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// classify maps a command failure onto an AppError.
func classify(err error) *apperrors.AppError {
	var hostErr *hostfetch.HostError
	if errors.As(err, &hostErr) {
		return hostfetch.ToAppError(err)
	}
	return fetch.ToAppError(err)
}

// printError writes the classified error and its details, one per line.
func printError(w io.Writer, err error) {
	appErr := classify(err)
	if appErr == nil {
		return
	}
	fmt.Fprintf(w, "Error: %s\n", appErr.Error())
	if len(appErr.Details) == 0 {
		return
	}
	if data, mErr := json.Marshal(appErr.Details); mErr == nil {
		fmt.Fprintf(w, "Details: %s\n", data)
	}
}
