// Package onboard implements the first-run flow: probe the search API,
// create the config directory, and write the default config.
package onboard

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cartling/cartling/internal/config"
	"github.com/cartling/cartling/internal/foodapi"
)

// Result holds the outcome of the onboarding flow.
type Result struct {
	Config config.Config
	Online bool
}

// Runner encapsulates onboarding dependencies for testability.
type Runner struct {
	Stdout io.Writer
	APIURL string
}

// NewRunner creates a Runner with default stdout and API endpoint.
func NewRunner() *Runner {
	return &Runner{
		Stdout: os.Stdout,
		APIURL: config.Defaults().API.BaseURL,
	}
}

// Run executes the first-run onboarding flow. The search API being down is
// not fatal: the list works offline, autocomplete just stays quiet.
func (r *Runner) Run() (*Result, error) {
	w := r.Stdout

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  Welcome to cartling!")
	fmt.Fprintln(w, "  Your shopping list, in the terminal.")
	fmt.Fprintln(w, "")

	cfg := config.Defaults()
	cfg.API.BaseURL = r.APIURL

	// Step 1: probe the food search API
	fmt.Fprint(w, "  Checking the food search API... ")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	online := true
	client := foodapi.New(cfg.API.BaseURL, 5*time.Second, nil)
	if err := client.IsAvailable(ctx); err != nil {
		online = false
		fmt.Fprintln(w, "unreachable.")
		fmt.Fprintln(w, "  Autocomplete will be unavailable until it comes back;")
		fmt.Fprintln(w, "  the list itself works offline.")
	} else {
		fmt.Fprintln(w, "ok.")
	}

	// Step 2: create the config directory and import folder
	fmt.Fprint(w, "  Creating config directory... ")
	if err := os.MkdirAll(config.ImportDir(), 0o755); err != nil {
		fmt.Fprintln(w, "failed.")
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	fmt.Fprintln(w, "done.")
	fmt.Fprintf(w, "  Config: %s\n", config.Dir())

	// Step 3: write the default config
	if err := config.Save(cfg); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  All set. Type to search foods, /help for commands.")
	fmt.Fprintln(w, "")

	return &Result{Config: cfg, Online: online}, nil
}
