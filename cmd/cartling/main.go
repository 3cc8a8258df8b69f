package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cartling/cartling/internal/config"
	"github.com/cartling/cartling/internal/export"
	"github.com/cartling/cartling/internal/foodapi"
	"github.com/cartling/cartling/internal/importer"
	"github.com/cartling/cartling/internal/list"
	"github.com/cartling/cartling/internal/logging"
	"github.com/cartling/cartling/internal/onboard"
	"github.com/cartling/cartling/internal/staples"
	"github.com/cartling/cartling/internal/store"
	"github.com/cartling/cartling/internal/tui"
	"github.com/cartling/cartling/internal/update"
)

var version = "dev"

func main() {
	// Parse --api-url and --pipe flags from args
	var apiURL string
	var pipeMode bool
	filteredArgs := []string{os.Args[0]}
	for i := 1; i < len(os.Args); i++ {
		if os.Args[i] == "--api-url" && i+1 < len(os.Args) {
			apiURL = os.Args[i+1]
			i++ // skip the value
		} else if os.Args[i] == "--pipe" {
			pipeMode = true
		} else {
			filteredArgs = append(filteredArgs, os.Args[i])
		}
	}
	os.Args = filteredArgs

	// Fall back to env var
	if apiURL == "" {
		apiURL = os.Getenv("CARTLING_API_URL")
	}

	if !pipeMode && len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v":
			fmt.Printf("cartling %s\n", version)
			return
		case "--help", "-h":
			printHelp()
			return
		case "--uninstall":
			runUninstall()
			return
		case "--update":
			runUpdate()
			return
		}
	}

	if pipeMode {
		if err := runPipe(apiURL, os.Args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(apiURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(apiURL string) error {
	// First run: onboarding
	if config.IsFirstRun() {
		runner := onboard.NewRunner()
		if apiURL != "" {
			runner.APIURL = apiURL
		}
		if _, err := runner.Run(); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flag / env var override config file
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	logger, err := logging.New(cfg.Debug, config.LogFile())
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer logger.Sync()

	st, err := store.Open(config.DatabaseFile(), logger)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	state, err := st.Load()
	if err != nil {
		return fmt.Errorf("loading list: %w", err)
	}

	food := foodapi.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, logger)
	staplesStore := staples.NewStore(config.StaplesFile())

	tuiModel := tui.New(tui.Options{
		Store:   st,
		Food:    food,
		Staples: staplesStore,
		State:   state,
		Version: version,
		Logger:  logger,
	})

	p := tea.NewProgram(tuiModel, tea.WithAltScreen())

	// Watch the import drop-folder while the TUI runs
	if cfg.Import.Enabled {
		imp, err := importer.New(config.ImportDir(), func(lines []importer.Line) {
			p.Send(tui.ImportMsg{Lines: lines})
		}, logger)
		if err != nil {
			return fmt.Errorf("setting up importer: %w", err)
		}
		if err := imp.Start(); err != nil {
			return fmt.Errorf("starting importer: %w", err)
		}
		defer imp.Stop()
	}

	_, err = p.Run()
	return err
}

// runPipe executes one list operation non-interactively: add, check, list,
// or export. The command comes from args, or from stdin when no args are
// given (one add per line).
func runPipe(apiURL string, args []string) error {
	if config.IsFirstRun() {
		return fmt.Errorf("no config found — run cartling interactively first")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	logger, err := logging.New(cfg.Debug, config.LogFile())
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer logger.Sync()

	st, err := store.Open(config.DatabaseFile(), logger)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	state, err := st.Load()
	if err != nil {
		return fmt.Errorf("loading list: %w", err)
	}

	if len(args) == 0 {
		// Read items from stdin, one per line
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		added := 0
		for _, raw := range strings.Split(string(data), "\n") {
			line, ok := importer.ParseLine(raw)
			if !ok {
				continue
			}
			state, err = list.Apply(state, list.AddItem{Label: line.Label, Quantity: line.Quantity})
			if err != nil {
				return err
			}
			added++
		}
		if added == 0 {
			return fmt.Errorf("no items provided — pass a command or pipe items to stdin")
		}
		if err := st.Save(state); err != nil {
			return err
		}
		fmt.Printf("Added %d items.\n", added)
		return nil
	}

	switch args[0] {
	case "add":
		label := strings.TrimSpace(strings.Join(args[1:], " "))
		if label == "" {
			return fmt.Errorf("usage: cartling --pipe add <item>")
		}
		line, _ := importer.ParseLine(label)
		state, err = list.Apply(state, list.AddItem{Label: line.Label, Quantity: line.Quantity})
		if err != nil {
			return err
		}
		if err := st.Save(state); err != nil {
			return err
		}
		fmt.Printf("Added %s.\n", line.Label)
		return nil

	case "check":
		if len(args) < 2 {
			return fmt.Errorf("usage: cartling --pipe check <n | label>")
		}
		arg := strings.Join(args[1:], " ")
		var idx int
		if n, err := strconv.Atoi(arg); err == nil {
			if n < 1 || n > len(state.Items) {
				return fmt.Errorf("no item %d — run `cartling --pipe list` to see numbers", n)
			}
			idx = n - 1
		} else {
			i, ok := state.FindLabel(arg)
			if !ok {
				return fmt.Errorf("no item named %q", arg)
			}
			idx = i
		}
		it := state.Items[idx]
		state, err = list.Apply(state, list.ToggleItem{ID: it.ID})
		if err != nil {
			return err
		}
		if err := st.Save(state); err != nil {
			return err
		}
		fmt.Printf("Toggled %s.\n", it.Label)
		return nil

	case "list":
		for i, it := range state.Items {
			box := "[ ]"
			if it.Checked {
				box = "[x]"
			}
			line := fmt.Sprintf("%3d. %s %s", i+1, box, it.Label)
			if it.Quantity > 1 {
				line = fmt.Sprintf("%3d. %s %d × %s", i+1, box, it.Quantity, it.Label)
			}
			if it.Note != "" {
				line += fmt.Sprintf(" (%s)", it.Note)
			}
			fmt.Println(line)
		}
		return nil

	case "export":
		fmt.Print(export.Render(state))
		return nil

	default:
		return fmt.Errorf("unknown pipe command %q — use add, check, list, or export", args[0])
	}
}

func runUpdate() {
	if version == "dev" {
		fmt.Println("Auto-update is not available for development builds.")
		return
	}
	fmt.Println("Checking for updates...")
	res, err := update.Apply(context.Background(), version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Update failed: %v\n", err)
		os.Exit(1)
	}
	if res.Applied {
		fmt.Printf("Updated to v%s. Restart cartling to use the new version.\n", res.LatestVersion)
	} else {
		fmt.Println("Already running the latest version.")
	}
}

func runUninstall() {
	configDir := config.Dir()
	fmt.Println("Cartling Uninstall")
	fmt.Println("==================")
	fmt.Println("")
	fmt.Println("This will remove all cartling data:")
	fmt.Printf("  Config, list & staples: %s\n", configDir)
	fmt.Println("")
	fmt.Print("Are you sure? (y/N) ")

	var answer string
	fmt.Scanln(&answer)
	if answer != "y" && answer != "Y" {
		fmt.Println("Cancelled.")
		return
	}

	if err := os.RemoveAll(configDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error removing %s: %v\n", configDir, err)
		os.Exit(1)
	}
	fmt.Printf("Removed %s\n", configDir)

	exe, err := os.Executable()
	if err == nil {
		fmt.Printf("\nTo complete removal, delete the binary:\n  rm %s\n", exe)
	}
	fmt.Println("\nCartling has been uninstalled.")
}

func printHelp() {
	fmt.Printf(`cartling %s — your shopping list, in the terminal

Usage:
  cartling                       Start the interactive list
  cartling --pipe <cmd> [args]   Non-interactive mode (see below)
  cartling --api-url <url>       Use a custom food search endpoint
  cartling --version             Print version and exit
  cartling --help                Show this help
  cartling --update              Update to the latest version
  cartling --uninstall           Remove all cartling data from your system

In the interactive list, type a food name to search; Enter adds it.
Slash commands:
  /help                Show available commands
  /quit, /bye, /exit   Exit cartling
  /check <n>           Check or uncheck item n
  /qty <n> <count>     Set the quantity of item n
  /label <n> <text>    Rename item n
  /note <n> [text]     Set (or clear) the note on item n
  /cat <n> <tag>       Tag item n with a category
  /uncat <n> <tag>     Remove a category tag from item n
  /rm <n>              Delete item n
  /clear               Delete all checked items
  /hide, /show         Hide or show checked items
  /undo                Undo the last change
  /staples             Show staple items
  /staple <item>       Add a staple item
  /unstaple <keyword>  Remove matching staples
  /export [path]       Write the list as markdown
  /update              Update cartling to the latest version

Configuration:
  Config is stored in %s
  Override with CARTLING_CONFIG_DIR environment variable.

Search endpoint (priority: flag > env > config > default):
  --api-url <url>      Override the food search base URL
  CARTLING_API_URL     Environment variable

Pipe mode (non-interactive, for scripting):
  cartling --pipe add "2 oat milk"       Add an item (optional leading quantity)
  cartling --pipe check 3                Toggle item 3 (or: check "oat milk")
  cartling --pipe list                   Print the list
  cartling --pipe export                 Print the list as markdown
  cat weekly.txt | cartling --pipe       Add one item per line from stdin

Examples:
  cartling                                          Start the list
  cartling --pipe export > shopping-list.md         Export for sharing
  cartling --api-url http://localhost:8080          Use a local search API
  CARTLING_CONFIG_DIR=/tmp/test cartling            Use a custom config dir
`, version, config.Dir())
}
