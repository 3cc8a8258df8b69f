package tui

import "strings"

// Command represents a parsed slash command.
type Command struct {
	Name string
	Args string
}

// ParseCommand parses a slash command from input.
// Returns nil if the input is not a slash command.
func ParseCommand(input string) *Command {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return nil
	}

	input = input[1:] // strip leading /
	parts := strings.SplitN(input, " ", 2)
	cmd := &Command{Name: strings.ToLower(parts[0])}
	if len(parts) > 1 {
		cmd.Args = strings.TrimSpace(parts[1])
	}
	return cmd
}

// HelpText returns the help message for all slash commands. Item numbers are
// the ones shown on screen.
func HelpText() string {
	return `# Commands

Type a food name to search; Enter adds it to the list.

  /help                Show this help
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
  /update              Update cartling to the latest version`
}
