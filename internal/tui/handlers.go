package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cartling/cartling/internal/export"
	"github.com/cartling/cartling/internal/list"
	"github.com/cartling/cartling/internal/update"
)

// handleCommand dispatches a parsed slash command.
func (m *Model) handleCommand(cmd *Command) (tea.Model, tea.Cmd) {
	defer m.resetInput()

	switch cmd.Name {
	case "help":
		m.overlay = m.renderMarkdown(HelpText())
		return m, nil
	case "quit", "bye", "exit":
		m.quitting = true
		return m, tea.Quit
	case "check":
		return m.handleCheck(cmd.Args)
	case "qty":
		return m.handleQty(cmd.Args)
	case "label":
		return m.handleLabel(cmd.Args)
	case "note":
		return m.handleNote(cmd.Args)
	case "cat":
		return m.handleCat(cmd.Args)
	case "uncat":
		return m.handleUncat(cmd.Args)
	case "rm":
		return m.handleRm(cmd.Args)
	case "clear":
		return m.handleClear()
	case "hide":
		return m.handleShowChecked(false)
	case "show":
		return m.handleShowChecked(true)
	case "undo":
		return m.handleUndo()
	case "staples":
		return m.handleStaples()
	case "staple":
		return m.handleStaple(cmd.Args)
	case "unstaple":
		return m.handleUnstaple(cmd.Args)
	case "export":
		return m.handleExport(cmd.Args)
	case "update":
		return m.handleUpdate()
	default:
		m.setFlash(fmt.Sprintf("Unknown command /%s. Try /help.", cmd.Name), true)
		return m, nil
	}
}

// parseItemArg splits "<n> rest" and resolves n against the displayed
// numbering. A false means the flash is already set.
func (m *Model) parseItemArg(args string) (list.Item, string, bool) {
	fields := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if fields[0] == "" {
		m.setFlash("An item number is required. The numbers are shown on screen.", true)
		return list.Item{}, "", false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		m.setFlash(fmt.Sprintf("%q is not an item number.", fields[0]), true)
		return list.Item{}, "", false
	}
	it, ok := m.itemByNumber(n)
	if !ok {
		m.setFlash(fmt.Sprintf("There is no item %d on screen.", n), true)
		return list.Item{}, "", false
	}
	rest := ""
	if len(fields) > 1 {
		rest = strings.TrimSpace(fields[1])
	}
	return it, rest, true
}

func (m *Model) handleCheck(args string) (tea.Model, tea.Cmd) {
	it, _, ok := m.parseItemArg(args)
	if !ok {
		return m, nil
	}
	if m.applyAction(list.ToggleItem{ID: it.ID}) {
		if it.Checked {
			m.setFlash(fmt.Sprintf("Unchecked %s.", it.Label), false)
		} else {
			m.setFlash(fmt.Sprintf("Checked %s.", it.Label), false)
		}
	}
	return m, nil
}

func (m *Model) handleQty(args string) (tea.Model, tea.Cmd) {
	it, rest, ok := m.parseItemArg(args)
	if !ok {
		return m, nil
	}
	qty, err := strconv.Atoi(rest)
	if err != nil {
		m.setFlash("Usage: /qty <n> <count>", true)
		return m, nil
	}
	if m.applyAction(list.SetQuantity{ID: it.ID, Quantity: qty}) {
		m.setFlash(fmt.Sprintf("%s × %d.", it.Label, qty), false)
	}
	return m, nil
}

func (m *Model) handleLabel(args string) (tea.Model, tea.Cmd) {
	it, rest, ok := m.parseItemArg(args)
	if !ok {
		return m, nil
	}
	if rest == "" {
		m.setFlash("Usage: /label <n> <new name>", true)
		return m, nil
	}
	if m.applyAction(list.SetLabel{ID: it.ID, Label: rest}) {
		m.setFlash(fmt.Sprintf("Renamed %s to %s.", it.Label, rest), false)
	}
	return m, nil
}

func (m *Model) handleNote(args string) (tea.Model, tea.Cmd) {
	it, rest, ok := m.parseItemArg(args)
	if !ok {
		return m, nil
	}
	if m.applyAction(list.SetNote{ID: it.ID, Note: rest}) {
		if rest == "" {
			m.setFlash(fmt.Sprintf("Cleared the note on %s.", it.Label), false)
		} else {
			m.setFlash(fmt.Sprintf("Noted on %s: %s", it.Label, rest), false)
		}
	}
	return m, nil
}

func (m *Model) handleCat(args string) (tea.Model, tea.Cmd) {
	it, rest, ok := m.parseItemArg(args)
	if !ok {
		return m, nil
	}
	if rest == "" {
		m.setFlash("Usage: /cat <n> <category>", true)
		return m, nil
	}
	if m.applyAction(list.AddCategory{ID: it.ID, Category: rest}) {
		m.setFlash(fmt.Sprintf("Tagged %s with %s.", it.Label, list.NormalizeCategory(rest)), false)
	}
	return m, nil
}

func (m *Model) handleUncat(args string) (tea.Model, tea.Cmd) {
	it, rest, ok := m.parseItemArg(args)
	if !ok {
		return m, nil
	}
	if rest == "" {
		m.setFlash("Usage: /uncat <n> <category>", true)
		return m, nil
	}
	if m.applyAction(list.RemoveCategory{ID: it.ID, Category: rest}) {
		m.setFlash(fmt.Sprintf("Untagged %s from %s.", it.Label, list.NormalizeCategory(rest)), false)
	}
	return m, nil
}

func (m *Model) handleRm(args string) (tea.Model, tea.Cmd) {
	it, _, ok := m.parseItemArg(args)
	if !ok {
		return m, nil
	}
	if m.applyAction(list.RemoveItem{ID: it.ID}) {
		m.setFlash(fmt.Sprintf("Removed %s.", it.Label), false)
	}
	return m, nil
}

func (m *Model) handleClear() (tea.Model, tea.Cmd) {
	before := m.state.CheckedCount()
	if before == 0 {
		m.setFlash("No checked items to clear.", false)
		return m, nil
	}
	if m.applyAction(list.ClearChecked{}) {
		m.setFlash(fmt.Sprintf("Cleared %d checked items.", before), false)
	}
	return m, nil
}

func (m *Model) handleShowChecked(show bool) (tea.Model, tea.Cmd) {
	if m.applyAction(list.SetShowChecked{Show: show}) {
		if show {
			m.setFlash("Showing checked items.", false)
		} else {
			m.setFlash("Hiding checked items.", false)
		}
	}
	return m, nil
}

func (m *Model) handleUndo() (tea.Model, tea.Cmd) {
	if m.options.Store == nil {
		m.setFlash("Nothing to undo.", false)
		return m, nil
	}
	st, ok, err := m.options.Store.Undo()
	if err != nil {
		m.setFlash(fmt.Sprintf("undo failed: %v", err), true)
		return m, nil
	}
	if !ok {
		m.setFlash("Nothing to undo.", false)
		return m, nil
	}
	// Undo already wrote the restored state through; don't save again.
	m.state = st
	m.input.SetValue(st.SearchInput)
	m.updateViewport()
	m.setFlash("Undid the last change.", false)
	return m, nil
}

func (m *Model) handleStaples() (tea.Model, tea.Cmd) {
	if m.options.Staples == nil {
		m.setFlash("Staples are not available.", true)
		return m, nil
	}
	content, err := m.options.Staples.Read()
	if err != nil {
		m.setFlash(fmt.Sprintf("reading staples: %v", err), true)
		return m, nil
	}
	m.overlay = m.renderMarkdown(content)
	return m, nil
}

func (m *Model) handleStaple(args string) (tea.Model, tea.Cmd) {
	if m.options.Staples == nil {
		m.setFlash("Staples are not available.", true)
		return m, nil
	}
	if args == "" {
		m.setFlash("Usage: /staple <item>", true)
		return m, nil
	}
	if err := m.options.Staples.Add([]string{args}); err != nil {
		m.setFlash(fmt.Sprintf("adding staple: %v", err), true)
		return m, nil
	}
	m.setFlash(fmt.Sprintf("Added %s to staples.", args), false)
	return m, nil
}

func (m *Model) handleUnstaple(args string) (tea.Model, tea.Cmd) {
	if m.options.Staples == nil {
		m.setFlash("Staples are not available.", true)
		return m, nil
	}
	if args == "" {
		m.setFlash("Usage: /unstaple <keyword>", true)
		return m, nil
	}
	removed, err := m.options.Staples.Remove(args)
	if err != nil {
		m.setFlash(fmt.Sprintf("removing staples: %v", err), true)
		return m, nil
	}
	if removed == 0 {
		m.setFlash(fmt.Sprintf("No staples match %q.", args), false)
	} else {
		m.setFlash(fmt.Sprintf("Removed %d staples.", removed), false)
	}
	return m, nil
}

func (m *Model) handleExport(args string) (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(args)
	if path == "" {
		path = export.DefaultFilename
	}
	if err := export.WriteFile(m.state, path); err != nil {
		m.setFlash(fmt.Sprintf("export failed: %v", err), true)
		return m, nil
	}
	m.overlay = m.renderMarkdown(export.Render(m.state))
	m.setFlash(fmt.Sprintf("Exported to %s.", path), false)
	return m, nil
}

func (m *Model) handleUpdate() (tea.Model, tea.Cmd) {
	if m.options.Version == "" || m.options.Version == "dev" {
		m.setFlash("Self-update is only available in release builds.", false)
		return m, nil
	}
	m.setFlash("Checking for updates...", false)
	version := m.options.Version
	return m, func() tea.Msg {
		res, err := update.Apply(context.Background(), version)
		return UpdateApplyMsg{Result: res, Err: err}
	}
}
