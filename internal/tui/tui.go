package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/cartling/cartling/internal/foodapi"
	"github.com/cartling/cartling/internal/importer"
	"github.com/cartling/cartling/internal/list"
	"github.com/cartling/cartling/internal/staples"
	"github.com/cartling/cartling/internal/store"
	"github.com/cartling/cartling/internal/update"
)

// Options configures the TUI.
type Options struct {
	Store   *store.Store
	Food    *foodapi.Client
	Staples *staples.Store
	State   list.State
	Version string
	Logger  *zap.Logger
}

// debounceDelay is how long typing must pause before a search fires.
const debounceDelay = 300 * time.Millisecond

// maxSuggestions caps the autocomplete dropdown.
const maxSuggestions = 8

// searchTimeout bounds a single suggestion request.
const searchTimeout = 10 * time.Second

// DebounceElapsedMsg signals that the typing pause for a generation is over.
type DebounceElapsedMsg struct {
	Gen int
}

// SuggestionsMsg carries autocomplete results.
type SuggestionsMsg struct {
	Gen   int
	Query string
	Names []string
}

// SuggestErrMsg carries an autocomplete error.
type SuggestErrMsg struct {
	Gen int
	Err error
}

// ImportMsg carries lines ingested from the import drop-folder.
type ImportMsg struct {
	Lines []importer.Line
}

// UpdateCheckMsg carries the result of a background update check.
type UpdateCheckMsg struct {
	Result *update.Result
	Err    error
}

// UpdateApplyMsg carries the result of an update apply.
type UpdateApplyMsg struct {
	Result *update.Result
	Err    error
}

// Model is the Bubble Tea model for the shopping list TUI.
type Model struct {
	options Options
	state   list.State

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	suggestions []string
	sugVisible  bool
	sugIndex    int    // -1 means nothing selected
	sugGen      int    // generation counter; stale results are dropped
	searching   bool
	dismissed   string // input text at which Esc hid the dropdown

	flash    string
	flashErr bool

	overlay string // help / export preview; any key closes it

	visible []string // item IDs in display order, for /commands by number

	mdRenderer *glamour.TermRenderer
	width      int
	height     int
	ready      bool
	quitting   bool
}

// New creates a new TUI model.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Type to search foods, or /help"
	ti.Focus()
	ti.CharLimit = 128
	ti.Prompt = inputPromptStyle.Render("> ")
	// The search box text survives restarts.
	ti.SetValue(opts.State.SearchInput)

	vp := viewport.New(80, 20)

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = suggestionSelectedStyle

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return Model{
		options:    opts,
		state:      opts.State,
		input:      ti,
		viewport:   vp,
		spinner:    sp,
		sugIndex:   -1,
		mdRenderer: renderer,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Any key closes an open overlay.
		if m.overlay != "" {
			m.overlay = ""
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEsc:
			if m.sugVisible {
				m.sugVisible = false
				m.sugIndex = -1
				// Trimmed, to match what the debounce guard compares against.
				m.dismissed = strings.TrimSpace(m.input.Value())
				m.layout()
			}
			return m, nil

		case tea.KeyUp:
			if m.sugVisible {
				if m.sugIndex > 0 {
					m.sugIndex--
				} else {
					m.sugIndex = len(m.suggestions) - 1
				}
				return m, nil
			}

		case tea.KeyDown:
			if m.sugVisible {
				if m.sugIndex < len(m.suggestions)-1 {
					m.sugIndex++
				} else {
					m.sugIndex = 0
				}
				return m, nil
			}

		case tea.KeyEnter:
			return m.handleSubmit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

		if !m.ready {
			m.ready = true
			m.updateViewport()
			// Background update check (only for release builds)
			if v := m.options.Version; v != "" && v != "dev" {
				return m, tea.Batch(m.checkForUpdate(), m.spinner.Tick)
			}
		}
		m.updateViewport()

	case DebounceElapsedMsg:
		if msg.Gen != m.sugGen || m.options.Food == nil {
			return m, nil
		}
		query := strings.TrimSpace(m.input.Value())
		if query == m.dismissed && m.dismissed != "" {
			return m, nil
		}
		if utf8.RuneCountInString(query) < foodapi.MinQueryLength {
			return m, nil
		}
		m.searching = true
		return m, tea.Batch(m.searchCmd(msg.Gen, query), m.spinner.Tick)

	case SuggestionsMsg:
		if msg.Gen != m.sugGen {
			return m, nil
		}
		m.searching = false
		m.suggestions = m.mergeSuggestions(msg.Query, msg.Names)
		m.sugVisible = len(m.suggestions) > 0
		m.sugIndex = -1
		m.layout()
		return m, nil

	case SuggestErrMsg:
		if msg.Gen != m.sugGen {
			return m, nil
		}
		m.searching = false
		m.options.Logger.Debug("suggestion search failed", zap.Error(msg.Err))
		m.setFlash(fmt.Sprintf("search unavailable: %v", msg.Err), true)
		return m, nil

	case ImportMsg:
		added := 0
		for _, line := range msg.Lines {
			if m.applyAction(list.AddItem{Label: line.Label, Quantity: line.Quantity}) {
				added++
			}
		}
		m.setFlash(fmt.Sprintf("Imported %d items from the drop-folder.", added), false)
		return m, nil

	case UpdateCheckMsg:
		if msg.Err == nil && msg.Result != nil && msg.Result.UpdateAvailable {
			m.setFlash(fmt.Sprintf("Update available: v%s → v%s. Run /update to upgrade.",
				msg.Result.CurrentVersion, msg.Result.LatestVersion), false)
		}
		return m, nil

	case UpdateApplyMsg:
		switch {
		case msg.Err != nil:
			m.setFlash(fmt.Sprintf("Update failed: %v", msg.Err), true)
		case msg.Result.Applied:
			m.setFlash(fmt.Sprintf("Updated to v%s. Restart cartling to use the new version.",
				msg.Result.LatestVersion), false)
		default:
			m.setFlash("Already running the latest version.", false)
		}
		return m, nil
	}

	// Update spinner while a search is in flight
	if m.searching {
		var spCmd tea.Cmd
		m.spinner, spCmd = m.spinner.Update(msg)
		cmds = append(cmds, spCmd)
	}

	// Update the search input, watching for text changes
	before := m.input.Value()
	var tiCmd tea.Cmd
	m.input, tiCmd = m.input.Update(msg)
	cmds = append(cmds, tiCmd)
	if m.input.Value() != before {
		cmds = append(cmds, m.onInputChanged())
	}

	// Update viewport
	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	cmds = append(cmds, vpCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.quitting {
		return "Happy shopping!\n"
	}
	if !m.ready {
		return "Initializing..."
	}

	if m.overlay != "" {
		footer := flashStyle.Render("press any key to go back")
		return fmt.Sprintf("%s\n%s", m.overlay, footer)
	}

	status := StatusBar(len(m.state.Items), m.state.CheckedCount(), m.width)
	separator := lipgloss.NewStyle().
		Foreground(secondaryColor).
		Width(m.width).
		Render(strings.Repeat("─", m.width))

	flash := ""
	if m.flash != "" {
		if m.flashErr {
			flash = flashErrStyle.Render(m.flash)
		} else {
			flash = flashStyle.Render(m.flash)
		}
	}

	parts := []string{
		status,
		m.viewport.View(),
		flash,
		separator,
		m.input.View(),
	}
	if m.searching {
		parts = append(parts, m.spinner.View()+" searching...")
	} else if m.sugVisible {
		parts = append(parts, m.renderSuggestions())
	}

	return strings.Join(parts, "\n")
}

// handleSubmit adds the selected suggestion (or the raw input) to the list,
// or dispatches a slash command.
func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())

	if cmd := ParseCommand(input); cmd != nil {
		return m.handleCommand(cmd)
	}

	label := input
	if m.sugVisible && m.sugIndex >= 0 && m.sugIndex < len(m.suggestions) {
		label = m.suggestions[m.sugIndex]
	}
	if label == "" {
		return m, nil
	}

	if m.applyAction(list.AddItem{Label: label, Quantity: 1}) {
		m.setFlash(fmt.Sprintf("Added %s.", label), false)
	}
	m.resetInput()
	return m, nil
}

// onInputChanged persists the new search text and schedules a debounced
// search for it.
func (m *Model) onInputChanged() tea.Cmd {
	text := m.input.Value()
	m.applyAction(list.SetSearchInput{Text: text})

	m.sugVisible = false
	m.suggestions = nil
	m.sugIndex = -1
	m.searching = false
	trimmed := strings.TrimSpace(text)
	if m.dismissed != "" && m.dismissed != trimmed {
		m.dismissed = ""
	}
	m.layout()

	if strings.HasPrefix(trimmed, "/") ||
		utf8.RuneCountInString(trimmed) < foodapi.MinQueryLength {
		return nil
	}

	m.sugGen++
	gen := m.sugGen
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return DebounceElapsedMsg{Gen: gen}
	})
}

func (m *Model) searchCmd(gen int, query string) tea.Cmd {
	client := m.options.Food
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()
		names, err := client.Search(ctx, query)
		if err != nil {
			return SuggestErrMsg{Gen: gen, Err: err}
		}
		return SuggestionsMsg{Gen: gen, Query: query, Names: names}
	}
}

// mergeSuggestions puts matching staples ahead of API results, deduplicated
// case-insensitively and capped.
func (m *Model) mergeSuggestions(query string, names []string) []string {
	var merged []string
	seen := make(map[string]bool)

	add := func(name string) {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" || seen[key] || len(merged) >= maxSuggestions {
			return
		}
		seen[key] = true
		merged = append(merged, name)
	}

	if m.options.Staples != nil {
		for _, s := range m.options.Staples.Matching(query) {
			add(s)
		}
	}
	for _, n := range names {
		add(n)
	}
	return merged
}

// applyAction runs an action through the reducer and writes the new state
// through to the store. Returns false (and flashes) when the action or the
// save fails.
func (m *Model) applyAction(a list.Action) bool {
	next, err := list.Apply(m.state, a)
	if err != nil {
		m.setFlash(err.Error(), true)
		return false
	}
	m.state = next

	if m.options.Store != nil {
		if err := m.options.Store.Save(m.state); err != nil {
			m.options.Logger.Error("write-through save failed", zap.Error(err))
			m.setFlash(fmt.Sprintf("save failed: %v", err), true)
		}
	}

	m.updateViewport()
	return true
}

func (m *Model) resetInput() {
	m.input.SetValue("")
	m.applyAction(list.SetSearchInput{Text: ""})
	m.suggestions = nil
	m.sugVisible = false
	m.sugIndex = -1
	m.searching = false
	m.dismissed = ""
	m.sugGen++ // invalidate any in-flight search
	m.layout()
}

func (m *Model) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashErr = isErr
}

// layout recomputes the viewport height around the fixed chrome: status bar,
// flash line, separator, input, and the dropdown when open.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	chrome := 4
	if m.sugVisible {
		chrome += len(m.suggestions)
	} else if m.searching {
		chrome++
	}
	viewH := m.height - chrome
	if viewH < 1 {
		viewH = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = viewH
	m.input.Width = m.width - 4
}

// updateViewport re-renders the grouped item list and rebuilds the visible
// numbering used by slash commands.
func (m *Model) updateViewport() {
	m.visible = m.visible[:0]

	groups := make(map[string][]list.Item)
	var uncategorized []list.Item
	for _, it := range m.state.Items {
		if !m.state.ShowChecked && it.Checked {
			continue
		}
		if len(it.Categories) == 0 {
			uncategorized = append(uncategorized, it)
			continue
		}
		groups[it.Categories[0]] = append(groups[it.Categories[0]], it)
	}

	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var lines []string
	n := 0
	renderGroup := func(header string, items []list.Item) {
		if header != "" {
			lines = append(lines, categoryStyle.Render(header))
		}
		for _, it := range items {
			n++
			m.visible = append(m.visible, it.ID)
			lines = append(lines, m.renderItem(n, it))
		}
		lines = append(lines, "")
	}

	for _, c := range categories {
		renderGroup(c, groups[c])
	}
	if len(uncategorized) > 0 {
		header := ""
		if len(categories) > 0 {
			header = "other"
		}
		renderGroup(header, uncategorized)
	}

	if len(lines) == 0 {
		lines = append(lines,
			"",
			flashStyle.Render("  The list is empty. Type a food name to get started."),
		)
	}

	hidden := 0
	if !m.state.ShowChecked {
		hidden = m.state.CheckedCount()
	}
	if hidden > 0 {
		lines = append(lines, flashStyle.Render(fmt.Sprintf("  (%d checked items hidden — /show)", hidden)))
	}

	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func (m *Model) renderItem(n int, it list.Item) string {
	box := "[ ]"
	if it.Checked {
		box = "[x]"
	}

	label := it.Label
	if it.Quantity > 1 {
		label = fmt.Sprintf("%d × %s", it.Quantity, it.Label)
	}

	line := fmt.Sprintf("%s %s %s", numberStyle.Render(fmt.Sprintf("%3d.", n)), box, label)
	if it.Checked {
		line = fmt.Sprintf("%s %s", numberStyle.Render(fmt.Sprintf("%3d.", n)),
			checkedStyle.Render(box+" "+label))
	}
	if it.Note != "" {
		line += " " + noteStyle.Render("("+it.Note+")")
	}
	return line
}

func (m *Model) renderSuggestions() string {
	var lines []string
	for i, s := range m.suggestions {
		if i == m.sugIndex {
			lines = append(lines, suggestionSelectedStyle.Render("  ▸ "+s))
		} else {
			lines = append(lines, suggestionStyle.Render("    "+s))
		}
	}
	return strings.Join(lines, "\n")
}

// itemByNumber resolves a displayed item number to the item itself.
func (m *Model) itemByNumber(n int) (list.Item, bool) {
	if n < 1 || n > len(m.visible) {
		return list.Item{}, false
	}
	i, ok := m.state.Find(m.visible[n-1])
	if !ok {
		return list.Item{}, false
	}
	return m.state.Items[i], true
}

func (m *Model) checkForUpdate() tea.Cmd {
	version := m.options.Version
	return func() tea.Msg {
		res, err := update.Check(context.Background(), version)
		return UpdateCheckMsg{Result: res, Err: err}
	}
}

func (m *Model) renderMarkdown(content string) string {
	if m.mdRenderer == nil {
		return content
	}
	rendered, err := m.mdRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}
