// Package tui provides the interactive terminal UI for browsing the catalog.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jhaapala/libris/internal/catalog"
	"github.com/jhaapala/libris/internal/history"
	"github.com/jhaapala/libris/internal/query"
)

const (
	defaultCardWidth    = 68
	defaultCardsPerPage = 4
	// Three content lines, two border lines, one line of spacing.
	cardHeight = 6
	// Header, input, filter line, pager, status and help.
	chromeHeight = 8
)

var recordSearch = history.Record

// ReloadMsg replaces the catalog in a running browser. A non-nil Err
// keeps the old catalog and reports the failure in the status line.
type ReloadMsg struct {
	Catalog *catalog.Catalog
	Err     error
}

type searchTickMsg struct {
	seq uint64
}

type keyMap struct {
	Run       key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	Language  key.Binding
	Sort      key.Binding
	Direction key.Binding
	Older     key.Binding
	Newer     key.Binding
	Clear     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Run: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search now"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "next page"),
		),
		Language: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "language"),
		),
		Sort: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "sort"),
		),
		Direction: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "direction"),
		),
		Older: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "older search"),
		),
		Newer: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "newer search"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear/quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	filterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("110"))

	recentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true)

	pagerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

var (
	sortFields = []query.SortField{query.SortNone, query.SortTitle, query.SortAuthor, query.SortLanguage}
	sortLabels = []string{"none", "title", "author", "language"}
)

// BrowseModel is the bubbletea model for interactive catalog browsing.
type BrowseModel struct {
	input textinput.Model
	keys  keyMap

	catalog *catalog.Catalog
	state   query.State
	window  time.Duration

	results    []catalog.Book
	pageBooks  []catalog.Book
	page       int
	totalPages int
	perPage    int

	languages []string
	langIndex int

	sortIndex int
	sortAsc   bool

	recent      []string
	recallIndex int

	width  int
	height int
	status string

	searchSeq uint64
}

// NewBrowseModel builds a browser over the given catalog. recent holds
// previously recorded searches, newest first.
func NewBrowseModel(c *catalog.Catalog, recent []string, window time.Duration) *BrowseModel {
	input := textinput.New()
	input.Placeholder = "Search title, author or tags"
	input.CharLimit = 128
	input.Width = 48
	input.Focus()

	m := &BrowseModel{
		input:       input,
		keys:        defaultKeyMap(),
		catalog:     c,
		state:       query.State{SortAsc: true},
		window:      window,
		perPage:     defaultCardsPerPage,
		languages:   c.UniqueValues(catalog.FieldLanguage),
		sortAsc:     true,
		recent:      recent,
		recallIndex: -1,
	}
	m.runQuery()

	return m
}

func (m *BrowseModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Clear):
			if m.input.Value() == "" {
				return m, tea.Quit
			}
			m.input.Reset()
			m.recallIndex = -1
			m.runQuery()
			return m, nil

		case key.Matches(msg, m.keys.Run):
			m.runQuery()
			if q := strings.TrimSpace(m.input.Value()); q != "" {
				recordSearch(q)
				m.rememberQuery(q)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevPage):
			m.setPage(m.page - 1)
			return m, nil

		case key.Matches(msg, m.keys.NextPage):
			m.setPage(m.page + 1)
			return m, nil

		case key.Matches(msg, m.keys.Language):
			m.cycleLanguage()
			return m, nil

		case key.Matches(msg, m.keys.Sort):
			m.cycleSort()
			return m, nil

		case key.Matches(msg, m.keys.Direction):
			m.toggleDirection()
			return m, nil

		case key.Matches(msg, m.keys.Older):
			m.recallOlder()
			return m, m.scheduleSearch()

		case key.Matches(msg, m.keys.Newer):
			m.recallNewer()
			return m, m.scheduleSearch()
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.recallIndex = -1
			return m, tea.Batch(cmd, m.scheduleSearch())
		}
		return m, cmd

	case searchTickMsg:
		// Only the tick scheduled by the latest edit may run the search.
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.runQuery()
		return m, nil

	case ReloadMsg:
		m.applyReload(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = clamp(48, msg.Width-8, 20)
		m.perPage = clamp(defaultCardsPerPage, (msg.Height-chromeHeight)/cardHeight, 1)
		m.repaginate()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *BrowseModel) View() string {
	header := headerStyle.Render(fmt.Sprintf("libris | %d books", m.catalog.Len()))

	sections := []string{header, m.input.View()}

	if m.input.Value() == "" && len(m.recent) > 0 {
		sections = append(sections, recentStyle.Render("Recent: "+strings.Join(m.recent, ", ")))
	}

	sections = append(sections, filterStyle.Render(m.filterLine()))

	if len(m.pageBooks) == 0 {
		sections = append(sections, bookCardStyles.metadata.Render("No books match the current search"))
	} else {
		for _, book := range m.pageBooks {
			sections = append(sections, RenderCard(book, m.contentWidth()))
		}
	}

	sections = append(sections, pagerStyle.Render(m.pagerLine()))

	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}

	sections = append(sections, helpStyle.Render(m.helpLine()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *BrowseModel) scheduleSearch() tea.Cmd {
	m.searchSeq++
	seq := m.searchSeq
	return tea.Tick(m.window, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}

func (m *BrowseModel) runQuery() {
	st := m.state
	st.Search = m.input.Value()
	m.results = query.Run(m.catalog, st)
	m.page = 0
	m.repaginate()
}

func (m *BrowseModel) repaginate() {
	m.pageBooks, m.totalPages = query.Paginate(m.results, m.perPage, m.page)
	if m.page >= m.totalPages {
		m.page = m.totalPages - 1
		m.pageBooks, m.totalPages = query.Paginate(m.results, m.perPage, m.page)
	}
}

func (m *BrowseModel) setPage(page int) {
	if page < 0 {
		page = 0
	}
	if page > m.totalPages-1 {
		page = m.totalPages - 1
	}
	m.page = page
	m.pageBooks, m.totalPages = query.Paginate(m.results, m.perPage, m.page)
}

func (m *BrowseModel) cycleLanguage() {
	if len(m.languages) == 0 {
		return
	}

	m.langIndex = (m.langIndex + 1) % (len(m.languages) + 1)
	if m.langIndex == 0 {
		m.state.Languages = nil
	} else {
		m.state.Languages = []string{m.languages[m.langIndex-1]}
	}
	m.runQuery()
}

func (m *BrowseModel) cycleSort() {
	m.sortIndex = (m.sortIndex + 1) % len(sortFields)
	m.state.SortField = sortFields[m.sortIndex]
	m.runQuery()
}

func (m *BrowseModel) toggleDirection() {
	m.sortAsc = !m.sortAsc
	m.state.SortAsc = m.sortAsc
	m.runQuery()
}

func (m *BrowseModel) recallOlder() {
	if len(m.recent) == 0 {
		return
	}
	if m.recallIndex < len(m.recent)-1 {
		m.recallIndex++
	}
	m.input.SetValue(m.recent[m.recallIndex])
	m.input.CursorEnd()
}

func (m *BrowseModel) recallNewer() {
	if m.recallIndex <= 0 {
		m.recallIndex = -1
		m.input.Reset()
		return
	}
	m.recallIndex--
	m.input.SetValue(m.recent[m.recallIndex])
	m.input.CursorEnd()
}

func (m *BrowseModel) rememberQuery(q string) {
	recent := make([]string, 0, len(m.recent)+1)
	recent = append(recent, q)
	for _, prev := range m.recent {
		if prev != q {
			recent = append(recent, prev)
		}
	}
	if len(recent) > history.DefaultLimit {
		recent = recent[:history.DefaultLimit]
	}
	m.recent = recent
	m.recallIndex = -1
}

func (m *BrowseModel) applyReload(msg ReloadMsg) {
	if msg.Err != nil {
		m.status = fmt.Sprintf("Reload failed: %v", msg.Err)
		return
	}

	var selected string
	if m.langIndex > 0 && m.langIndex <= len(m.languages) {
		selected = m.languages[m.langIndex-1]
	}

	m.catalog = msg.Catalog
	m.languages = m.catalog.UniqueValues(catalog.FieldLanguage)

	// Keep the language filter only if the value still exists.
	m.langIndex = 0
	m.state.Languages = nil
	for i, lang := range m.languages {
		if lang == selected {
			m.langIndex = i + 1
			m.state.Languages = []string{lang}
			break
		}
	}

	m.status = fmt.Sprintf("Catalog reloaded, %d books", m.catalog.Len())

	page := m.page
	m.runQuery()
	m.setPage(page)
}

func (m *BrowseModel) filterLine() string {
	language := "all"
	if m.langIndex > 0 && m.langIndex <= len(m.languages) {
		language = m.languages[m.langIndex-1]
	}

	sort := sortLabels[m.sortIndex]
	if sortFields[m.sortIndex] != query.SortNone {
		direction := "asc"
		if !m.sortAsc {
			direction = "desc"
		}
		sort += " " + direction
	}

	return fmt.Sprintf("Language: %s | Sort: %s", language, sort)
}

func (m *BrowseModel) pagerLine() string {
	return fmt.Sprintf("Page %d of %d | %d books", m.page+1, m.totalPages, len(m.results))
}

func (m *BrowseModel) helpLine() string {
	bindings := []key.Binding{
		m.keys.Run,
		m.keys.PrevPage,
		m.keys.NextPage,
		m.keys.Language,
		m.keys.Sort,
		m.keys.Direction,
		m.keys.Older,
		m.keys.Clear,
	}

	parts := make([]string, 0, len(bindings)+1)
	parts = append(parts, "type to search")
	for _, b := range bindings {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return strings.Join(parts, " | ")
}

func (m *BrowseModel) contentWidth() int {
	return clamp(defaultCardWidth, m.width-6, 24)
}
