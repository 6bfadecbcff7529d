package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/execview/internal/cli/formatter"
	"github.com/alexanderramin/execview/internal/domain"
	"github.com/alexanderramin/execview/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── tabs ─────────────────────────────────────────────────────────────────────

type dashboardTab int

const (
	tabSummary dashboardTab = iota
	tabFinancial
	tabSales
	tabOperations
	tabCustomer
	tabEmployee
	tabNotifications
	tabCount
)

var tabSections = [...]service.Section{
	tabSummary:       service.SectionSummary,
	tabFinancial:     service.SectionFinancial,
	tabSales:         service.SectionSales,
	tabOperations:    service.SectionOperations,
	tabCustomer:      service.SectionCustomer,
	tabEmployee:      service.SectionEmployee,
	tabNotifications: service.SectionNotifications,
}

func (t dashboardTab) title() string {
	s := string(tabSections[t])
	return strings.ToUpper(s[:1]) + s[1:]
}

// ── keys ─────────────────────────────────────────────────────────────────────

type dashboardKeys struct {
	Next    key.Binding
	Prev    key.Binding
	Period  key.Binding
	Refresh key.Binding
	Read    key.Binding
	Quit    key.Binding
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		Next:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev")),
		Period:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "period")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Read:    key.NewBinding(key.WithKeys("enter", "m"), key.WithHelp("enter", "mark read")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k dashboardKeys) help(tab dashboardTab) string {
	bindings := []key.Binding{k.Next, k.Prev, k.Period, k.Refresh}
	if tab == tabNotifications {
		bindings = append(bindings, k.Read)
	}
	bindings = append(bindings, k.Quit)

	parts := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		parts[i] = formatter.Bold(h.Key) + " " + formatter.Dim(h.Desc)
	}
	return strings.Join(parts, formatter.Dim(" • "))
}

// ── messages ─────────────────────────────────────────────────────────────────

type snapshotLoadedMsg struct {
	snap *domain.Snapshot
	err  error
}

type notificationReadMsg struct {
	id  string
	ok  bool
	err error
}

// ── model ────────────────────────────────────────────────────────────────────

// dashboardModel is the interactive dashboard: one tab per domain plus the
// summary and the notification feed.
type dashboardModel struct {
	app    *App
	ctx    context.Context
	keys   dashboardKeys
	period domain.Granularity
	tab    dashboardTab

	loading bool
	snap    *domain.Snapshot
	err     error
	status  string

	spinner spinner.Model
	notifs  table.Model
}

func newDashboardModel(ctx context.Context, app *App, period domain.Granularity) *dashboardModel {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(formatter.StylePurple),
	)
	notifs := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 9},
			{Title: "Type", Width: 8},
			{Title: "Category", Width: 11},
			{Title: "Title", Width: 34},
			{Title: "State", Width: 5},
			{Title: "When", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	return &dashboardModel{
		app:     app,
		ctx:     ctx,
		keys:    newDashboardKeys(),
		period:  period,
		loading: true,
		spinner: sp,
		notifs:  notifs,
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m *dashboardModel) load() tea.Cmd {
	app, ctx, g := m.app, m.ctx, m.period
	return func() tea.Msg {
		if _, err := app.Dashboard.EnsureInitialized(ctx); err != nil {
			return snapshotLoadedMsg{err: err}
		}
		snap, err := app.Dashboard.GetDataset(ctx, g)
		return snapshotLoadedMsg{snap: snap, err: err}
	}
}

func (m *dashboardModel) markRead(id string) tea.Cmd {
	app, ctx := m.app, m.ctx
	return func() tea.Msg {
		ok, err := app.Dashboard.MarkNotificationRead(ctx, id)
		return notificationReadMsg{id: id, ok: ok, err: err}
	}
}

// nextPeriod cycles through the cadences from finest to coarsest.
func nextPeriod(g domain.Granularity) domain.Granularity {
	for i, p := range domain.AllGranularities {
		if p == g {
			return domain.AllGranularities[(i+1)%len(domain.AllGranularities)]
		}
	}
	return domain.Monthly
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.snap = msg.snap
			m.refreshNotifications()
		}
		return m, nil

	case notificationReadMsg:
		switch {
		case msg.err != nil:
			m.status = formatter.StyleRed.Render(service.UserMessage(msg.err))
		case !msg.ok:
			m.status = formatter.StyleYellow.Render(fmt.Sprintf("Notification %s no longer exists.", msg.id))
		default:
			m.status = formatter.StyleGreen.Render(fmt.Sprintf("Marked %s as read.", msg.id))
			m.markLocal(msg.id)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.tab = (m.tab + 1) % tabCount
		m.status = ""
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.status = ""
		return m, nil
	case key.Matches(msg, m.keys.Period):
		m.period = nextPeriod(m.period)
		return m, m.reload()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.reload()
	}

	if m.tab != tabNotifications || m.loading {
		return m, nil
	}
	if key.Matches(msg, m.keys.Read) {
		row := m.notifs.SelectedRow()
		if row == nil {
			return m, nil
		}
		m.status = formatter.Dim("Updating " + row[0] + "...")
		return m, m.markRead(row[0])
	}
	var cmd tea.Cmd
	m.notifs, cmd = m.notifs.Update(msg)
	return m, cmd
}

func (m *dashboardModel) reload() tea.Cmd {
	m.loading = true
	m.status = ""
	return tea.Batch(m.spinner.Tick, m.load())
}

// markLocal flips the read flag on the displayed copy after a successful
// update.
func (m *dashboardModel) markLocal(id string) {
	if m.snap == nil {
		return
	}
	for i := range m.snap.Notifications {
		if m.snap.Notifications[i].ID == id {
			m.snap.Notifications[i].Read = true
		}
	}
	m.refreshNotifications()
}

func (m *dashboardModel) refreshNotifications() {
	now := m.app.now()
	rows := make([]table.Row, 0, len(m.snap.Notifications))
	for _, n := range m.snap.Notifications {
		state := "new"
		if n.Read {
			state = "read"
		}
		rows = append(rows, table.Row{n.ID, string(n.Type), string(n.Category), n.Title, state, formatter.Ago(n.Timestamp, now)})
	}
	m.notifs.SetRows(rows)
}

// ── view ─────────────────────────────────────────────────────────────────────

var (
	tabActive   = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true).Underline(true)
	tabInactive = lipgloss.NewStyle().Foreground(formatter.ColorDim)
)

func (m *dashboardModel) View() string {
	var b strings.Builder

	tabs := make([]string, tabCount)
	for t := dashboardTab(0); t < tabCount; t++ {
		style := tabInactive
		if t == m.tab {
			style = tabActive
		}
		tabs[t] = style.Render(t.title())
	}
	b.WriteString(formatter.Bold("ExecView") + formatter.Dim(" · "+string(m.period)) + "\n")
	b.WriteString(strings.Join(tabs, "  ") + "\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading...\n")
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render(service.UserMessage(m.err)) + "\n")
	default:
		b.WriteString(m.content())
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n" + m.keys.help(m.tab) + "\n")
	return b.String()
}

func (m *dashboardModel) content() string {
	switch m.tab {
	case tabSummary:
		return formatter.FormatSummary(domain.BuildSummary(m.snap))
	case tabNotifications:
		return fmt.Sprintf("%d unread\n\n%s\n", domain.CountUnread(m.snap.Notifications), m.notifs.View())
	default:
		detail, only := domainView(m.snap, tabSections[m.tab])
		return formatter.FormatKPIs(domain.BuildSummary(only).KPIs) + "\n" + detail
	}
}
