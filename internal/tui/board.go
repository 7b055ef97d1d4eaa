// Package tui is the interactive dispatch board. It follows The Elm
// Architecture via bubbletea: one model, messages in, a rendered string out.
// All data flows through the same services the CLI commands use; the board
// adds a polling refresh and debounced directory lookups on top.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/example/plumbops/internal/core/timeentry"
	"github.com/example/plumbops/internal/core/workorder"
	"github.com/example/plumbops/internal/ports/primary"
	"github.com/example/plumbops/internal/search"
)

// boardRefreshInterval is how often the list is re-fetched while idle.
const boardRefreshInterval = 5 * time.Second

type boardState int

const (
	stateList   boardState = iota // work-order list with cursor
	stateDetail                   // one work order plus its time entries
	stateLookup                   // debounced customer/technician search
)

type ordersMsg struct {
	orders []*primary.WorkOrder
	err    error
}

type detailMsg struct {
	order   *primary.WorkOrder
	entries []*primary.TimeEntry
	err     error
}

type actionDoneMsg struct {
	action workorder.Action
	order  *primary.WorkOrder
	err    error
}

type suggestionsMsg search.Result[primary.Suggestion]

type refreshTickMsg time.Time

// actionKeys maps detail-view hotkeys to lifecycle actions. Only keys whose
// action is currently permitted are honored or shown.
var actionKeys = []struct {
	key    string
	action workorder.Action
}{
	{"d", workorder.ActionDispatch},
	{"r", workorder.ActionStartRoute},
	{"a", workorder.ActionArrive},
	{"s", workorder.ActionStartService},
	{"p", workorder.ActionPauseService},
	{"u", workorder.ActionResumeService},
	{"f", workorder.ActionFinishService},
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
)

// Board is the top-level bubbletea model.
type Board struct {
	workOrders primary.WorkOrderService
	directory  primary.DirectoryService

	state  boardState
	width  int
	height int

	orders []*primary.WorkOrder
	cursor int

	detail  *primary.WorkOrder
	entries []*primary.TimeEntry

	// Lookup state. A fresh debouncer is built each time a lookup opens,
	// with the target directory bound into its lookup function, so the
	// lookup goroutine never reads board fields. Results are handed to
	// the update loop through the results channel.
	input       textinput.Model
	lookupNoun  string
	quiet       time.Duration
	debouncer   *search.Debouncer[primary.Suggestion]
	results     chan search.Result[primary.Suggestion]
	suggestions []primary.Suggestion

	statusMsg string
	errMsg    string
}

// NewBoard builds the dispatch board. quiet is the debounce period for the
// directory lookups; pass zero to use the default.
func NewBoard(workOrders primary.WorkOrderService, directory primary.DirectoryService, quiet time.Duration) *Board {
	input := textinput.New()
	input.Placeholder = "type to search"
	input.CharLimit = 80

	return &Board{
		workOrders: workOrders,
		directory:  directory,
		input:      input,
		quiet:      quiet,
		results:    make(chan search.Result[primary.Suggestion], 8),
	}
}

func (b *Board) Init() tea.Cmd {
	return tea.Batch(b.fetchOrders(), b.scheduleRefresh())
}

// fetchOrders re-fetches the list from the server. The board is a shared
// view: reads go through the refresh path so changes made by other clients
// show up rather than being served from a stale cache.
func (b *Board) fetchOrders() tea.Cmd {
	return func() tea.Msg {
		orders, err := b.workOrders.RefreshWorkOrders(context.Background())
		return ordersMsg{orders: orders, err: err}
	}
}

func (b *Board) fetchDetail(id string) tea.Cmd {
	return func() tea.Msg {
		order, err := b.workOrders.RefreshWorkOrder(context.Background(), id)
		if err != nil {
			return detailMsg{err: err}
		}
		entries, err := b.workOrders.GetTimeEntries(context.Background(), id)
		return detailMsg{order: order, entries: entries, err: err}
	}
}

// runAction dispatches a lifecycle action. The context is deliberately not
// tied to the view: once issued the mutation runs to completion.
func (b *Board) runAction(id string, action workorder.Action) tea.Cmd {
	return func() tea.Msg {
		order, err := b.workOrders.Dispatch(context.Background(), id, action, primary.ActionPayload{})
		return actionDoneMsg{action: action, order: order, err: err}
	}
}

func (b *Board) scheduleRefresh() tea.Cmd {
	return tea.Tick(boardRefreshInterval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// awaitSuggestions forwards the next debouncer result into the update loop.
func (b *Board) awaitSuggestions() tea.Cmd {
	return func() tea.Msg {
		return suggestionsMsg(<-b.results)
	}
}

func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil

	case ordersMsg:
		if msg.err != nil {
			b.errMsg = msg.err.Error()
		} else {
			b.errMsg = ""
			b.orders = msg.orders
			if b.cursor >= len(b.orders) {
				b.cursor = max(0, len(b.orders)-1)
			}
		}
		return b, nil

	case refreshTickMsg:
		// One tick chain, armed in Init. Each tick re-arms itself and
		// refreshes whichever view is showing.
		cmds := []tea.Cmd{b.scheduleRefresh()}
		switch {
		case b.state == stateList:
			cmds = append(cmds, b.fetchOrders())
		case b.state == stateDetail && b.detail != nil:
			cmds = append(cmds, b.fetchDetail(b.detail.ID))
		}
		return b, tea.Batch(cmds...)

	case detailMsg:
		if msg.err != nil {
			b.errMsg = msg.err.Error()
			return b, nil
		}
		b.errMsg = ""
		b.detail = msg.order
		b.entries = msg.entries
		b.state = stateDetail
		return b, nil

	case actionDoneMsg:
		if msg.err != nil {
			b.errMsg = msg.err.Error()
			return b, nil
		}
		b.errMsg = ""
		b.detail = msg.order
		b.statusMsg = fmt.Sprintf("%s is now %s", msg.order.Code, msg.order.Status)
		return b, tea.Batch(b.fetchOrders(), b.fetchDetail(msg.order.ID))

	case suggestionsMsg:
		// Stale guard: the debouncer already discards superseded lookups,
		// but the channel may still hold a result for earlier text.
		if msg.Query == strings.TrimSpace(b.input.Value()) {
			if msg.Err != nil {
				b.errMsg = msg.Err.Error()
			} else {
				b.errMsg = ""
				b.suggestions = msg.Items
			}
		}
		if b.state == stateLookup {
			return b, b.awaitSuggestions()
		}
		return b, nil

	case tea.KeyMsg:
		return b.handleKey(msg)
	}

	return b, nil
}

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if b.state == stateLookup {
		switch msg.String() {
		case "ctrl+c":
			return b, tea.Quit
		case "esc":
			b.closeLookup()
			return b, nil
		default:
			var cmd tea.Cmd
			b.input, cmd = b.input.Update(msg)
			b.debouncer.Query(strings.TrimSpace(b.input.Value()))
			return b, cmd
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return b, tea.Quit

	case "esc":
		if b.state == stateDetail {
			b.state = stateList
			b.statusMsg = ""
			return b, b.fetchOrders()
		}

	case "R":
		b.statusMsg = "refreshing"
		if b.state == stateDetail && b.detail != nil {
			return b, b.fetchDetail(b.detail.ID)
		}
		return b, b.fetchOrders()

	case "up", "k":
		if b.state == stateList && b.cursor > 0 {
			b.cursor--
		}

	case "down", "j":
		if b.state == stateList && b.cursor < len(b.orders)-1 {
			b.cursor++
		}

	case "enter":
		if b.state == stateList && len(b.orders) > 0 {
			return b, b.fetchDetail(b.orders[b.cursor].ID)
		}

	case "/":
		return b.openLookup("customers")

	case "t":
		if b.state == stateList {
			return b.openLookup("technicians")
		}

	default:
		if b.state == stateDetail && b.detail != nil {
			for _, ak := range actionKeys {
				if msg.String() == ak.key && workorder.CanApply(b.detail.Status, ak.action) {
					b.statusMsg = fmt.Sprintf("running %s", ak.action)
					return b, b.runAction(b.detail.ID, ak.action)
				}
			}
		}
	}

	return b, nil
}

func (b *Board) openLookup(noun string) (tea.Model, tea.Cmd) {
	if b.debouncer != nil {
		b.debouncer.Close()
	}
	// Bind the directory now. The lookup runs on the debouncer goroutine,
	// so it must not read b.lookupNoun, which the update loop mutates.
	lookup := b.directory.SearchCustomers
	if noun == "technicians" {
		lookup = b.directory.SearchTechnicians
	}
	b.debouncer = search.NewDebouncer(b.quiet, lookup,
		func(res search.Result[primary.Suggestion]) {
			b.results <- res
		})

	b.state = stateLookup
	b.lookupNoun = noun
	b.suggestions = nil
	b.input.SetValue("")
	b.input.Focus()
	return b, tea.Batch(textinput.Blink, b.awaitSuggestions())
}

func (b *Board) closeLookup() {
	b.state = stateList
	b.input.Blur()
	if b.debouncer != nil {
		b.debouncer.Close()
		b.debouncer = nil
	}
	b.suggestions = nil
}

func (b *Board) View() string {
	var body string
	switch b.state {
	case stateDetail:
		body = b.viewDetail()
	case stateLookup:
		body = b.viewLookup()
	default:
		body = b.viewList()
	}

	var footer []string
	if b.errMsg != "" {
		footer = append(footer, errorStyle.Render(b.errMsg))
	}
	if b.statusMsg != "" {
		footer = append(footer, statusStyle.Render(b.statusMsg))
	}
	footer = append(footer, dimStyle.Render(b.helpLine()))

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("PlumbOps Dispatch Board"),
		body,
		strings.Join(footer, "\n"),
	)
}

func (b *Board) helpLine() string {
	switch b.state {
	case stateDetail:
		keys := make([]string, 0, len(actionKeys))
		for _, ak := range actionKeys {
			if b.detail != nil && workorder.CanApply(b.detail.Status, ak.action) {
				keys = append(keys, fmt.Sprintf("%s %s", ak.key, ak.action))
			}
		}
		keys = append(keys, "R refresh", "esc back", "q quit")
		return strings.Join(keys, " · ")
	case stateLookup:
		return "type to search · esc back"
	default:
		return "↑/↓ move · enter open · / customers · t technicians · R refresh · q quit"
	}
}

func (b *Board) viewList() string {
	if len(b.orders) == 0 {
		return dimStyle.Render("\n  No work orders.\n")
	}

	var sb strings.Builder
	sb.WriteString("\n")
	for i, wo := range b.orders {
		line := fmt.Sprintf("%-10s %-11s %s", wo.Code, wo.Status, wo.Title)
		if i == b.cursor {
			sb.WriteString(selectedStyle.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (b *Board) viewDetail() string {
	if b.detail == nil {
		return dimStyle.Render("\n  Loading...\n")
	}

	wo := b.detail
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s  %s\n", selectedStyle.Render(wo.Code), wo.Title)
	fmt.Fprintf(&sb, "Status:    %s\n", wo.Status)
	fmt.Fprintf(&sb, "Customer:  %s\n", wo.CustomerID)
	if wo.TechnicianID != "" {
		fmt.Fprintf(&sb, "Tech:      %s\n", wo.TechnicianID)
	}
	if wo.Address != "" {
		fmt.Fprintf(&sb, "Address:   %s\n", wo.Address)
	}
	if wo.ScheduledAt != nil {
		fmt.Fprintf(&sb, "Scheduled: %s\n", wo.ScheduledAt.Local().Format("2006-01-02 15:04"))
	}

	if len(b.entries) > 0 {
		sb.WriteString("\nTime entries:\n")
		now := time.Now()
		core := make([]timeentry.Entry, 0, len(b.entries))
		for _, e := range b.entries {
			core = append(core, timeentry.Entry{StartAt: e.StartAt, EndAt: e.EndAt})
			end := "open"
			if e.EndAt != nil {
				end = e.EndAt.Local().Format("15:04")
			}
			fmt.Fprintf(&sb, "  %s  %s - %s\n", e.TechnicianID, e.StartAt.Local().Format("15:04"), end)
		}
		fmt.Fprintf(&sb, "Total booked: %s\n", timeentry.TotalBooked(core, now).Round(time.Minute))
	}
	return sb.String()
}

func (b *Board) viewLookup() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nSearch %s: %s\n\n", b.lookupNoun, b.input.View())
	if len(b.suggestions) == 0 {
		sb.WriteString(dimStyle.Render("  no matches yet\n"))
		return sb.String()
	}
	for _, s := range b.suggestions {
		fmt.Fprintf(&sb, "  %-28s %s\n", s.Label, dimStyle.Render(s.Subtitle))
	}
	return sb.String()
}
