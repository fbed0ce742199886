// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/navtree/internal/app/navigator"
	"github.com/bnema/navtree/internal/app/sample"
	"github.com/bnema/navtree/internal/cli/styles"
	"github.com/bnema/navtree/internal/domain/entity"
	"github.com/bnema/navtree/internal/domain/repository"
	"github.com/bnema/navtree/internal/infrastructure/config"
	"github.com/bnema/navtree/internal/logging"
)

// ConfigReloadedMsg is sent by the demo command when the config watcher
// observes a change on disk; the model picks up the new demo options.
type ConfigReloadedMsg struct {
	Demo config.DemoConfig
}

const journalPanelSize = 8

// eventLog keeps the most recent journal events for the demo's journal
// panel. Events arrive synchronously from navigator calls made inside
// Update, so no locking is needed; the pointer survives the model's
// by-value copies.
type eventLog struct {
	entries []string
}

func (l *eventLog) record(event repository.JournalEvent) {
	line := fmt.Sprintf("%3d  %-24s %s", event.Seq, event.Op, event.DestKind)
	l.entries = append(l.entries, line)
	if len(l.entries) > journalPanelSize {
		l.entries = l.entries[len(l.entries)-journalPanelSize:]
	}
}

// DemoModel is the Bubble Tea model for the interactive navigation demo.
// Every keypress maps to one navigator operation; the view re-reads the
// observable signals, so what is rendered is exactly what a real UI host
// would see.
type DemoModel struct {
	nav   *navigator.Navigator
	theme *styles.Theme
	keys  styles.DemoKeyMap
	help  help.Model

	events *eventLog

	showKeys    bool
	showJournal bool
	showHelp    bool
	detail      int
	width       int
	height      int
}

// NewDemoModel creates the demo model and attaches the journal panel's
// event observer.
func NewDemoModel(ctx context.Context, nav *navigator.Navigator, demoCfg config.DemoConfig) DemoModel {
	log := logging.FromContext(ctx)
	log.Debug().Msg("creating demo model")

	events := &eventLog{}
	nav.OnEvent(events.record)

	return DemoModel{
		nav:         nav,
		theme:       styles.DefaultTheme(),
		keys:        styles.DefaultDemoKeyMap(),
		help:        help.New(),
		events:      events,
		showKeys:    demoCfg.ShowKeys,
		showJournal: demoCfg.ShowJournal,
	}
}

// Init implements tea.Model.
func (m DemoModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m DemoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case ConfigReloadedMsg:
		m.showKeys = msg.Demo.ShowKeys
		m.showJournal = msg.Demo.ShowJournal
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m DemoModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.NavigateDetail):
		m.detail++
		m.nav.Navigate(sample.HomeDetail(fmt.Sprintf("%d", m.detail)), "")
	case key.Matches(msg, m.keys.NavigateFlow):
		m.nav.Navigate(sample.ProductDetail("featured"), "")
	case key.Matches(msg, m.keys.DeepLink):
		m.nav.HandleDeepLink("app://products/42")
	case key.Matches(msg, m.keys.Back):
		m.nav.NavigateBack()
	case key.Matches(msg, m.keys.Tab1):
		m.switchTab(0)
	case key.Matches(msg, m.keys.Tab2):
		m.switchTab(1)
	case key.Matches(msg, m.keys.Tab3):
		m.switchTab(2)
	case key.Matches(msg, m.keys.GestureStart):
		m.nav.StartPredictiveBack()
		m.nav.UpdatePredictiveBack(0.4, 0.1, 0.5)
	case key.Matches(msg, m.keys.GestureCommit):
		m.nav.CommitPredictiveBack()
	case key.Matches(msg, m.keys.GestureCancel):
		m.nav.CancelPredictiveBack()
	}
	return m, nil
}

func (m DemoModel) switchTab(index int) {
	root := m.nav.State().Current()
	if tab := entity.FindFirstTab(root); tab != nil {
		m.nav.SwitchTab(tab.NodeKey, index)
	}
}

// View implements tea.Model.
func (m DemoModel) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("navtree demo"))
	b.WriteString("\n")

	b.WriteString(m.theme.Section.Render("Tree"))
	b.WriteString("\n")
	b.WriteString(m.theme.RenderTree(m.nav.State().Current()))

	b.WriteString(m.theme.Section.Render("Signals"))
	b.WriteString("\n")
	m.renderSignal(&b, "current", m.nav.CurrentDestination().Current().Route)
	m.renderSignal(&b, "previous", m.nav.PreviousDestination().Current().Route)
	m.renderSignal(&b, "can back", fmt.Sprintf("%t", m.nav.CanNavigateBack().Current()))

	transition := m.nav.TransitionState().Current()
	m.renderSignal(&b, "transition", transition.Phase.String())
	if transition.Phase != navigator.PhaseIdle {
		m.renderSignal(&b, "progress", fmt.Sprintf("%.2f", transition.Progress))
		if transition.DurationMS > 0 {
			m.renderSignal(&b, "duration", fmt.Sprintf("%dms", transition.DurationMS))
		}
	}

	if m.showJournal {
		b.WriteString(m.theme.Section.Render("Journal"))
		b.WriteString("\n")
		if len(m.events.entries) == 0 {
			b.WriteString(m.theme.Signal.Render("(no events yet)"))
			b.WriteString("\n")
		}
		for _, line := range m.events.entries {
			b.WriteString(m.theme.Signal.Render(line))
			b.WriteString("\n")
		}
	}

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else if m.showKeys {
		b.WriteString("\n")
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	return b.String()
}

func (m DemoModel) renderSignal(b *strings.Builder, name, value string) {
	if value == "" {
		value = "-"
	}
	b.WriteString(m.theme.Signal.Render(fmt.Sprintf("%-12s", name)))
	b.WriteString(m.theme.SignalVal.Render(value))
	b.WriteString("\n")
}
