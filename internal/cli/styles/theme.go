// Package styles provides lipgloss styling and key maps for the CLI TUIs.
package styles

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Theme groups the demo's lipgloss styles.
type Theme struct {
	Title      lipgloss.Style
	Section    lipgloss.Style
	Node       lipgloss.Style
	ActiveNode lipgloss.Style
	Container  lipgloss.Style
	Signal     lipgloss.Style
	SignalVal  lipgloss.Style
	StatusBar  lipgloss.Style
	Error      lipgloss.Style
}

// DefaultTheme builds the default demo theme.
func DefaultTheme() *Theme {
	return &Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		Section:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginTop(1),
		Node:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		ActiveNode: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Container:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Signal:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		SignalVal:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		StatusBar:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("7")).Padding(0, 1),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// DemoKeyMap holds the demo key bindings.
type DemoKeyMap struct {
	NavigateDetail key.Binding
	NavigateFlow   key.Binding
	DeepLink       key.Binding
	Back           key.Binding
	Tab1           key.Binding
	Tab2           key.Binding
	Tab3           key.Binding
	GestureStart   key.Binding
	GestureCommit  key.Binding
	GestureCancel  key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// DefaultDemoKeyMap builds the demo key bindings.
func DefaultDemoKeyMap() DemoKeyMap {
	return DemoKeyMap{
		NavigateDetail: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "push detail")),
		NavigateFlow:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "open product flow")),
		DeepLink:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "deep link")),
		Back:           key.NewBinding(key.WithKeys("backspace", "esc"), key.WithHelp("⌫", "back")),
		Tab1:           key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home tab")),
		Tab2:           key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "search tab")),
		Tab3:           key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "profile tab")),
		GestureStart:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "start back gesture")),
		GestureCommit:  key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "commit gesture")),
		GestureCancel:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel gesture")),
		Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k DemoKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NavigateDetail, k.NavigateFlow, k.Back, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k DemoKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NavigateDetail, k.NavigateFlow, k.DeepLink, k.Back},
		{k.Tab1, k.Tab2, k.Tab3},
		{k.GestureStart, k.GestureCommit, k.GestureCancel},
		{k.Help, k.Quit},
	}
}
