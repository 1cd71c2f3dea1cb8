package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robby/nhp/internal/habits"
)

// typeItem wraps a habit type configuration for use in bubbles/list.
type typeItem struct {
	name string
	cfg  habits.TypeConfig
}

func (i typeItem) FilterValue() string {
	return i.name
}

func (i typeItem) Title() string {
	return i.name
}

func (i typeItem) Description() string {
	target := i.cfg.DatabaseName
	if target == "" {
		target = i.cfg.DatabaseID
	}
	if target == "" {
		return fmt.Sprintf("Title: %q", i.cfg.TitlePrefix)
	}
	return fmt.Sprintf("Title: %q, Database: %s", i.cfg.TitlePrefix, target)
}

// typeDelegate is a custom item delegate for habit type items.
type typeDelegate struct{}

func (d typeDelegate) Height() int                             { return 2 }
func (d typeDelegate) Spacing() int                            { return 1 }
func (d typeDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d typeDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(typeItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.Title())
	desc := i.Description()

	if index == m.Index() {
		// Selected item
		fmt.Fprint(w, SelectedItemStyle.Render("> "+str))
		fmt.Fprint(w, "\n  "+NormalItemStyle.Render(desc))
	} else {
		// Normal item
		fmt.Fprint(w, NormalItemStyle.Render("  "+str))
		fmt.Fprint(w, "\n  "+lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(desc))
	}
}

// PickerModel displays the configured habit types for the user to select.
type PickerModel struct {
	list   list.Model
	choice string
	err    error
}

// NewPickerModel creates a picker over the configured habit types.
func NewPickerModel(cfg habits.Config) PickerModel {
	names := cfg.TypeNames()
	items := make([]list.Item, len(names))
	for i, name := range names {
		items[i] = typeItem{name: name, cfg: cfg.Types[name]}
	}

	l := list.New(items, typeDelegate{}, 60, 14)
	l.Title = "Select a Habit Record Type"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = TitleStyle

	return PickerModel{
		list: l,
	}
}

// Choice returns the selected habit type, empty if the user quit.
func (m PickerModel) Choice() string {
	return m.choice
}

// Init initializes the model.
func (m PickerModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages and updates the model state.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width - 2)
		m.list.SetHeight(msg.Height - 2)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(typeItem); ok {
				m.choice = item.name
				return m, tea.Quit
			}
		}

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the model.
func (m PickerModel) View() string {
	view := m.list.View()

	if m.err != nil {
		errorMsg := ErrorStyle.Render(fmt.Sprintf("\nError: %v", m.err))
		view += errorMsg
	}

	return view
}
