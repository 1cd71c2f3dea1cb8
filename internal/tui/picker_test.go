package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robby/nhp/internal/habits"
)

func testConfig() habits.Config {
	return habits.Config{
		Types: map[string]habits.TypeConfig{
			"weekly": {DatabaseName: "Weekly Habits", TitlePrefix: "Week:"},
			"daily":  {DatabaseID: "db-daily", TitlePrefix: "Daily Habits:"},
		},
	}
}

func TestNewPickerModel_ListsTypesInSortedOrder(t *testing.T) {
	m := NewPickerModel(testConfig())

	items := m.list.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "daily", items[0].(typeItem).name)
	assert.Equal(t, "weekly", items[1].(typeItem).name)
	assert.Empty(t, m.Choice())
}

func TestPickerModel_EnterSelectsType(t *testing.T) {
	m := NewPickerModel(testConfig())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	picker, ok := updated.(PickerModel)
	require.True(t, ok)
	assert.Equal(t, "daily", picker.Choice())
}

func TestPickerModel_QuitLeavesNoChoice(t *testing.T) {
	m := NewPickerModel(testConfig())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	picker, ok := updated.(PickerModel)
	require.True(t, ok)
	assert.Empty(t, picker.Choice())
}

func TestTypeItem_Description(t *testing.T) {
	item := typeItem{name: "weekly", cfg: habits.TypeConfig{DatabaseName: "Weekly Habits", TitlePrefix: "Week:"}}
	assert.Contains(t, item.Description(), "Weekly Habits")
	assert.Contains(t, item.Description(), "Week:")

	bare := typeItem{name: "daily", cfg: habits.TypeConfig{TitlePrefix: "Daily Habits:"}}
	assert.Contains(t, bare.Description(), "Daily Habits:")
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(Summary{
		Title:       "Week: Jan 05, 2024",
		PageID:      "page-123",
		URL:         "https://www.notion.so/page-123",
		Database:    "Weekly Habits",
		Description: "Tracks weekly habits.",
	})

	assert.Contains(t, out, "Week: Jan 05, 2024")
	assert.Contains(t, out, "page-123")
	assert.Contains(t, out, "Weekly Habits")
	assert.Contains(t, out, "Tracks weekly habits.")
}

func TestRenderSummary_SkipsEmptyRows(t *testing.T) {
	out := RenderSummary(Summary{Title: "Daily Habits: Jan 05, 2024", PageID: "page-9"})

	assert.Contains(t, out, "page-9")
	assert.NotContains(t, out, "URL")
	assert.NotContains(t, out, "Database")
}
