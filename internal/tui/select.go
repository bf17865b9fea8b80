// Package tui provides the interactive result picker.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/libris/internal/googlebooks"
)

const (
	pickerWidth  = 72
	pickerHeight = 20
)

// overridable in tests to avoid driving a real terminal
var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected a volume.
	ActionSelected
	// ActionSkipped indicates the user skipped the selection.
	ActionSkipped
	// ActionStopped indicates the user quit the picker.
	ActionStopped
)

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection *googlebooks.Volume
}

// SelectVolume presents an interactive picker over search results.
func SelectVolume(query string, volumes []*googlebooks.Volume) (SelectionResult, error) {
	if len(volumes) == 0 {
		return SelectionResult{Action: ActionSkipped}, nil
	}

	items := make([]list.Item, len(volumes))
	for i, volume := range volumes {
		items[i] = volumeItem{Volume: volume}
	}

	finalModel, err := runProgram(newPicker(query, items))
	if err != nil {
		return SelectionResult{}, err
	}
	if picker, ok := finalModel.(*pickerModel); ok {
		return picker.result, nil
	}
	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

type volumeItem struct {
	*googlebooks.Volume
}

func (i volumeItem) FilterValue() string {
	return i.Title
}

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			Foreground(lipgloss.Color("252"))

	cardSelectedStyle = cardStyle.Copy().
				BorderForeground(lipgloss.Color("178")).
				Foreground(lipgloss.Color("230"))

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("254"))
	authorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("247")).Faint(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("178")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

type volumeDelegate struct{}

func (d volumeDelegate) Height() int                         { return 4 }
func (d volumeDelegate) Spacing() int                        { return 1 }
func (d volumeDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d volumeDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	volume, ok := item.(volumeItem)
	if !ok {
		return
	}

	width := m.Width() - 4
	card := cardStyle
	if idx == m.Index() {
		card = cardSelectedStyle
	}

	lines := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(truncate(displayTitle(volume.Volume), width)),
		authorStyle.Render(truncate(volume.AuthorLine(), width)),
		detailStyle.Render(formatMetadata(volume.Volume, width)),
	)
	_, _ = fmt.Fprint(w, card.Render(lines))
}

func displayTitle(volume *googlebooks.Volume) string {
	title := volume.Title
	if volume.Subtitle != "" {
		title += ": " + volume.Subtitle
	}
	if year := volume.PublishedYear(); year > 0 {
		title = fmt.Sprintf("%s (%d)", title, year)
	}
	return title
}

type pickerModel struct {
	list   list.Model
	query  string
	result SelectionResult
}

func newPicker(query string, items []list.Item) *pickerModel {
	l := list.New(items, volumeDelegate{}, pickerWidth, pickerHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &pickerModel{
		list:   l,
		query:  query,
		result: SelectionResult{Action: ActionNone},
	}
}

func (m *pickerModel) Init() tea.Cmd { return nil }

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(volumeItem); ok {
				m.result = SelectionResult{Action: ActionSelected, Selection: selected.Volume}
				return m, tea.Quit
			}
		case "s", "esc":
			m.result = SelectionResult{Action: ActionSkipped}
			return m, tea.Quit
		case "ctrl+c", "q":
			m.result = SelectionResult{Action: ActionStopped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetSize(
			clamp(msg.Width-4, 40, pickerWidth),
			clamp(msg.Height-6, 5, pickerHeight),
		)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *pickerModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Results for: "+m.query),
		m.list.View(),
		helpStyle.Render("Up/Down navigate | Enter select | s skip | q quit"),
	)
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

// formatMetadata builds the detail line: publisher, page count, language
// and rating when present.
func formatMetadata(volume *googlebooks.Volume, width int) string {
	var parts []string

	if volume.Publisher != "" {
		parts = append(parts, volume.Publisher)
	}
	if volume.PageCount > 0 {
		parts = append(parts, fmt.Sprintf("%dp", volume.PageCount))
	}
	if volume.Language != "" {
		parts = append(parts, strings.ToUpper(volume.Language))
	}
	if volume.RatingsCount > 0 {
		parts = append(parts, fmt.Sprintf("%.1f/5 (%d ratings)", volume.AverageRating, volume.RatingsCount))
	}

	if len(parts) == 0 {
		return "No metadata available"
	}
	return truncate(strings.Join(parts, " | "), width)
}

func clamp(value, minimum, maximum int) int {
	if value < minimum {
		return minimum
	}
	if value > maximum {
		return maximum
	}
	return value
}
