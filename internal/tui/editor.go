package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fieldsheet/fieldsheet/internal/timesheet"
	"github.com/fieldsheet/fieldsheet/internal/timeutil"
)

type editColumn int

const (
	colJobNumber editColumn = iota
	colLocation
	colTravelStart
	colWorkStart
	colWorkFinish
	colTravelHome
	columnCount
)

var columnNames = [columnCount]string{
	"Job #", "Location", "Travel out", "Work start", "Work finish", "Travel home",
}

type dayTarget int

const (
	targetCell dayTarget = iota
	targetEmployee
	targetTruck
)

// editorModel is the job grid for one day: rows are jobs, columns the
// six entry fields. Cell edits go through a textinput; "e" and "t"
// edit the day-level employee and truck fields instead of a cell.
type editorModel struct {
	day       *timesheet.DayRecord
	row       int
	col       editColumn
	target    dayTarget
	textInput textinput.Model
	editing   bool

	// onEdit runs before the first mutation is applied so the app can
	// materialize a previewed day into the store.
	onEdit func()
}

func newEditorModel(day *timesheet.DayRecord, onEdit func()) editorModel {
	ti := textinput.New()
	ti.CharLimit = 60
	ti.Width = 30

	return editorModel{
		day:       day,
		textInput: ti,
		onEdit:    onEdit,
	}
}

// SetDay points the editor at another day, resetting the cursor.
func (m *editorModel) SetDay(day *timesheet.DayRecord) {
	m.day = day
	m.row = 0
	m.col = colJobNumber
	m.editing = false
	m.textInput.Blur()
}

func (m editorModel) Update(msg tea.Msg) (editorModel, tea.Cmd) {
	if m.editing {
		return m.updateEditing(msg)
	}
	return m.updateNavigating(msg)
}

func (m editorModel) updateNavigating(msg tea.Msg) (editorModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		if m.row < len(m.day.Jobs)-1 {
			m.row++
		}
	case "left", "h":
		if m.col > 0 {
			m.col--
		}
	case "right", "l", "tab":
		m.col = (m.col + 1) % columnCount
	case "enter":
		m.editing = true
		m.target = targetCell
		m.textInput.SetValue(m.cellValue())
		m.textInput.Placeholder = m.cellPlaceholder()
		return m, m.textInput.Focus()
	case "e":
		m.editing = true
		m.target = targetEmployee
		m.textInput.SetValue(m.day.Employee)
		m.textInput.Placeholder = "Employee name"
		return m, m.textInput.Focus()
	case "t":
		m.editing = true
		m.target = targetTruck
		m.textInput.SetValue(m.day.Truck)
		m.textInput.Placeholder = "Truck number"
		return m, m.textInput.Focus()
	case "a":
		if len(m.day.Jobs) < timesheet.MaxJobs {
			m.onEdit()
			m.day.AddJob()
			m.row = len(m.day.Jobs) - 1
		}
	case "x":
		if len(m.day.Jobs) > 1 {
			m.onEdit()
			if m.day.RemoveJob(m.day.Jobs[m.row].ID) && m.row >= len(m.day.Jobs) {
				m.row = len(m.day.Jobs) - 1
			}
		}
	case "o":
		m.onEdit()
		m.day.OnCall = !m.day.OnCall
		m.day.Recalculate()
	}
	return m, nil
}

func (m editorModel) updateEditing(msg tea.Msg) (editorModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.applyEdit()
			m.editing = false
			m.textInput.Blur()
			return m, nil
		case "esc":
			m.editing = false
			m.textInput.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *editorModel) applyEdit() {
	m.onEdit()
	value := strings.TrimSpace(m.textInput.Value())
	switch m.target {
	case targetEmployee:
		m.day.Employee = value
		return
	case targetTruck:
		m.day.Truck = value
		return
	}
	j := m.day.Jobs[m.row]
	switch m.col {
	case colJobNumber:
		j.JobNumber = value
	case colLocation:
		j.Location = value
	case colTravelStart:
		j.TravelStart = normalizeClock(value)
	case colWorkStart:
		j.WorkStart = normalizeClock(value)
	case colWorkFinish:
		j.WorkFinish = normalizeClock(value)
	case colTravelHome:
		j.TravelHome = normalizeClock(value)
	}
	m.day.Recalculate()
}

// normalizeClock keeps parseable clock strings and blanks the rest, so
// a typo shows up immediately instead of silently counting as 0.
func normalizeClock(value string) string {
	if value == "" {
		return ""
	}
	if value != "00:00" && timeutil.ToMinutes(value) == 0 {
		return ""
	}
	return value
}

func (m editorModel) cellValue() string {
	j := m.day.Jobs[m.row]
	switch m.col {
	case colJobNumber:
		return j.JobNumber
	case colLocation:
		return j.Location
	case colTravelStart:
		return j.TravelStart
	case colWorkStart:
		return j.WorkStart
	case colWorkFinish:
		return j.WorkFinish
	case colTravelHome:
		return j.TravelHome
	}
	return ""
}

func (m editorModel) cellPlaceholder() string {
	switch m.col {
	case colJobNumber:
		return "Job number"
	case colLocation:
		return "Location"
	default:
		return "HH:MM"
	}
}

func (m editorModel) View() string {
	var sb strings.Builder

	header := fmt.Sprintf("    %-8s %-18s %-7s %-7s %-7s %-7s %s",
		"Job #", "Location", "T.out", "W.start", "W.end", "T.home", "Hours")
	sb.WriteString(dimStyle.Render(header))
	sb.WriteString("\n")

	for i, j := range m.day.Jobs {
		prefix := "  "
		if i == m.row {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%2d %-8s %-18s %-7s %-7s %-7s %-7s %s",
			prefix, i+1,
			clip(j.JobNumber, 8), clip(j.Location, 18),
			j.TravelStart, j.WorkStart, j.WorkFinish, j.TravelHome,
			timeutil.FormatDecimalHours(j.TotalMinutes))
		if i == m.row {
			line = highlightStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Column: %s\n", highlightStyle.Render(columnNames[m.col]))

	if m.editing {
		sb.WriteString(m.textInput.View())
		sb.WriteString("\n")
	}

	return sb.String()
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
