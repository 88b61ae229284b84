package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fieldsheet/fieldsheet/internal/ai"
	"github.com/fieldsheet/fieldsheet/internal/config"
	"github.com/fieldsheet/fieldsheet/internal/email"
	"github.com/fieldsheet/fieldsheet/internal/report"
	"github.com/fieldsheet/fieldsheet/internal/timesheet"
	"github.com/fieldsheet/fieldsheet/internal/timeutil"
)

type viewState int

const (
	dayView viewState = iota
	reportView
)

// summaryMsg carries an AI summarization result back into the update
// loop. reqID guards against a stale in-flight response overwriting a
// newer request: last request wins.
type summaryMsg struct {
	reqID   int
	summary *ai.Summary
	err     error
}

type App struct {
	state   viewState
	store   *timesheet.Store
	date    string
	day     *timesheet.DayRecord
	editor  editorModel
	spinner spinner.Model

	reportText  string
	reportStart string
	reportEnd   string
	reportWeek  bool
	summary     *ai.Summary
	summarizing bool
	reqID       int
	mailtoLink  string

	errMsg  string
	infoMsg string

	provider ai.Provider
	cfg      *config.Config
	logger   *slog.Logger
}

func NewApp(store *timesheet.Store, provider ai.Provider, cfg *config.Config, date string, logger *slog.Logger) App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	a := App{
		state:    dayView,
		store:    store,
		spinner:  sp,
		provider: provider,
		cfg:      cfg,
		logger:   logger,
	}
	a.setDate(date)
	return a
}

// setDate points the app at a date, preferring the stored record and
// falling back to a preview that only enters the store on first edit.
func (a *App) setDate(date string) {
	a.date = date
	a.day = a.store.Preview(date)

	day := a.day
	store := a.store
	if a.editor.day == nil {
		a.editor = newEditorModel(day, func() { store.Adopt(day) })
	} else {
		a.editor.SetDay(day)
		a.editor.onEdit = func() { store.Adopt(day) }
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryMsg:
		if msg.reqID != a.reqID {
			a.logger.Debug("dropping stale summary response", "req_id", msg.reqID)
			return a, nil
		}
		a.summarizing = false
		if msg.err != nil {
			a.errMsg = fmt.Sprintf("Summarization failed: %v", msg.err)
			return a, nil
		}
		a.summary = msg.summary
		return a, nil

	case spinner.TickMsg:
		if !a.summarizing {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.state {
		case dayView:
			return a.updateDayView(msg)
		case reportView:
			return a.updateReportView(msg)
		}
	}
	return a, nil
}

func (a App) updateDayView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !a.editor.editing {
		a.errMsg, a.infoMsg = "", ""
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "[":
			a.setDate(timeutil.AddDays(a.date, -1))
			return a, nil
		case "]":
			a.setDate(timeutil.AddDays(a.date, 1))
			return a, nil
		case "d":
			a.openReport(a.date, a.date, false)
			return a, nil
		case "w":
			start, end := timeutil.WeekRange(time.Now())
			if a.date != "" {
				if t, err := time.ParseInLocation(timeutil.DateLayout, a.date, time.Local); err == nil {
					start, end = timeutil.WeekRange(t)
				}
			}
			a.openReport(start, end, true)
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

// openReport assembles the report text for the range and switches to
// the report view. A new report invalidates any in-flight summary.
func (a *App) openReport(start, end string, week bool) {
	a.reportStart, a.reportEnd, a.reportWeek = start, end, week
	if week {
		a.reportText = report.Weekly(a.store, start, end)
	} else {
		a.reportText = report.Daily(a.day)
	}
	a.summary = nil
	a.summarizing = false
	a.reqID++ // orphan any outstanding request
	a.mailtoLink = ""
	a.state = reportView
}

func (a App) updateReportView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.errMsg, a.infoMsg = "", ""
	switch msg.String() {
	case "esc", "q":
		a.state = dayView
		return a, nil
	case "s":
		a.reqID++
		a.summarizing = true
		a.summary = nil
		return a, tea.Batch(a.spinner.Tick, a.summarizeCmd())
	case "c":
		a.exportCSV()
		return a, nil
	case "m":
		a.composeEmail()
		return a, nil
	}
	return a, nil
}

func (a *App) summarizeCmd() tea.Cmd {
	req := ai.Request{
		Start: a.reportStart,
		End:   a.reportEnd,
	}
	// Snapshot the days so the store stays editable while the request
	// is outstanding.
	for _, d := range a.store.Range(a.reportStart, a.reportEnd) {
		req.Days = append(req.Days, d.Clone())
	}
	if len(req.Days) == 0 && !a.reportWeek {
		// Daily report for a never-stored day: summarize the preview.
		req.Days = []*timesheet.DayRecord{a.day.Clone()}
	}
	reqID := a.reqID
	provider := a.provider
	logger := a.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()
		logger.Debug("summarize request", "req_id", reqID, "start", req.Start, "end", req.End)
		s, err := provider.Summarize(ctx, req)
		return summaryMsg{reqID: reqID, summary: s, err: err}
	}
}

func (a *App) exportCSV() {
	var text, name string
	if a.reportWeek {
		text = report.WeeklyCSV(a.store, a.reportStart, a.reportEnd)
		name = report.Filename(a.day.Employee, a.reportStart, a.reportEnd)
	} else {
		text = report.DailyCSV(a.day)
		name = report.Filename(a.day.Employee, a.date)
	}

	path := filepath.Join(a.cfg.Export.Dir, name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		a.errMsg = fmt.Sprintf("Export failed: %v", err)
		return
	}
	a.infoMsg = "Exported " + path
}

func (a *App) composeEmail() {
	if !a.reportWeek {
		a.errMsg = "Email needs a weekly report — press w first"
		return
	}
	link, err := email.Compose(a.cfg.Email.Recipient, a.day.Employee,
		a.reportStart, a.reportEnd, a.reportText)
	if err != nil {
		a.errMsg = fmt.Sprintf("Cannot compose email: %v", err)
		return
	}
	a.mailtoLink = link
	a.infoMsg = "Mail link ready — open it with your mail client"
}

func (a App) View() string {
	switch a.state {
	case reportView:
		return a.viewReport()
	default:
		return a.viewDay()
	}
}

func (a App) viewDay() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("fieldsheet — Daily Jobs"))
	sb.WriteString("\n")

	onCall := ""
	if a.day.OnCall {
		onCall = "  " + onCallStyle.Render("[ON CALL]")
	}
	fmt.Fprintf(&sb, "%s%s\n",
		subtitleStyle.Render(fmt.Sprintf("%s (%s) — %s, truck %s",
			a.date, a.day.DayOfWeek(), a.day.Employee, a.day.Truck)),
		onCall)

	sb.WriteString(a.editor.View())

	fmt.Fprintf(&sb, "\nTotal: %s h   Net: %s h\n",
		successStyle.Render(timeutil.FormatDecimalHours(a.day.TotalMinutes)),
		successStyle.Render(timeutil.FormatDecimalHours(a.day.NetMinutes)))

	sb.WriteString(a.messages())
	sb.WriteString(helpStyle.Render(
		"Enter: edit cell • arrows: move • a/x: add/remove job • o: on call • e/t: employee/truck\n" +
			"[ ]: prev/next day • d: daily report • w: weekly report • q: quit"))
	return boxStyle.Render(sb.String())
}

func (a App) viewReport() string {
	var sb strings.Builder
	kind := "Daily"
	if a.reportWeek {
		kind = "Weekly"
	}
	sb.WriteString(titleStyle.Render("fieldsheet — " + kind + " Report"))
	sb.WriteString("\n")
	sb.WriteString(a.reportText)

	if a.summarizing {
		fmt.Fprintf(&sb, "\n%s Summarizing…\n", a.spinner.View())
	}
	if a.summary != nil {
		sb.WriteString("\n")
		sb.WriteString(successStyle.Render("AI summary"))
		sb.WriteString("\n")
		sb.WriteString(a.summary.Text)
		sb.WriteString("\n")
		for _, h := range a.summary.Highlights {
			fmt.Fprintf(&sb, "  • %s\n", h)
		}
	}
	if a.mailtoLink != "" {
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render(a.mailtoLink))
		sb.WriteString("\n")
	}

	sb.WriteString(a.messages())
	sb.WriteString(helpStyle.Render(
		"s: AI summary • c: export CSV • m: email link • esc: back"))
	return boxStyle.Render(sb.String())
}

func (a App) messages() string {
	var sb strings.Builder
	if a.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(a.errMsg))
		sb.WriteString("\n")
	}
	if a.infoMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(successStyle.Render(a.infoMsg))
		sb.WriteString("\n")
	}
	return sb.String()
}
