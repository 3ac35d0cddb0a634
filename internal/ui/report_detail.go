package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"greenpath/internal/actions"
	"greenpath/internal/model"
	"greenpath/internal/util"
)

type stepState int

const (
	stepPending stepState = iota
	stepCurrent
	stepDone
	stepFailed
)

type timelineStep struct {
	label string
	state stepState
	when  string
}

// reportTimeline lays out the lifecycle of a pickup: reported, scheduled,
// in progress, then completed or the reason it stopped.
func reportTimeline(r model.WasteReport) []timelineStep {
	rank := map[model.ReportStatus]int{
		model.ReportPending:    0,
		model.ReportScheduled:  1,
		model.ReportInProgress: 2,
		model.ReportCompleted:  3,
	}

	steps := []timelineStep{
		{label: "Reported", state: stepDone, when: util.FormatTime(r.CreatedAt)},
		{label: "Scheduled", when: util.FormatDate(r.ScheduledDate)},
		{label: "In Progress"},
		{label: "Completed", when: util.FormatDate(r.CompletedDate)},
	}

	if r.Status.Cancelled() {
		return append(steps[:2:2], timelineStep{label: model.Label(r.Status), state: stepFailed})
	}

	reached := rank[r.Status]
	for i := 1; i < len(steps); i++ {
		switch {
		case i < reached:
			steps[i].state = stepDone
		case i == reached && r.Status == model.ReportCompleted:
			steps[i].state = stepDone
		case i == reached:
			steps[i].state = stepCurrent
		}
	}
	if reached == 0 {
		steps[0].state = stepCurrent
	}
	return steps
}

func renderTimeline(steps []timelineStep) string {
	var lines []string
	for i, s := range steps {
		marker, style := "○", HelpDescStyle
		switch s.state {
		case stepDone:
			marker, style = "●", lipgloss.NewStyle().Foreground(ColorGreen)
		case stepCurrent:
			marker, style = "◉", lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
		case stepFailed:
			marker, style = "✗", lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
		}
		line := style.Render(marker + " " + s.label)
		if s.when != "" && s.when != "—" && s.state != stepPending {
			line += "  " + HelpDescStyle.Render(s.when)
		}
		lines = append(lines, line)
		if i < len(steps)-1 {
			lines = append(lines, HelpDescStyle.Render("│"))
		}
	}
	return strings.Join(lines, "\n")
}

// ReportDetailModel shows one pickup and where it is in its lifecycle.
type ReportDetailModel struct {
	report model.WasteReport
	now    func() time.Time
}

func NewReportDetailModel(r model.WasteReport, now func() time.Time) *ReportDetailModel {
	return &ReportDetailModel{report: r, now: now}
}

func (m *ReportDetailModel) View(width, height int) string {
	r := m.report
	shortcuts := HelpDescStyle.Render("esc back")

	var fields []string
	fields = append(fields, renderField("Title", r.Title))
	fields = append(fields, renderField("Waste Type", actions.LabelOf(actions.WasteTypes, r.WasteType)))
	fields = append(fields, renderField("Location", r.Location))
	fields = append(fields, renderField("Pickup", strings.TrimSpace(util.FormatDate(r.ScheduledDate)+"  "+r.ScheduledTimeSlot)))
	fields = append(fields, LabelStyle.Render("Status:")+" "+renderStatus(string(r.Status), model.Label(r.Status)))
	fields = append(fields, renderField("Reported", util.FormatDateHuman(r.CreatedAt, m.now())))

	divider := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render(strings.Repeat("─", max(width-8, 1)))

	sections := []string{strings.Join(fields, "\n"), divider}
	if r.Description != "" {
		sections = append(sections, LabelStyle.Render("Description:"), NormalRowStyle.Render(r.Description))
	}
	sections = append(sections, LabelStyle.Render("Timeline:"), renderTimeline(reportTimeline(r)))

	content := PanelStyle.
		Width(width - 4).
		Render(strings.Join(sections, "\n\n"))

	header := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Right).
		Render(shortcuts)

	return lipgloss.JoinVertical(lipgloss.Left, header, content)
}

func renderField(label, value string) string {
	if value == "" {
		value = "—"
	}
	return LabelStyle.Render(label+":") + " " + NormalRowStyle.Render(value)
}
