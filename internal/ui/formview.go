package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"greenpath/internal/actions"
	"greenpath/internal/form"
	"greenpath/internal/model"
	"greenpath/internal/query"
)

type fieldKind int

const (
	textField fieldKind = iota
	selectField
	toggleField
)

type formField struct {
	name        string
	label       string
	kind        fieldKind
	placeholder string
	options     []actions.Option
	required    bool
	charLimit   int
}

// submitDoneMsg carries the outcome of a form submission back to Update.
type submitDoneMsg struct {
	form   int
	err    error
	notice actions.Notice
	value  any
}

// dialog is a form the root model can host without knowing its types.
type dialog interface {
	ID() int
	Title() string
	Submitting() bool
	Update(msg tea.KeyMsg) tea.Cmd
	Tick(msg spinner.TickMsg) tea.Cmd
	Finish(msg submitDoneMsg)
	View(width, height int) string
}

var formSeq int

const submitTimeout = 30 * time.Second

// formView renders a form.Controller as a list of inputs and submits it
// through a mutation.
type formView[T, Out any] struct {
	id       int
	title    string
	fields   []formField
	inputs   []textinput.Model
	focused  int
	ctrl     *form.Controller[T]
	mutation *query.Mutation[T, Out]
	success  actions.Notice
	failed   string
	keys     FormKeyMap
	spinner  spinner.Model
}

func newFormView[T, Out any](title string, fields []formField, ctrl *form.Controller[T], m *query.Mutation[T, Out], success actions.Notice, failed string) *formView[T, Out] {
	formSeq++
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	f := &formView[T, Out]{
		id:       formSeq,
		title:    title,
		fields:   fields,
		inputs:   make([]textinput.Model, len(fields)),
		ctrl:     ctrl,
		mutation: m,
		success:  success,
		failed:   failed,
		keys:     DefaultFormKeyMap(),
		spinner:  sp,
	}
	for i, fd := range fields {
		in := textinput.New()
		in.Placeholder = fd.placeholder
		in.CharLimit = fd.charLimit
		if in.CharLimit == 0 {
			in.CharLimit = 200
		}
		f.inputs[i] = in
	}
	f.syncInputs()
	f.focus(0)
	return f
}

func (f *formView[T, Out]) ID() int          { return f.id }
func (f *formView[T, Out]) Title() string    { return f.title }
func (f *formView[T, Out]) Submitting() bool { return f.ctrl.Phase() == form.Submitting }

// syncInputs copies the controller values into the text inputs.
func (f *formView[T, Out]) syncInputs() {
	for i, fd := range f.fields {
		if fd.kind == textField {
			f.inputs[i].SetValue(f.ctrl.Value(fd.name))
		}
	}
}

func (f *formView[T, Out]) focus(i int) {
	f.inputs[f.focused].Blur()
	f.focused = (i + len(f.fields)) % len(f.fields)
	if f.fields[f.focused].kind == textField {
		f.inputs[f.focused].Focus()
	}
}

func (f *formView[T, Out]) nextField() { f.focus(f.focused + 1) }
func (f *formView[T, Out]) prevField() { f.focus(f.focused - 1) }

// set changes a field in both the controller and its input.
func (f *formView[T, Out]) set(name, value string) {
	f.ctrl.Set(name, value)
	for i, fd := range f.fields {
		if fd.name == name && fd.kind == textField {
			f.inputs[i].SetValue(f.ctrl.Value(name))
		}
	}
}

func (f *formView[T, Out]) cycle(delta int) {
	fd := f.fields[f.focused]
	switch fd.kind {
	case toggleField:
		if f.ctrl.Value(fd.name) == "true" {
			f.ctrl.Set(fd.name, "false")
		} else {
			f.ctrl.Set(fd.name, "true")
		}
	case selectField:
		idx := -1
		for i, o := range fd.options {
			if o.Value == f.ctrl.Value(fd.name) {
				idx = i
				break
			}
		}
		if idx < 0 && delta < 0 {
			idx = 0
		}
		idx = (idx + delta + len(fd.options)) % len(fd.options)
		f.ctrl.Set(fd.name, fd.options[idx].Value)
	}
}

func (f *formView[T, Out]) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, f.keys.Cancel):
		return func() tea.Msg { return model.FormCancelledMsg{} }
	case key.Matches(msg, f.keys.Save):
		return f.submit()
	case key.Matches(msg, f.keys.NextField), msg.String() == "down", msg.String() == "enter":
		f.nextField()
		return nil
	case key.Matches(msg, f.keys.PrevField), msg.String() == "up":
		f.prevField()
		return nil
	}

	if f.Submitting() {
		return nil
	}

	fd := f.fields[f.focused]
	if fd.kind != textField {
		switch msg.String() {
		case "right", "l", " ":
			f.cycle(1)
		case "left", "h":
			f.cycle(-1)
		}
		return nil
	}

	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	if v := f.inputs[f.focused].Value(); v != f.ctrl.Value(fd.name) {
		f.ctrl.Set(fd.name, v)
	}
	return cmd
}

func (f *formView[T, Out]) Tick(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	f.spinner, cmd = f.spinner.Update(msg)
	return cmd
}

// submit validates in Update and runs the mutation in a command. Invalid
// input moves focus to the first field with an error.
func (f *formView[T, Out]) submit() tea.Cmd {
	v, ok := f.ctrl.Begin()
	if !ok {
		if !f.Submitting() {
			f.focusFirstError()
		}
		return nil
	}
	id, m := f.id, f.mutation
	success, failed := f.success, f.failed
	return tea.Batch(f.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		res := m.Execute(ctx, v)
		if res.Err != nil {
			return submitDoneMsg{form: id, err: res.Err, notice: actions.Failure(failed, res.Err)}
		}
		return submitDoneMsg{form: id, notice: success, value: res.Value}
	})
}

func (f *formView[T, Out]) focusFirstError() {
	errs := f.ctrl.VisibleErrors()
	for i, fd := range f.fields {
		if _, bad := errs[fd.name]; bad {
			f.focus(i)
			return
		}
	}
}

// Finish applies a submission result. Success restores the defaults.
func (f *formView[T, Out]) Finish(msg submitDoneMsg) {
	if msg.form != f.id {
		return
	}
	f.ctrl.Finish(msg.err)
	if msg.err == nil {
		f.syncInputs()
		f.focus(0)
	}
}

const formLabelWidth = 22

func (f *formView[T, Out]) renderValue(i int) string {
	fd := f.fields[i]
	focused := i == f.focused
	switch fd.kind {
	case toggleField:
		box := "[ ]"
		if f.ctrl.Value(fd.name) == "true" {
			box = "[x]"
		}
		return InputStyle.Render(box + " " + fd.placeholder)
	case selectField:
		label := actions.LabelOf(fd.options, f.ctrl.Value(fd.name))
		if label == "" {
			label = HelpDescStyle.Render(fd.placeholder)
		}
		if focused {
			return InputStyle.Render("‹ " + label + " ›")
		}
		return InputStyle.Render("  " + label + "  ")
	}
	return f.inputs[i].View()
}

// rows renders one line per field plus the error line under it.
func (f *formView[T, Out]) rows(width int) []string {
	errs := f.ctrl.VisibleErrors()
	rows := make([]string, 0, len(f.fields))
	for i, fd := range f.fields {
		label := fd.label
		if fd.required {
			label += " *"
		}
		labelStyle := HelpDescStyle
		marker := "  "
		if i == f.focused {
			labelStyle = LabelStyle
			marker = HelpKeyStyle.Render("▸ ")
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top,
			marker,
			labelStyle.Width(formLabelWidth).Render(label),
			lipgloss.NewStyle().MaxWidth(max(width-formLabelWidth-2, 10)).Render(f.renderValue(i)),
		)
		under := ""
		if msg, bad := errs[fd.name]; bad {
			under = strings.Repeat(" ", formLabelWidth+2) + FieldErrorStyle.Render(msg)
		}
		rows = append(rows, line+"\n"+under)
	}
	return rows
}

// View renders the form, scrolling so the focused field stays visible.
func (f *formView[T, Out]) View(width, height int) string {
	rows := f.rows(width)
	perPage := max((height-6)/2, 1)
	start := 0
	if f.focused >= perPage {
		start = f.focused - perPage + 1
	}
	end := min(start+perPage, len(rows))

	parts := []string{strings.Join(rows[start:end], "\n")}
	if start > 0 || end < len(rows) {
		parts = append(parts, HelpDescStyle.Render(fmt.Sprintf("  field %d of %d", f.focused+1, len(rows))))
	}

	switch {
	case f.Submitting():
		parts = append(parts, "", HelpDescStyle.Render(f.spinner.View()+" Submitting..."))
	case f.ctrl.SubmitError() != nil:
		parts = append(parts, "", ErrorStyle.Render("✗ "+actions.Failure(f.failed, f.ctrl.SubmitError()).Body))
	case f.ctrl.Attempted() && !f.ctrl.Valid():
		parts = append(parts, "", ErrorStyle.Render("Please fix the highlighted fields."))
	}
	return strings.Join(parts, "\n")
}
