// Package tui renders the quote wizard in a terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgiagency/quote-funnel/internal/schema"
	"github.com/tgiagency/quote-funnel/internal/wizard"
)

// ResetDelay is how long the confirmation stays up before the wizard clears.
const ResetDelay = 3 * time.Second

type submitResultMsg struct {
	id  string
	err error
}

type resetMsg struct{}

type Model struct {
	ctx  context.Context
	flow *wizard.Flow

	fields []wizard.Field
	inputs []textinput.Model
	focus  int

	fieldErrs schema.Errors
	banner    string
	failed    bool
	consent   bool

	submitting bool
	submitted  string
	spinner    spinner.Model

	width  int
	height int
}

func NewModel(ctx context.Context, flow *wizard.Flow) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	flow.Store.OpenModal()
	m := Model{
		ctx:     ctx,
		flow:    flow,
		consent: bool(flow.Store.State().Draft.Consent),
		spinner: sp,
		width:   80,
		height:  24,
	}
	m.loadStep()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case submitResultMsg:
		return m.handleSubmitResult(msg)
	case resetMsg:
		_ = m.flow.Complete(m.ctx)
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) step() int {
	return m.flow.Store.State().CurrentStep
}

// loadStep rebuilds the inputs for the current step from the draft.
func (m *Model) loadStep() {
	st := m.flow.Store.State()
	m.fields = wizard.StepFields(st.CurrentStep, st.Draft.InsuranceType)
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = f.Placeholder
		in.CharLimit = 200
		in.SetValue(f.Value(st.Draft))
		if f.Kind == wizard.KindSelect && in.Placeholder == "" {
			in.Placeholder = "←/→ to choose"
		}
		m.inputs[i] = in
	}
	m.focus = 0
	m.fieldErrs = nil
	m.updateFocus()
}

func (m *Model) updateFocus() {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m Model) patch() wizard.Patch {
	var p wizard.Patch
	for i, f := range m.fields {
		f.Set(&p, m.inputs[i].Value())
	}
	return p
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.flow.Store.CloseModal()
		return m, tea.Quit
	}
	if m.submitted != "" || m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		if m.step() == schema.StepProduct {
			m.flow.Store.CloseModal()
			return m, tea.Quit
		}
		m.flow.Back()
		m.loadStep()
		return m, nil
	case "ctrl+x":
		m.banner, m.failed = "", false
		return m, nil
	}

	if m.step() == schema.StepReview {
		return m.handleReviewKeys(msg)
	}
	return m.handleFormKeys(msg)
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		if len(m.inputs) > 0 {
			m.focus = (m.focus + 1) % len(m.inputs)
			m.updateFocus()
		}
		return m, nil
	case "shift+tab", "up":
		if len(m.inputs) > 0 {
			m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
			m.updateFocus()
		}
		return m, nil
	case "left", "right":
		if len(m.inputs) > 0 && m.fields[m.focus].Kind == wizard.KindSelect {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			m.inputs[m.focus].SetValue(cycle(m.fields[m.focus].Options, m.inputs[m.focus].Value(), delta))
			return m, nil
		}
	case "enter":
		errs, err := m.flow.Advance(m.ctx, m.patch())
		if err != nil {
			m.banner = err.Error()
			return m, nil
		}
		if len(errs) > 0 {
			m.fieldErrs = errs
			return m, nil
		}
		m.loadStep()
		return m, nil
	}

	if len(m.inputs) == 0 || m.fields[m.focus].Kind == wizard.KindSelect {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleReviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		m.consent = !m.consent
		return m, nil
	case "1", "2", "3", "4":
		step := int(msg.Runes[0] - '0')
		if err := m.flow.Edit(step); err == nil {
			m.loadStep()
		}
		return m, nil
	case "enter":
		if !m.consent {
			m.banner, m.failed = wizard.ConsentMessage, false
			return m, nil
		}
		m.banner, m.failed = "", false
		m.submitting = true
		return m, tea.Batch(m.submit(), m.spinner.Tick)
	}
	return m, nil
}

func (m Model) submit() tea.Cmd {
	flow, ctx, consent := m.flow, m.ctx, m.consent
	return func() tea.Msg {
		id, err := flow.Submit(ctx, consent)
		return submitResultMsg{id: id, err: err}
	}
}

func (m Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	if msg.err != nil {
		m.banner = bannerFor(msg.err)
		m.failed = !errors.Is(msg.err, wizard.ErrConsentRequired)
		return m, nil
	}
	m.submitted = msg.id
	return m, tea.Tick(ResetDelay, func(time.Time) tea.Msg { return resetMsg{} })
}

func bannerFor(err error) string {
	if errors.Is(err, wizard.ErrConsentRequired) {
		return wizard.ConsentMessage
	}
	var se *wizard.SubmitError
	if errors.As(err, &se) {
		msg := se.Error()
		if se.RetryAfter > 0 {
			wait := se.RetryAfter.Round(time.Second)
			if wait >= time.Minute {
				wait = se.RetryAfter.Round(time.Minute)
			}
			msg = fmt.Sprintf("%s Try again in %s.", msg, wait)
		}
		return msg
	}
	return "Failed to submit quote request. Please try again."
}

func cycle(opts []wizard.Option, current string, delta int) string {
	if len(opts) == 0 {
		return current
	}
	idx := -1
	for i, o := range opts {
		if o.Value == current {
			idx = i
			break
		}
	}
	if idx == -1 {
		if delta > 0 {
			return opts[0].Value
		}
		return opts[len(opts)-1].Value
	}
	return opts[(idx+delta+len(opts))%len(opts)].Value
}
