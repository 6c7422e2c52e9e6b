package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tgiagency/quote-funnel/internal/schema"
	"github.com/tgiagency/quote-funnel/internal/wizard"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("25")).
			MarginBottom(1)

	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))

	labelStyle = lipgloss.NewStyle().Bold(true)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1)

	groupStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			PaddingLeft(1).
			MarginBottom(1)

	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m Model) View() string {
	if m.submitted != "" {
		return successStyle.Render("Quote Request Submitted!") + "\n\n" +
			"Thank you! We'll review your information and contact you within 24 hours with your personalized quote.\n"
	}

	var s strings.Builder
	step := m.step()
	s.WriteString(m.renderProgress(step))
	s.WriteString("\n\n")

	if step == schema.StepReview {
		s.WriteString(m.renderReview())
	} else {
		s.WriteString(m.renderForm(step))
	}

	if m.banner != "" {
		s.WriteString("\n")
		banner := m.banner
		if m.failed {
			banner += "\n" + wizard.AlternateContact
		}
		s.WriteString(bannerStyle.Render(banner))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.renderHelp(step))
	return s.String()
}

func (m Model) renderProgress(step int) string {
	const width = 30
	filled := width * step / schema.StepCount
	bar := accentStyle.Render(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("Step %d of %d  %s\n%s", step, schema.StepCount,
		labelStyle.Render(wizard.StepTitles[step-1]), bar)
}

func (m Model) renderForm(step int) string {
	var s strings.Builder
	if len(m.fields) == 0 {
		s.WriteString("No additional details needed for this insurance type. Press enter to continue.\n")
		return s.String()
	}
	for i, f := range m.fields {
		cursor := "  "
		if i == m.focus {
			cursor = accentStyle.Render("> ")
		}
		value := m.inputs[i].View()
		if f.Kind == wizard.KindSelect {
			value = optionLabel(f.Options, m.inputs[i].Value(), m.inputs[i].Placeholder)
		}
		fmt.Fprintf(&s, "%s%s: %s\n", cursor, labelStyle.Render(f.Label), value)
		if msg := m.fieldErrs.Message(f.Key); msg != "" {
			s.WriteString("    " + errorStyle.Render(msg) + "\n")
		}
	}
	return s.String()
}

func (m Model) renderReview() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Review Your Information"))
	s.WriteString("\n")

	for _, g := range wizard.Review(m.flow.Store.State().Draft) {
		var body strings.Builder
		header := labelStyle.Render(g.Title)
		if g.Step > 0 {
			header += helpStyle.Render(fmt.Sprintf("  [%d] edit", g.Step))
		}
		body.WriteString(header + "\n")
		for _, l := range g.Lines {
			if l.Label == "" {
				body.WriteString(l.Value + "\n")
				continue
			}
			fmt.Fprintf(&body, "%s: %s\n", l.Label, l.Value)
		}
		s.WriteString(groupStyle.Render(strings.TrimRight(body.String(), "\n")))
		s.WriteString("\n")
	}

	box := "[ ]"
	if m.consent {
		box = "[x]"
	}
	fmt.Fprintf(&s, "%s I agree to the Privacy Policy and consent to be contacted regarding my quote request.\n", box)

	if m.submitting {
		s.WriteString("\n" + m.spinner.View() + " Submitting...\n")
	}
	return s.String()
}

func (m Model) renderHelp(step int) string {
	help := []string{"Enter: Continue", "Tab: Next field", "Esc: Back", "Ctrl+C: Quit"}
	switch step {
	case schema.StepProduct:
		help = []string{"←/→: Choose", "Enter: Continue", "Esc: Close"}
	case schema.StepReview:
		help = []string{"Space: Toggle consent", "1-4: Edit", "Enter: Submit Quote Request", "Esc: Back"}
	}
	if m.banner != "" {
		help = append(help, "Ctrl+X: Dismiss")
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func optionLabel(opts []wizard.Option, value, placeholder string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	if value != "" {
		return value
	}
	return helpStyle.Render(placeholder)
}
