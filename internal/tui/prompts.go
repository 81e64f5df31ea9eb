package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	rlcerrors "renamecommit.dev/renamecommit/internal/errors"
)

// ErrInteractiveDisabled is returned when interactive prompts are disabled via RENAME_LAST_COMMIT_TEST_NO_INTERACTIVE
var ErrInteractiveDisabled = fmt.Errorf("interactive prompts are disabled (RENAME_LAST_COMMIT_TEST_NO_INTERACTIVE is set)")

// checkInteractiveAllowed returns an error if interactive mode is disabled for testing
func checkInteractiveAllowed() error {
	if os.Getenv("RENAME_LAST_COMMIT_TEST_NO_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	return nil
}

// messageInputModel is a multi-line text prompt that refuses to submit invalid input
type messageInputModel struct {
	textArea textarea.Model
	prompt   string
	validate func(string) error
	invalid  error
	done     bool
	err      error
}

func newMessageInputModel(prompt, defaultValue string, validate func(string) error) messageInputModel {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(min(max(strings.Count(defaultValue, "\n")+2, 3), 15))
	ta.SetValue(defaultValue)
	ta.Focus()

	return messageInputModel{
		textArea: ta,
		prompt:   prompt,
		validate: validate,
	}
}

func (m messageInputModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m messageInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlD:
			if m.validate != nil {
				if err := m.validate(m.textArea.Value()); err != nil {
					m.invalid = err
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = rlcerrors.ErrPromptCancelled
			m.done = true
			return m, tea.Quit
		}
	}

	m.invalid = nil
	m.textArea, cmd = m.textArea.Update(msg)
	return m, cmd
}

func (m messageInputModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.prompt)
	b.WriteString("\n")
	b.WriteString(m.textArea.View())
	b.WriteString("\n")
	if m.invalid != nil {
		b.WriteString(ColorRed(m.invalid.Error()))
		b.WriteString("\n")
	}
	b.WriteString(ColorDim("(Ctrl+D to submit, Esc or Ctrl+C to cancel)"))
	return lipgloss.NewStyle().Margin(1, 0).Render(b.String())
}

// PromptCommitMessage asks for a commit message in a multi-line editor pre-filled with
// defaultValue. Submissions rejected by validate keep the prompt open.
func PromptCommitMessage(prompt, defaultValue string, validate func(string) error) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	m := newMessageInputModel(prompt, defaultValue, validate)

	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stderr))
	model, err := p.Run()
	if err != nil {
		return "", err
	}

	if finalModel, ok := model.(messageInputModel); ok {
		if finalModel.err != nil {
			return "", finalModel.err
		}
		return finalModel.textArea.Value(), nil
	}

	return "", fmt.Errorf("unexpected model type")
}

// PromptConfirm prompts the user for yes/no confirmation
func PromptConfirm(prompt string, defaultValue bool) (bool, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return false, err
	}

	confirmed := defaultValue
	err := survey.AskOne(&survey.Confirm{
		Message: prompt,
		Default: defaultValue,
	}, &confirmed, survey.WithStdio(os.Stdin, os.Stderr, os.Stderr))
	if err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, rlcerrors.ErrPromptCancelled
		}
		return false, err
	}
	return confirmed, nil
}
