package actions

import (
	"renamecommit.dev/renamecommit/internal/tui"
	"renamecommit.dev/renamecommit/internal/utils"
)

// Prompter collects input from the operator
type Prompter interface {
	// PromptMessage asks for a new message pre-filled with current
	PromptMessage(current string) (string, error)
	// EditMessage opens current in an editor and returns the cleaned result
	EditMessage(current string) (string, error)
	// Confirm asks a yes/no question
	Confirm(prompt string, defaultValue bool) (bool, error)
}

// NewTUIPrompter returns the terminal Prompter. repoRoot selects the repository whose
// core.editor setting is honoured.
func NewTUIPrompter(repoRoot string) Prompter {
	return &tuiPrompter{repoRoot: repoRoot}
}

type tuiPrompter struct {
	repoRoot string
}

func (p *tuiPrompter) PromptMessage(current string) (string, error) {
	return tui.PromptCommitMessage("Enter new commit message:", current, utils.ValidateCommitMessage)
}

func (p *tuiPrompter) EditMessage(current string) (string, error) {
	edited, err := tui.OpenEditor(tui.EditorCommand(p.repoRoot), utils.EditTemplate(current), "COMMIT_EDITMSG-*")
	if err != nil {
		return "", err
	}
	return utils.CleanEditedMessage(edited), nil
}

func (p *tuiPrompter) Confirm(prompt string, defaultValue bool) (bool, error) {
	return tui.PromptConfirm(prompt, defaultValue)
}
