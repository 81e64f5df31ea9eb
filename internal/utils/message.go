package utils

import (
	"strings"
)

const editTemplateHelp = `
# Enter the new message for the last commit. Lines starting
# with '#' will be ignored, and an empty message aborts the rename.
`

// EditTemplate returns the editor buffer for editing current
func EditTemplate(current string) string {
	return current + "\n" + editTemplateHelp
}

// CleanEditedMessage strips comment lines and surrounding blank lines from an
// edited message, the way git's "strip" cleanup mode does.
func CleanEditedMessage(content string) string {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}

	// Collapse runs of blank lines into one
	cleaned := make([]string, 0, len(kept))
	for i, line := range kept {
		if line == "" && i > 0 && kept[i-1] == "" {
			continue
		}
		cleaned = append(cleaned, line)
	}

	return strings.Trim(strings.Join(cleaned, "\n"), "\n")
}
