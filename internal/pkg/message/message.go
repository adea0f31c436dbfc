// Package message inspects generated commit messages.
package message

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// CommitMessage is a generated message split into its parts.
type CommitMessage struct {
	Subject string
	Body    string
	Footer  string
}

// Parse splits raw model output into subject, body and trailer footer.
func Parse(rawText string) *CommitMessage {
	cm := &CommitMessage{}

	rawText = strings.TrimSpace(strings.ReplaceAll(rawText, "\r\n", "\n"))
	if rawText == "" {
		return cm
	}

	lines := strings.Split(rawText, "\n")
	cm.Subject = strings.TrimSpace(lines[0])
	if len(lines) > 1 {
		cm.parseBodyAndFooter(lines[1:])
	}
	return cm
}

// parseBodyAndFooter parses the body and footer sections.
func (cm *CommitMessage) parseBodyAndFooter(lines []string) {
	var bodyLines, footerLines []string
	inFooter := false

	for _, line := range lines {
		if isFooterLine(strings.TrimSpace(line)) {
			inFooter = true
		}

		if inFooter {
			footerLines = append(footerLines, line)
		} else {
			bodyLines = append(bodyLines, line)
		}
	}

	cm.Body = strings.TrimSpace(strings.Join(bodyLines, "\n"))
	cm.Footer = strings.TrimSpace(strings.Join(footerLines, "\n"))
}

var footerPrefixes = []string{
	"BREAKING CHANGE:",
	"BREAKING-CHANGE:",
	"Refs:",
	"Closes:",
	"Fixes:",
	"Resolves:",
	"See:",
	"Co-authored-by:",
	"Signed-off-by:",
	"Reviewed-by:",
}

// isFooterLine checks if a line is a git trailer.
func isFooterLine(line string) bool {
	upperLine := strings.ToUpper(line)
	for _, prefix := range footerPrefixes {
		if strings.HasPrefix(upperLine, strings.ToUpper(prefix)) {
			return true
		}
	}
	return false
}

// SubjectLength returns the subject length in characters.
func (cm *CommitMessage) SubjectLength() int {
	return utf8.RuneCountInString(cm.Subject)
}

// Warnings lists advisory problems with the message. They never block a commit.
func (cm *CommitMessage) Warnings(maxSubjectLength int) []string {
	var warnings []string

	if maxSubjectLength > 0 && cm.SubjectLength() > maxSubjectLength {
		warnings = append(warnings, fmt.Sprintf(
			"subject line exceeds %d characters (%d chars)",
			maxSubjectLength, cm.SubjectLength(),
		))
	}

	if strings.HasSuffix(cm.Subject, ".") {
		warnings = append(warnings, "subject line ends with a period")
	}

	return warnings
}

// Inspect parses rawText and returns its advisory warnings.
func Inspect(rawText string, maxSubjectLength int) []string {
	return Parse(rawText).Warnings(maxSubjectLength)
}
