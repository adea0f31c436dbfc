// Package ai builds the commit-message prompt and talks to the chat-completion endpoint.
package ai

import (
	"strconv"

	"github.com/valyala/fasttemplate"
)

// PromptTemplate is the fixed instruction sent with every diff.
// {{max_subject_length}} and {{diff}} are substituted by BuildPrompt.
const PromptTemplate = `You are a helpful assistant that generates concise, semantic commit messages based on Git diff.
Rules:
- Keep it under {{max_subject_length}} characters for the subject line.
- Use imperative mood (e.g., 'Fix bug' not 'Fixed bug').
- Reference issues if mentioned in diff.
- Structure: Subject line Body if needed.

Git diff:
{{diff}}

Generate only the commit message, nothing else.`

var promptTpl = fasttemplate.New(PromptTemplate, "{{", "}}")

// BuildPrompt renders the prompt for diff. The diff is inserted verbatim;
// placeholders inside it are not expanded.
func BuildPrompt(diff string, maxSubjectLength int) string {
	return promptTpl.ExecuteString(map[string]interface{}{
		"max_subject_length": strconv.Itoa(maxSubjectLength),
		"diff":               diff,
	})
}
