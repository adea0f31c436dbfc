package message

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		rawText     string
		wantSubject string
		wantBody    string
		wantFooter  string
	}{
		{
			name:        "subject only",
			rawText:     "Fix null pointer in parser",
			wantSubject: "Fix null pointer in parser",
		},
		{
			name:        "subject and body",
			rawText:     "Fix foo bar\n\nReplace bar with foo",
			wantSubject: "Fix foo bar",
			wantBody:    "Replace bar with foo",
		},
		{
			name:        "surrounding whitespace",
			rawText:     "\n  Add login\n\n",
			wantSubject: "Add login",
		},
		{
			name:        "body and footer",
			rawText:     "Add endpoint\n\nAdded new REST endpoint.\n\nCloses: #123",
			wantSubject: "Add endpoint",
			wantBody:    "Added new REST endpoint.",
			wantFooter:  "Closes: #123",
		},
		{
			name:        "crlf line endings",
			rawText:     "Fix build\r\n\r\nUse go 1.25",
			wantSubject: "Fix build",
			wantBody:    "Use go 1.25",
		},
		{
			name:    "empty",
			rawText: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := Parse(tt.rawText)
			assert.Equal(t, tt.wantSubject, cm.Subject)
			assert.Equal(t, tt.wantBody, cm.Body)
			assert.Equal(t, tt.wantFooter, cm.Footer)
		})
	}
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		name    string
		rawText string
		max     int
		want    []string
	}{
		{
			name:    "clean",
			rawText: "Fix foo bar\n\nReplace bar with foo",
			max:     50,
			want:    nil,
		},
		{
			name:    "too long",
			rawText: strings.Repeat("a", 51),
			max:     50,
			want:    []string{"subject line exceeds 50 characters (51 chars)"},
		},
		{
			name:    "exactly at limit",
			rawText: strings.Repeat("a", 50),
			max:     50,
			want:    nil,
		},
		{
			name:    "trailing period",
			rawText: "Fix the bug.",
			max:     50,
			want:    []string{"subject line ends with a period"},
		},
		{
			name:    "multibyte characters count once",
			rawText: strings.Repeat("é", 10),
			max:     10,
			want:    nil,
		},
		{
			name:    "both",
			rawText: "Fix a very long subject line that goes on.",
			max:     20,
			want: []string{
				"subject line exceeds 20 characters (42 chars)",
				"subject line ends with a period",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Inspect(tt.rawText, tt.max))
		})
	}
}

// Property: a subject within the limit and without a trailing period never warns.
func TestWarnings_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("short subjects are clean", prop.ForAll(
		func(subject string, body string) bool {
			return len(Inspect(subject+"\n\n"+body, len(subject))) == 0
		},
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.AlphaString(),
	))

	properties.Property("long subjects warn", prop.ForAll(
		func(subject string) bool {
			w := Inspect(subject, len(subject)-1)
			return len(w) == 1 && strings.HasPrefix(w[0], "subject line exceeds")
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 1 }),
	))

	properties.TestingRun(t)
}
