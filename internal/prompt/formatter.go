// internal/prompt/formatter.go
package prompt

import (
	"fmt"
	"os"
	"strings"

	"support-helper/internal/common/errors"
)

// Placeholder is the named slot every template must contain.
const Placeholder = "{question}"

// DefaultTemplate is the embedded fallback used when no template file is
// available or the configured one is invalid.
const DefaultTemplate = `You are a customer support assistant. Analyze the user's question and provide a helpful response.

Your response MUST be valid JSON with exactly these fields:
- answer: string (concise, helpful answer to the question)
- confidence: float (0.0-1.0, your confidence in the answer)
- actions: array of strings (recommended next steps for the support agent)
- category: string (category of the question: technical, billing, account, general)
- requires_escalation: boolean (true if human escalation is needed)

Question: {question}`

// Formatter substitutes a user question into a prompt template.
type Formatter struct {
	template string
}

// New builds a Formatter from template text.
func New(template string) (*Formatter, error) {
	if !strings.Contains(template, Placeholder) {
		return nil, errors.NewTemplateError(fmt.Sprintf("template has no %s placeholder", Placeholder))
	}
	return &Formatter{template: template}, nil
}

// Load reads a template file and validates it. Failures are template
// errors; callers fall back to NewDefault rather than surfacing them.
func Load(path string) (*Formatter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewTemplateError(fmt.Sprintf("read %s: %s", path, err))
	}
	return New(string(data))
}

// NewDefault builds a Formatter on the embedded default template.
func NewDefault() *Formatter {
	f, _ := New(DefaultTemplate)
	return f
}

// Format substitutes the question into the template.
func (f *Formatter) Format(question string) string {
	return strings.ReplaceAll(f.template, Placeholder, question)
}
