package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"support-helper/internal/common/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		template string
		wantErr  bool
	}{
		{
			name:     "valid template",
			template: "Answer this: {question}",
			wantErr:  false,
		},
		{
			name:     "placeholder only",
			template: "{question}",
			wantErr:  false,
		},
		{
			name:     "missing placeholder",
			template: "Answer this question please.",
			wantErr:  true,
		},
		{
			name:     "wrong placeholder name",
			template: "Answer this: {query}",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.template)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, errors.ErrCodeTemplate, errors.CodeOf(err))
				assert.Nil(t, f)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, f)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.txt")
	err := os.WriteFile(path, []byte("Context goes here.\n\nQuestion: {question}"), 0o644)
	require.NoError(t, err)

	f, err := Load(path)
	require.NoError(t, err)

	got := f.Format("How do I reset my password?")
	assert.Equal(t, "Context goes here.\n\nQuestion: How do I reset my password?", got)
}

func TestLoad_MissingFile(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
	assert.Equal(t, errors.ErrCodeTemplate, errors.CodeOf(err))
	assert.Nil(t, f)
}

func TestLoad_FileWithoutPlaceholder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.txt")
	require.NoError(t, os.WriteFile(path, []byte("no slot in here"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrCodeTemplate, errors.CodeOf(err))
}

func TestFormat_ReplacesEveryOccurrence(t *testing.T) {
	f, err := New("{question} -- and again: {question}")
	require.NoError(t, err)

	got := f.Format("hello")
	assert.Equal(t, "hello -- and again: hello", got)
	assert.NotContains(t, got, Placeholder)
}

func TestNewDefault(t *testing.T) {
	f := NewDefault()
	require.NotNil(t, f)

	got := f.Format("What are your business hours?")
	assert.Contains(t, got, "Question: What are your business hours?")
	assert.Contains(t, got, "valid JSON")
	assert.Contains(t, got, "requires_escalation")
	assert.NotContains(t, got, Placeholder)
}
