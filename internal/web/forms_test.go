package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: []string{}},
		{in: "Go", want: []string{"Go"}},
		{in: " Go , Rust ", want: []string{"Go", "Rust"}},
		{in: "a,,b, ", want: []string{"a", "b"}},
		{in: "https://x.test/a?b=c,https://y.test", want: []string{"https://x.test/a?b=c", "https://y.test"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitList(tt.in), "input %q", tt.in)
	}
}

func TestProjectForm(t *testing.T) {
	_, ok := ProjectForm{Title: " ", Description: "d"}.Validate()
	assert.False(t, ok)

	msg, ok := ProjectForm{Title: "t", Description: ""}.Validate()
	assert.False(t, ok)
	assert.Equal(t, errProjectRequired, msg)

	form := ProjectForm{Title: " CLI ", Description: "tool", Links: "https://a.test, https://b.test", SkillsUsed: "Go"}
	_, ok = form.Validate()
	assert.True(t, ok)

	p := form.Project()
	assert.Equal(t, "CLI", p.Title)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, p.Links)
	assert.Equal(t, []string{"Go"}, p.SkillsUsed)
}
