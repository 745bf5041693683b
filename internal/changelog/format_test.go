package changelog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/semrel/internal/commit"
)

func TestFormatTerminal_PlainMatchesMarkdown(t *testing.T) {
	release := Group("v1.2.0", []commit.Parsed{
		parsed(commit.TypeFeat, "uno"),
		parsed(commit.TypeFix, "dos"),
	})

	var buf bytes.Buffer
	require.NoError(t, FormatTerminal(&buf, release, FormatOptions{Plain: true}))

	want, err := RenderString(release)
	require.NoError(t, err)
	assert.Equal(t, want, buf.String())
}

func TestFormatTerminal_Styled(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	release := Group("v1.2.0", []commit.Parsed{
		parsed(commit.TypeBreaking, "quitar API"),
		parsed(commit.TypeChore, "limpiar"),
	})

	var buf bytes.Buffer
	require.NoError(t, FormatTerminal(&buf, release, FormatOptions{MaxWidth: 80}))

	out := buf.String()
	assert.Contains(t, out, "## v1.2.0")
	assert.Contains(t, out, "⚠ Breaking Changes")
	assert.Contains(t, out, "• Chores")
	assert.Contains(t, out, "  - quitar API")
}

func TestFormatTerminal_EmptyRelease(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	require.NoError(t, FormatTerminal(&buf, Group("v1.0.0", nil), FormatOptions{MaxWidth: 80}))
	assert.Contains(t, buf.String(), "(no changes)")
}

func TestWrapText(t *testing.T) {
	tests := map[string]struct {
		text     string
		maxWidth int
		want     string
	}{
		"short text untouched": {
			text:     "corto",
			maxWidth: 20,
			want:     "corto",
		},
		"wraps on space": {
			text:     "uno dos tres cuatro",
			maxWidth: 8,
			want:     "uno dos\n  tres\n  cuatro",
		},
		"multibyte counted as runes": {
			text:     "ñññ ééé",
			maxWidth: 7,
			want:     "ñññ ééé",
		},
		"zero width disables wrapping": {
			text:     strings.Repeat("x", 200),
			maxWidth: 0,
			want:     strings.Repeat("x", 200),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.text, tt.maxWidth, "  "))
		})
	}
}
