package speech

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "speech.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParseDropsBlankLines(t *testing.T) {
	d, err := Parse([]byte("topics:\n  a: [\"hi\", \"  \"]\n  empty: []\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"a": {"hi"}}, d.Topics())
	assert.Equal(t, []string{"a"}, d.TopicKeys())
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse([]byte("topics: {}\n"))
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestDefaultHasPersonalities(t *testing.T) {
	d := Default()
	assert.NotEmpty(t, d.TopicKeys())
	lines, ok := d.Personality("duck")
	assert.True(t, ok)
	assert.NotEmpty(t, lines)
}

func TestBuiltinHasTwoLines(t *testing.T) {
	d := Builtin()
	total := 0
	for _, lines := range d.Topics() {
		total += len(lines)
	}
	assert.Equal(t, 2, total)
}

func TestSourceFallsBackToBuiltin(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewSource(filepath.Join(t.TempDir(), "missing.yaml"), zap.New(core))

	assert.Equal(t, Builtin().Topics(), s.Topics())
	assert.Equal(t, 1, logs.FilterMessageSnippet("speech dataset unavailable").Len())
}

func TestSourceReloadKeepsPreviousOnError(t *testing.T) {
	path := writeFile(t, "topics:\n  a: [one]\n")
	s := NewSource(path, nil)
	require.Equal(t, []string{"one"}, s.Topics()["a"])

	require.NoError(t, os.WriteFile(path, []byte("topics:\n  b: [two]\n"), 0o644))
	require.NoError(t, s.Reload())
	assert.Equal(t, []string{"two"}, s.Topics()["b"])

	require.NoError(t, os.WriteFile(path, []byte("topics: ["), 0o644))
	err := s.Reload()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrEmptyDataset))
	assert.Equal(t, []string{"two"}, s.Topics()["b"])
}

func TestPickerUniformTopics(t *testing.T) {
	d := &Dataset{Lines: map[string][]string{
		"a": {"a1", "a2"},
		"b": {"b1"},
	}}
	p := NewPicker(d, rand.New(rand.NewSource(3)))

	seen := map[string]int{}
	for i := 0; i < 2000; i++ {
		line, ok := p.Pick(false, "")
		require.True(t, ok)
		seen[line.Topic]++
	}
	// Topic first, so "b1" is as likely as both "a" lines together
	assert.InDelta(t, 1000, seen["a"], 150)
	assert.InDelta(t, 1000, seen["b"], 150)
}

func TestPickerPersonality(t *testing.T) {
	d := &Dataset{
		Lines:         map[string][]string{"a": {"a1"}},
		Personalities: map[string][]string{"goose": {"HONK"}},
	}
	p := NewPicker(d, rand.New(rand.NewSource(1)))

	line, ok := p.Pick(true, "goose")
	require.True(t, ok)
	assert.Equal(t, Line{Topic: "goose", Text: "HONK"}, line)

	// Unknown skin falls back to random topics
	line, ok = p.Pick(true, "swan")
	require.True(t, ok)
	assert.Equal(t, "a1", line.Text)

	// Personality off ignores skin
	line, _ = p.Pick(false, "goose")
	assert.Equal(t, "a1", line.Text)
}

func TestPickerEmpty(t *testing.T) {
	p := NewPicker(&Dataset{}, rand.New(rand.NewSource(1)))
	_, ok := p.Pick(false, "")
	assert.False(t, ok)
}
