package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░   0%", ProgressBar(0, 0, 10))
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "██████████ 100%", ProgressBar(3, 3, 10))
	// width is clamped to a minimum of 5
	assert.Equal(t, "█████ 100%", ProgressBar(1, 1, 1))
}

func TestSetThemeFallsBackToClassic(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic", false) })

	SetTheme("does-not-exist", false)
	assert.Equal(t, "classic", Current().Name)
	assert.Equal(t, "☑", Current().BoxChecked)

	SetTheme("mono", false)
	assert.Equal(t, "[x]", Current().BoxChecked)
	assert.Equal(t, "[ ]", Current().BoxUnchecked)
}

func TestNoColorKeepsSymbols(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic", false) })

	SetTheme("neon", true)
	th := Current()
	assert.Equal(t, "◼", th.BoxChecked)
	assert.Equal(t, "plain", th.Success.Render("plain"))
}

func TestPanelFramesEveryLine(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic", false) })
	SetTheme("mono", false)

	out := Panel([]string{"first", "second line"})
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "+"))
	assert.Contains(t, lines[1], "first")
	assert.Contains(t, lines[2], "second line")
}

func TestOKAndFail(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic", false) })
	SetTheme("mono", false)

	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "nope")
	assert.Equal(t, "✔ added\n✖ nope\n", buf.String())
}

func TestCounts(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic", false) })
	SetTheme("mono", false)

	assert.Equal(t, "x 1  - 2  Total 3", Counts(1, 3))
}
