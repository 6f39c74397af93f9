package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	DisableColors()
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", FormatBytes(0))
	assert.Equal(t, "1.5 kB", FormatBytes(1500))
	assert.Equal(t, "0 B", FormatBytes(-5))
}

func TestMessages(t *testing.T) {
	var buf bytes.Buffer
	SuccessMsg(&buf, "renamed %d files", 3)
	WarningMsg(&buf, "skipped %s", "notes.mkv")

	assert.Equal(t, "✓ renamed 3 files\n⚠ skipped notes.mkv\n", buf.String())
}

func TestSection_Plain(t *testing.T) {
	var buf bytes.Buffer
	Section(&buf, "Summary")
	assert.Equal(t, "\nSUMMARY\n=======\n", buf.String())
}

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable("FILE", "SEASON")
	tbl.AddRow("Show_S01E01.mkv", "S01")
	tbl.AddRow("Show_S02E10_Épilogue.mkv", "S02")
	tbl.Render(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "FILE                      SEASON", lines[0])
	assert.Equal(t, "Show_S01E01.mkv           S01", lines[2])
	assert.Equal(t, "Show_S02E10_Épilogue.mkv  S02", lines[3])
	assert.Equal(t, 2, tbl.Len())
}

func TestTable_Truncates(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable("NAME")
	tbl.SetMaxColumnWidth(5)
	tbl.AddRow("abcdefgh")
	tbl.Render(&buf)

	assert.Contains(t, buf.String(), "abcd…")
}
