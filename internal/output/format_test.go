package output_test

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottokeeper/lottokeeper/internal/output"
)

func TestFormatter_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatJSON, &buf)

	data := map[string]string{"schedule_time": "14:00"}
	err := f.Print(data)
	require.NoError(t, err)

	var result map[string]string
	err = json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)
	assert.Equal(t, "14:00", result["schedule_time"])
}

func TestFormatter_Text(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText, &buf)

	err := f.Print("hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", buf.String())
}

func TestFormatter_TextStruct(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText, &buf)

	require.NoError(t, f.Print(struct{ N int }{7}))
	assert.Equal(t, "{7}\n", buf.String())
}

func TestFormatter_Printf(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText, &buf)

	err := f.Printf("count: %d\n", 3)
	require.NoError(t, err)
	assert.Equal(t, "count: 3\n", buf.String())
}

func TestFormatter_Println(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText, &buf)

	err := f.Println("line")
	require.NoError(t, err)
	assert.Equal(t, "line\n", buf.String())
}

func TestFormatter_IsJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	assert.True(t, output.NewFormatter(output.FormatJSON, &buf).IsJSON())
	assert.False(t, output.NewFormatter(output.FormatText, &buf).IsJSON())
	assert.False(t, output.NewFormatter(output.FormatAuto, &buf).IsJSON())
}

func TestFormatter_Accessors(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatJSON, &buf)

	assert.Equal(t, output.FormatJSON, f.Format())
	assert.Equal(t, &buf, f.Writer())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected output.Format
	}{
		{"json", output.FormatJSON},
		{"JSON", output.FormatJSON},
		{"  json  ", output.FormatJSON},
		{"text", output.FormatText},
		{"TEXT", output.FormatText},
		{"auto", output.FormatAuto},
		{"", output.FormatAuto},
		{"yaml", output.FormatAuto},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, output.ParseFormat(tc.input))
		})
	}
}

func TestDetectFormat_Explicit(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, output.FormatJSON))
	assert.Equal(t, output.FormatText, output.DetectFormat(&buf, output.FormatText))
}

func TestDetectFormat_NonTTY(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	// Non-TTY should default to JSON
	result := output.DetectFormat(&buf, output.FormatAuto)
	assert.Equal(t, output.FormatJSON, result)
}

func TestDetectFormat_TTY(t *testing.T) {
	// Skip if not running in a terminal
	if os.Getenv("TEST_TTY") == "" {
		t.Skip("Skipping TTY test - set TEST_TTY=1 to run")
	}

	result := output.DetectFormat(os.Stdout, output.FormatAuto)
	assert.Equal(t, output.FormatText, result)
}

func TestTable_Basic(t *testing.T) {
	t.Parallel()
	table := output.NewTable("File", "Label")
	table.AddRow("lotto_config_backup_manual_20250301_090000.json", "manual")
	table.AddRow("lotto_config_backup_pre_update_20250302_100000.json", "pre_update")

	var buf bytes.Buffer
	err := table.Render(&buf)
	require.NoError(t, err)

	result := buf.String()
	assert.Contains(t, result, "File")
	assert.Contains(t, result, "Label")
	assert.Contains(t, result, "manual")
	assert.Contains(t, result, "pre_update")
}

func TestTable_NoHeader(t *testing.T) {
	t.Parallel()
	table := output.NewTable("File", "Label")
	table.SetNoHeader(true)
	table.AddRow("foo", "bar")

	var buf bytes.Buffer
	err := table.Render(&buf)
	require.NoError(t, err)

	result := buf.String()
	assert.NotContains(t, result, "File")
	assert.NotContains(t, result, "---")
	assert.Contains(t, result, "foo")
}

func TestTable_ColumnAlignment(t *testing.T) {
	t.Parallel()
	table := output.NewTable("Short", "LongerHeader")
	table.AddRow("a", "b")
	table.AddRow("longer", "x")

	result := table.String()
	assert.Contains(t, result, "Short ")
	assert.Contains(t, result, "LongerHeader")
}

func TestTable_Empty(t *testing.T) {
	t.Parallel()
	table := output.NewTable()

	var buf bytes.Buffer
	require.NoError(t, table.Render(&buf))
	assert.Empty(t, buf.String())
}

func TestTable_RaggedRows(t *testing.T) {
	t.Parallel()
	table := output.NewTable("A", "B")
	table.AddRow("1")
	table.AddRow("1", "2", "3")

	result := table.String()
	lines := strings.Split(strings.TrimRight(result, "\n"), "\n")
	// Header, separator, two rows.
	assert.Len(t, lines, 4)
	assert.Contains(t, result, "3")
}

func TestTable_SetSeparator(t *testing.T) {
	t.Parallel()
	table := output.NewTable("A", "B")
	table.SetSeparator(" | ")
	table.AddRow("1", "2")

	assert.Contains(t, table.String(), "1 | 2")
}
