package output_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottokeeper/lottokeeper/internal/output"
	keepererr "github.com/lottokeeper/lottokeeper/pkg/errors"
)

// failingWriter implements io.Writer but always returns an error.
type failingWriter struct{}

func (failingWriter) Write(_ []byte) (n int, err error) {
	//nolint:err113 // Test error, not wrapped
	return 0, errors.New("write failed")
}

// TestFormatError_NilError tests that nil errors produce no output.
func TestFormatError_NilError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format output.Format
	}{
		{"JSON format", output.FormatJSON},
		{"Text format", output.FormatText},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := output.FormatError(&buf, nil, tc.format)
			require.NoError(t, err)
			assert.Empty(t, buf.String())
		})
	}
}

func TestFormatError_GenericError_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	//nolint:err113 // Test error, not wrapped
	err := output.FormatError(&buf, errors.New("plain failure"), output.FormatJSON)
	require.NoError(t, err)

	var result output.ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	assert.Equal(t, "GENERAL_ERROR", result.Error.Code)
	assert.Equal(t, "plain failure", result.Error.Message)
	assert.Equal(t, keepererr.ExitGeneral, result.Error.ExitCode)
	assert.Empty(t, result.Error.Suggestion)
}

func TestFormatError_GenericError_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	//nolint:err113 // Test error, not wrapped
	err := output.FormatError(&buf, errors.New("plain failure"), output.FormatText)
	require.NoError(t, err)

	assert.Equal(t, "Error: plain failure\n", buf.String())
}

func TestFormatError_KeeperError_AllFields_JSON(t *testing.T) {
	t.Parallel()

	kerr := keepererr.WithSuggestion(
		keepererr.WithDetails(keepererr.ErrInvalidSchedule, map[string]string{
			"schedule_time": "25:00",
			"expected":      "HH:MM in 24-hour form",
		}),
		"use a time like 14:00",
	)

	var buf bytes.Buffer
	require.NoError(t, output.FormatError(&buf, kerr, output.FormatJSON))

	var result output.ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	assert.Equal(t, "INVALID_SCHEDULE", result.Error.Code)
	assert.NotEmpty(t, result.Error.Message)
	assert.Equal(t, "25:00", result.Error.Details["schedule_time"])
	assert.Equal(t, "use a time like 14:00", result.Error.Suggestion)
	assert.Equal(t, keepererr.ExitInput, result.Error.ExitCode)
}

func TestFormatError_KeeperError_AllFields_Text(t *testing.T) {
	t.Parallel()

	kerr := keepererr.WithSuggestion(
		keepererr.WithDetails(keepererr.ErrInvalidSchedule, map[string]string{
			"schedule_time": "25:00",
		}),
		"use a time like 14:00",
	)

	var buf bytes.Buffer
	require.NoError(t, output.FormatError(&buf, kerr, output.FormatText))

	result := buf.String()
	assert.Contains(t, result, "Error: ")
	assert.Contains(t, result, "Details:")
	assert.Contains(t, result, "schedule_time: 25:00")
	assert.Contains(t, result, "Suggestion: use a time like 14:00")
}

func TestFormatError_NoDetails_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, output.FormatError(&buf, keepererr.ErrConfigNotFound, output.FormatText))

	result := buf.String()
	assert.Contains(t, result, "Error: ")
	assert.NotContains(t, result, "Details:")
	assert.NotContains(t, result, "Suggestion:")
}

func TestFormatError_WrappedKeeperError(t *testing.T) {
	t.Parallel()

	// A KeeperError hiding behind fmt-style wrapping still renders structured.
	wrapped := keepererr.Wrap(keepererr.ErrDecryptionFailed, "opening configuration")

	var buf bytes.Buffer
	require.NoError(t, output.FormatError(&buf, wrapped, output.FormatJSON))

	var result output.ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "DECRYPTION_FAILED", result.Error.Code)
	assert.Equal(t, keepererr.ExitAuth, result.Error.ExitCode)
}

func TestFormatError_DetailsSorted_Text(t *testing.T) {
	t.Parallel()

	details := map[string]string{
		"3_third":  "c",
		"1_first":  "a",
		"4_fourth": "d",
		"2_second": "b",
	}

	err := keepererr.WithDetails(keepererr.ErrInvalidInput, details)

	var buf bytes.Buffer
	require.NoError(t, output.FormatError(&buf, err, output.FormatText))

	result := buf.String()

	positions := make(map[string]int)
	for key := range details {
		positions[key] = strings.Index(result, key)
		assert.NotEqual(t, -1, positions[key], "key %s not found", key)
	}

	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i := 1; i < len(keys); i++ {
		assert.Less(t, positions[keys[i-1]], positions[keys[i]],
			"key %s should appear before %s", keys[i-1], keys[i])
	}
}

func TestFormatError_DetailsDeterminism_Text(t *testing.T) {
	t.Parallel()

	details := map[string]string{
		"zulu":    "last",
		"alpha":   "first",
		"charlie": "middle",
		"bravo":   "second",
	}

	outputs := make([]string, 5)
	for i := 0; i < 5; i++ {
		err := keepererr.WithDetails(keepererr.ErrInvalidNumbers, details)
		var buf bytes.Buffer
		require.NoError(t, output.FormatError(&buf, err, output.FormatText))
		outputs[i] = buf.String()
	}

	for i := 1; i < len(outputs); i++ {
		assert.Equal(t, outputs[0], outputs[i], "output %d differs from output 0", i)
	}
}

func TestFormatError_JSONIndentation(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, output.FormatError(&buf, keepererr.ErrConfigCorrupted, output.FormatJSON))

	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"error\""), "expected indented JSON")
}

func TestFormatError_UnicodeFields(t *testing.T) {
	t.Parallel()

	err := keepererr.WithDetails(keepererr.ErrValidation, map[string]string{
		"user_id": "복권왕",
	})

	var buf bytes.Buffer
	require.NoError(t, output.FormatError(&buf, err, output.FormatJSON))

	var result output.ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "복권왕", result.Error.Details["user_id"])
}

func TestFormatError_WriterError(t *testing.T) {
	t.Parallel()

	err := output.FormatError(failingWriter{}, keepererr.ErrGeneral, output.FormatText)
	assert.Error(t, err)
}

func TestFormatSuccess_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, output.FormatSuccess(&buf, "configuration saved", output.FormatJSON))

	var result map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "configuration saved", result["message"])
}

func TestFormatSuccess_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, output.FormatSuccess(&buf, "configuration saved", output.FormatText))
	assert.Equal(t, "configuration saved\n", buf.String())
}

func TestFormatSuccess_WriterError(t *testing.T) {
	t.Parallel()

	err := output.FormatSuccess(failingWriter{}, "message", output.FormatText)
	assert.Error(t, err)
}
