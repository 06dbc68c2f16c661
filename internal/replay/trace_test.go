package replay

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Veraticus/scanfield/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := `# scanner burst then a human
{"at_ms": 0, "op": "insert", "text": "&"}
{"at_ms": 3, "op": "insert", "text": "é\"'"}

{"at_ms": 40, "op": "delete"}
{"at_ms": 41, "op": "delete", "n": 2}
{"at_ms": 90, "op": "paste", "text": "(§"}
{"at_ms": 95, "op": "clear"}
`
	steps, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, steps, 6)

	assert.Equal(t, Step{Op: OpInsert, Text: "&", AtMillis: 0}, steps[0])
	assert.Equal(t, "é\"'", steps[1].Text)
	assert.Equal(t, Step{Op: OpDelete, AtMillis: 40}, steps[2])
	assert.Equal(t, 2, steps[3].N)
	assert.Equal(t, OpPaste, steps[4].Op)
	assert.Equal(t, OpClear, steps[5].Op)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "malformed json", input: `{"at_ms": 0, "op": "insert"`},
		{name: "unknown field", input: `{"at_ms": 0, "op": "clear", "key": "x"}`},
		{name: "unknown op", input: `{"at_ms": 0, "op": "press"}`},
		{name: "insert without text", input: `{"at_ms": 0, "op": "insert"}`},
		{name: "negative delete", input: `{"at_ms": 0, "op": "delete", "n": -1}`},
		{name: "negative time", input: `{"at_ms": -5, "op": "clear"}`},
		{name: "time goes backwards", input: "{\"at_ms\": 10, \"op\": \"clear\"}\n{\"at_ms\": 9, \"op\": \"clear\"}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidTrace)
		})
	}
}

func TestEncoder_RoundTripsThroughParse(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	steps := []Step{
		{Op: OpInsert, Text: "<&>", AtMillis: 0},
		{Op: OpDelete, N: 1, AtMillis: 12},
		{Op: OpClear, AtMillis: 30},
	}
	for _, s := range steps {
		require.NoError(t, enc.Encode(s))
	}
	assert.Contains(t, buf.String(), `"text":"<&>"`)

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, steps, parsed)
}

func TestEncoder_RejectsInvalidStep(t *testing.T) {
	var buf bytes.Buffer
	err := NewEncoder(&buf).Encode(Step{Op: "hold"})
	assert.ErrorIs(t, err, common.ErrInvalidTrace)
	assert.Zero(t, buf.Len())
}
