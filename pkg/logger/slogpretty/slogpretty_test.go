package slogpretty

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONForProd(t *testing.T) {
	var buf bytes.Buffer

	log := NewLogger("prod", &buf)
	log.Debug("hidden")
	log.Info("report created", "report_id", 42)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "report created", entry["msg"])
	assert.EqualValues(t, 42, entry["report_id"])
}

func TestPrettyHandler_WritesAttrsAndGroups(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer

	log := NewLogger("local", &buf).With("op", "test").WithGroup("req")
	log.Info("hello", "id", "abc")

	out := buf.String()
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, `"op": "test"`)
	assert.Contains(t, out, `"req.id": "abc"`)
}
