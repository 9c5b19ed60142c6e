package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/testutil"
	"github.com/arthur-debert/wrench/pkg/types"
	"github.com/arthur-debert/wrench/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		name      string
		format    ui.Format
		expectErr bool
	}{
		{"terminal", ui.FormatTerminal, false},
		{"text", ui.FormatText, false},
		{"json", ui.FormatJSON, false},
		{"auto with buffer", ui.FormatAuto, false},
		{"invalid", ui.Format(999), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer, err := ui.NewRenderer(tt.format, &bytes.Buffer{})
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, renderer)
				assert.Contains(t, err.Error(), "unknown format")
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, renderer)
		})
	}
}

func sampleData() *types.AppData {
	u1 := testutil.UserEntry("/eve/tq/settings_Default/core_user_1.dat", "1")
	u1.RelativeTime = "2h ago"
	return testutil.AppData(nil, testutil.Profile("Default", u1))
}

func TestTextRenderer_Catalog(t *testing.T) {
	buf := &bytes.Buffer{}
	r, err := ui.NewRenderer(ui.FormatText, buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(sampleData()))
	out := buf.String()
	assert.Contains(t, out, "Tranquility (/eve/tq)")
	assert.Contains(t, out, "PROFILE")
	assert.Contains(t, out, "Default")
	assert.Contains(t, out, "2h ago")
	assert.NotContains(t, out, "\x1b[", "no escape codes in plain text")
}

func TestTextRenderer_EmptyAndMessages(t *testing.T) {
	buf := &bytes.Buffer{}
	r, err := ui.NewRenderer(ui.FormatText, buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult([]types.BackupEntry{}))
	require.NoError(t, r.RenderMessage("hello"))
	require.NoError(t, r.RenderError(errors.New(errors.ErrNotFound, "missing")))
	require.NoError(t, r.RenderResult(42))

	out := buf.String()
	assert.Contains(t, out, "No backups")
	assert.Contains(t, out, "hello\n")
	assert.Contains(t, out, "Error: ")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "42\n")
}

func TestTerminalRenderer_Catalog(t *testing.T) {
	buf := &bytes.Buffer{}
	r, err := ui.NewRenderer(ui.FormatTerminal, buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(sampleData()))
	assert.Contains(t, buf.String(), "Default")
}

func TestJSONRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	r, err := ui.NewRenderer(ui.FormatJSON, buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(sampleData()))
	var data types.AppData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	require.Len(t, data.Servers, 1)
	assert.Equal(t, "/eve/tq", data.Servers[0].Info.ServerPath)

	buf.Reset()
	require.NoError(t, r.RenderError(errors.New(errors.ErrNotFound, "missing").WithDetail("ref", "x")))
	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &obj))
	assert.Equal(t, "NOT_FOUND", obj["code"])
	assert.Equal(t, map[string]interface{}{"ref": "x"}, obj["details"])
}
