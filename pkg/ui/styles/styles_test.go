package styles_test

import (
	"testing"

	"github.com/arthur-debert/wrench/pkg/types"
	"github.com/arthur-debert/wrench/pkg/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStyles(t *testing.T) {
	for _, name := range []string{
		"Header", "SubHeader", "Success", "Error", "Warning", "Info", "Muted", "Bold",
		"FilePath", "Source", "Target", "StatusNew", "StatusConflict", "StatusUnchanged", "Indent",
	} {
		assert.True(t, styles.Has(name), "style %s", name)
	}
	assert.True(t, styles.GetStyle("Header").GetBold())
}

func TestGetStyle_Unknown(t *testing.T) {
	assert.False(t, styles.Has("Nope"))
	assert.Equal(t, "x", styles.GetStyle("Nope").Render("x"))
}

func TestLoadStylesFromData(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, styles.LoadStyles("styles.yaml"))
	})

	err := styles.LoadStylesFromData([]byte(`
colors:
  red: {light: "#ff0000", dark: "#ff0000"}
styles:
  Alarm:
    bold: true
    foreground: red
`))
	require.NoError(t, err)
	assert.True(t, styles.Has("Alarm"))
	assert.False(t, styles.Has("Header"))

	assert.Error(t, styles.LoadStylesFromData([]byte("styles: [")))
	assert.True(t, styles.Has("Alarm"), "a parse failure keeps the registry")
}

func TestMergeStyles(t *testing.T) {
	merged := styles.MergeStyles("Bold", "FilePath")
	assert.True(t, merged.GetBold())
	assert.True(t, merged.GetItalic())
}

func TestServer(t *testing.T) {
	style := styles.Server(types.ServerInfo{ID: types.ServerSingularity})
	assert.True(t, style.GetBold())
}
