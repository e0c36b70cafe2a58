package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/palette-tools-mcp/internal/config"
)

// isolateEnv clears the variables loadRuntime reads so tests do not depend
// on the developer's shell.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvConfigPath, config.EnvLogLevel, config.EnvBaseColor, config.EnvScheme} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeHalves(t *testing.T) string {
	t.Helper()

	// Left half red, right half blue.
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			c := color.RGBA{255, 0, 0, 255}
			if x >= 20 {
				c = color.RGBA{0, 0, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "halves.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	originalVersion, originalCommit, originalDate := version, commit, date
	t.Cleanup(func() {
		version, commit, date = originalVersion, originalCommit, originalDate
	})

	version = "1.2.3"
	commit = "abcdef1"
	date = "2026-01-15"

	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	require.Contains(t, out, "palette-mcp 1.2.3")
	require.Contains(t, out, "abcdef1")
	require.Contains(t, out, "2026-01-15")
}

func TestPaletteCommandJSON(t *testing.T) {
	isolateEnv(t)

	out, _, err := execute(t, "", "palette", "#3b82f6", "--scheme", "triadic", "--json")
	require.NoError(t, err)

	var got map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, []string{"#3b82f6", "#f63b82", "#82f63b"}, got["triadic"])
}

func TestPaletteCommandAllSchemes(t *testing.T) {
	isolateEnv(t)

	out, _, err := execute(t, "", "palette", "--all", "--json")
	require.NoError(t, err)

	var got map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 5)
	require.Equal(t, []string{"#cddffd", "#84b1f9", "#3b82f6", "#0a59da", "#073b91"}, got["monochromatic"])
}

func TestPaletteCommandSwatches(t *testing.T) {
	isolateEnv(t)

	out, _, err := execute(t, "", "palette", "#3b82f6")
	require.NoError(t, err)
	require.Contains(t, out, "complementary  #3b82f6")
	require.Contains(t, out, "#f6af3b")
}

func TestPaletteCommandUsesEnvironment(t *testing.T) {
	isolateEnv(t)
	t.Setenv(config.EnvBaseColor, "#ff0000")
	t.Setenv(config.EnvScheme, "triadic")

	out, _, err := execute(t, "", "palette", "--json")
	require.NoError(t, err)
	require.Contains(t, out, `"#00ff00"`)
}

func TestPaletteCommandUsesConfigFile(t *testing.T) {
	isolateEnv(t)

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("palette:\n  base: \"#ff0000\"\n  scheme: analogous\n"), 0o600))

	out, _, err := execute(t, "", "--config", path, "palette", "--json")
	require.NoError(t, err)

	var got map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, []string{"#ff0000", "#ff8000", "#ff0080"}, got["analogous"])
}

func TestInvalidConfigFails(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "", "--log-level", "chatty", "palette")
	var ve *config.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestPickCommand(t *testing.T) {
	isolateEnv(t)
	path := writeHalves(t)

	out, _, err := execute(t, "", "pick", path, "--x", "30", "--y", "5", "--json")
	require.NoError(t, err)

	var got pickOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, "#0000ff", got.Picked.Hex)
	require.Equal(t, 30, got.Picked.X)
	require.Equal(t, "blue", got.Info.Name)
	require.Equal(t, []string{"#0000ff", "#ffff00"}, got.Palette)
}

func TestPickCommandFitMapsIntoScaledBuffer(t *testing.T) {
	isolateEnv(t)
	path := writeHalves(t)

	cfgPath := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("display:\n  max_width: 20\n  max_height: 20\n"), 0o600))

	out, _, err := execute(t, "", "--config", cfgPath, "pick", path, "--x", "2", "--y", "2", "--fit", "--json")
	require.NoError(t, err)

	var got pickOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, 20, got.Surface.Width)
	require.Equal(t, 10, got.Surface.Height)
	require.Equal(t, 1, got.Picked.X)
	require.Equal(t, 1, got.Picked.Y)
	require.Equal(t, "#ff0000", got.Picked.Hex)
}

func TestPickCommandMissingFile(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "", "pick", filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}

func TestServeCommand(t *testing.T) {
	isolateEnv(t)

	in := `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"color_complementary","arguments":{"color":"#3b82f6"}}}` + "\n"
	out, _, err := execute(t, in, "serve")
	require.NoError(t, err)
	require.Contains(t, out, `"id":7`)
	require.Contains(t, out, "#f6af3b")
}

func TestRootCommandServesByDefault(t *testing.T) {
	isolateEnv(t)

	out, logs, err := execute(t, `{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n", "--log-level", "debug")
	require.NoError(t, err)
	require.Contains(t, out, `"id":1`)
	require.Contains(t, logs, "serving MCP on stdio")
}

func TestPaletteCommandWritesPNG(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "strip.png")

	_, stderr, err := execute(t, "", "palette", "#ff0000", "-s", "triadic", "--png", path, "--size", "10")
	require.NoError(t, err)
	require.Contains(t, stderr, "wrote "+path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 30, 10), img.Bounds())

	r, g, b, _ := img.At(15, 5).RGBA()
	require.Equal(t, [3]uint32{0, 0xffff, 0}, [3]uint32{r, g, b})
}

func TestPaletteCommandRejectsPNGWithAll(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "", "palette", "--all", "--png", filepath.Join(t.TempDir(), "x.png"))
	require.Error(t, err)
}
