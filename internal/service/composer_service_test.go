package service

import (
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeGeneratesSquareJPEG(t *testing.T) {
	dir := t.TempDir()
	c := NewImageComposer(dir, "")

	path, err := c.Compose("Stay consistent and keep going", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "generated_post_"))
	assert.True(t, strings.HasSuffix(path, ".jpg"))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := jpeg.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, canvasWidth, img.Bounds().Dx())
	assert.Equal(t, canvasHeight, img.Bounds().Dy())
}

func TestComposeMissingSourceFallsBackToGradient(t *testing.T) {
	dir := t.TempDir()
	c := NewImageComposer(dir, "")

	path, err := c.Compose("caption text", filepath.Join(dir, "does-not-exist.jpg"))
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestComposeResizesSourceImage(t *testing.T) {
	dir := t.TempDir()

	// A small non-square source image.
	src := gg.NewContext(400, 300)
	src.SetRGB(0.2, 0.4, 0.6)
	src.Clear()
	sourcePath := filepath.Join(dir, "source.png")
	require.NoError(t, src.SavePNG(sourcePath))

	c := NewImageComposer(dir, "")
	path, err := c.Compose("caption text", sourcePath)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := jpeg.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, canvasWidth, img.Bounds().Dx())
	assert.Equal(t, canvasHeight, img.Bounds().Dy())
}

func TestComposeCreatesContentDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "content")
	c := NewImageComposer(dir, "")

	path, err := c.Compose("caption", "")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
}

func TestWrapText(t *testing.T) {
	dc := gg.NewContext(canvasWidth, canvasHeight)
	require.NoError(t, (&ImageComposer{}).setFontFace(dc))

	assert.Empty(t, wrapText(dc, "", 100))

	lines := wrapText(dc, "one two three four five six seven eight nine ten", 200)
	require.NotEmpty(t, lines)
	for _, line := range lines {
		w, _ := dc.MeasureString(line)
		if strings.Contains(line, " ") {
			assert.LessOrEqual(t, w, 200.0)
		}
	}
	assert.Equal(t, "one two three four five six seven eight nine ten",
		strings.Join(lines, " "), "wrapping must not drop words")

	// A single oversized word still gets its own line.
	long := wrapText(dc, "supercalifragilisticexpialidocious", 10)
	assert.Equal(t, []string{"supercalifragilisticexpialidocious"}, long)
}

func TestOverlayText(t *testing.T) {
	assert.Equal(t, "Keep going", OverlayText("Keep going #motivation #daily"))
	assert.Equal(t, "No hashtags here", OverlayText("No hashtags here"))
	assert.Equal(t, "", OverlayText("#onlytags #nothing"))
}
