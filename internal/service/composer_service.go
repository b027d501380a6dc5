package service

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// Instagram square format.
const (
	canvasWidth  = 1080
	canvasHeight = 1080
	textMargin   = 50
	fontSize     = 40
	lineHeight   = 50
	shadowOffset = 2
	jpegQuality  = 95
)

type ImageComposer struct {
	contentDir string
	fontPath   string
}

func NewImageComposer(contentDir, fontPath string) *ImageComposer {
	return &ImageComposer{
		contentDir: contentDir,
		fontPath:   fontPath,
	}
}

// Compose renders text over a 1080x1080 image and saves it as a JPEG in the
// content directory, returning the output path. When sourcePath is empty or
// missing, a gradient canvas is synthesized instead. The gradient is seeded
// randomly on every call; backgrounds are decorative and need not be
// reproducible.
func (c *ImageComposer) Compose(text, sourcePath string) (string, error) {
	dc := gg.NewContext(canvasWidth, canvasHeight)

	if sourcePath != "" {
		if _, err := os.Stat(sourcePath); err == nil {
			img, err := imaging.Open(sourcePath)
			if err != nil {
				return "", fmt.Errorf("error opening source image: %w", err)
			}
			// Resize (not crop) to the square format.
			dc.DrawImage(imaging.Resize(img, canvasWidth, canvasHeight, imaging.Lanczos), 0, 0)
		} else {
			slog.Warn("source image not found, falling back to gradient canvas", "path", sourcePath)
			drawGradient(dc)
		}
	} else {
		drawGradient(dc)
	}

	if err := c.setFontFace(dc); err != nil {
		return "", fmt.Errorf("error loading font: %w", err)
	}

	drawWrappedText(dc, text)

	if err := os.MkdirAll(c.contentDir, 0o755); err != nil {
		return "", fmt.Errorf("error creating content directory: %w", err)
	}

	timestamp := time.Now().Format("20060102150405")
	outputPath := filepath.Join(c.contentDir, fmt.Sprintf("generated_post_%s.jpg", timestamp))

	if err := imaging.Save(dc.Image(), outputPath, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("error saving image: %w", err)
	}

	return outputPath, nil
}

func (c *ImageComposer) setFontFace(dc *gg.Context) error {
	if c.fontPath != "" {
		if err := dc.LoadFontFace(c.fontPath, fontSize); err == nil {
			return nil
		}
		slog.Warn("unable to load configured font, using embedded face", "path", c.fontPath)
	}

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: fontSize}))
	return nil
}

// drawGradient fills the canvas with a per-row gradient. Red and green sweep
// across the rows while blue interpolates between two random base values.
func drawGradient(dc *gg.Context) {
	blueTop := rand.Intn(256)
	blueBottom := rand.Intn(256)

	for y := 0; y < canvasHeight; y++ {
		r := y * 255 / canvasHeight
		g := (canvasHeight - y) * 255 / canvasHeight
		b := blueTop + (blueBottom-blueTop)*y/canvasHeight

		dc.SetRGB255(r, g, b)
		dc.DrawLine(0, float64(y), canvasWidth, float64(y))
		dc.SetLineWidth(1)
		dc.Stroke()
	}
}

func drawWrappedText(dc *gg.Context, text string) {
	lines := wrapText(dc, text, canvasWidth-2*textMargin)

	y := float64(canvasHeight)/2 - float64(len(lines))*lineHeight/2 + fontSize
	for _, line := range lines {
		w, _ := dc.MeasureString(line)
		x := (canvasWidth - w) / 2

		// Shadow pass first for legibility over arbitrary backgrounds.
		dc.SetRGB(0, 0, 0)
		dc.DrawString(line, x+shadowOffset, y+shadowOffset)
		dc.SetRGB(1, 1, 1)
		dc.DrawString(line, x, y)

		y += lineHeight
	}
}

// wrapText greedily packs words into lines that fit maxWidth. No hyphenation:
// a single word longer than the line gets a line of its own.
func wrapText(dc *gg.Context, text string, maxWidth float64) []string {
	var lines []string
	var line string

	for _, word := range strings.Fields(text) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if w, _ := dc.MeasureString(candidate); w <= maxWidth || line == "" {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
