// Package export writes the surface out as an image file.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// Filename is the name every PNG export is saved under.
const Filename = "drawing.png"

// EncodePNG writes img to w as a lossless PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}
	return nil
}

// SaveFile writes img to dir/drawing.png, replacing any earlier export,
// and returns the path written.
func SaveFile(dir string, img image.Image) (string, error) {
	path := filepath.Join(dir, Filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export: close %s: %w", path, err)
	}
	return path, nil
}
