// Package barcode renders ticket IDs as Code128 images.
package barcode

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// Default output size in pixels for receipt barcodes.
const (
	DefaultWidth  = 400
	DefaultHeight = 120
)

var (
	// ErrEmpty is returned when asked to encode an empty string.
	ErrEmpty = errors.New("barcode data is empty")
	// ErrUnencodable is returned for data outside the Code128 character set,
	// such as accented letters or typographic dashes.
	ErrUnencodable = errors.New("data cannot be encoded as Code128")
)

// Render encodes data as Code128 scaled to width x height. The width grows to
// the symbol's natural width when it would otherwise be too narrow to scale.
func Render(data string, width, height int) (image.Image, error) {
	if data == "" {
		return nil, ErrEmpty
	}
	code, err := code128.Encode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnencodable, data, err)
	}
	if natural := code.Bounds().Dx(); width < natural {
		width = natural
	}
	if height <= 0 {
		height = DefaultHeight
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, fmt.Errorf("scale barcode: %w", err)
	}
	return scaled, nil
}

// WritePNG renders data at the default size and writes it to path.
func WritePNG(path, data string) error {
	img, err := Render(data, DefaultWidth, DefaultHeight)
	if err != nil {
		return err
	}
	return SavePNG(path, img)
}

// SavePNG writes an already rendered barcode to path.
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create barcode dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create barcode file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		_ = file.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return file.Close()
}
