package barcode

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRender_DefaultSize(t *testing.T) {
	img, err := Render("Group 24-JD-7654", DefaultWidth, DefaultHeight)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != DefaultWidth || b.Dy() != DefaultHeight {
		t.Fatalf("bounds = %dx%d, want %dx%d", b.Dx(), b.Dy(), DefaultWidth, DefaultHeight)
	}
}

func TestRender_GrowsForLongData(t *testing.T) {
	data := strings.Repeat("Custom Marine Deep Cycle ", 4) + "-X-1"
	img, err := Render(data, 50, 40)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.Bounds().Dx() <= 50 {
		t.Fatalf("width = %d, want it widened past 50", img.Bounds().Dx())
	}
}

func TestRender_Empty(t *testing.T) {
	if _, err := Render("", 10, 10); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Render(\"\") error = %v, want ErrEmpty", err)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipts", "barcode_AA-JD-1.png")
	if err := WritePNG(path, "AA-JD-1"); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != DefaultWidth {
		t.Fatalf("width = %d, want %d", img.Bounds().Dx(), DefaultWidth)
	}
}

func TestRender_Unencodable(t *testing.T) {
	for _, data := range []string{"Group 24-ÉZ-3456", "12V–7Ah-JD-1"} {
		if _, err := Render(data, DefaultWidth, DefaultHeight); !errors.Is(err, ErrUnencodable) {
			t.Fatalf("Render(%q) error = %v, want ErrUnencodable", data, err)
		}
	}
}
