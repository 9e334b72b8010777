// Package receipt lays out the PDF slips handed to customers and kept by staff.
package receipt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// DefaultShop is the heading printed when no shop name is configured.
const DefaultShop = "AABCMS"

// TimeLayout matches the ledger timestamp format.
const TimeLayout = "2006-01-02 15:04:05"

const (
	lineWidth   = 200.0
	lineHeight  = 10.0
	barcodeX    = 10.0
	barcodeW    = 100.0
	fontFamily  = "Arial"
	fontSize    = 12.0
	signatureLn = "Customer Signature: ____________________________"
)

// CheckIn carries everything printed on a check-in receipt.
type CheckIn struct {
	Name        string
	Phone       string
	BatterySize string
	ID          string
	Timestamp   time.Time
	PickupAt    time.Time
	BarcodePath string // PNG placed under the text block; optional
}

// CheckOut carries the fields printed on both check-out copies.
type CheckOut struct {
	ID        string
	Timestamp time.Time
}

// Printer renders receipts with a fixed shop heading.
type Printer struct {
	Shop string

	plain bool // skip stream compression so tests can read the text
}

// New returns a Printer for shop, falling back to DefaultShop.
func New(shop string) Printer {
	shop = strings.TrimSpace(shop)
	if shop == "" {
		shop = DefaultShop
	}
	return Printer{Shop: shop}
}

// WriteCheckIn renders the check-in receipt to w.
func (p Printer) WriteCheckIn(w io.Writer, r CheckIn) error {
	doc := p.page("Check In Receipt")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	line(doc, tr, "Name: "+r.Name)
	line(doc, tr, "Phone: "+r.Phone)
	line(doc, tr, "Battery Size: "+r.BatterySize)
	line(doc, tr, "Unique ID: "+r.ID)
	line(doc, tr, "Timestamp: "+r.Timestamp.Format(TimeLayout))
	line(doc, tr, "Pickup Time: "+r.PickupAt.Format(TimeLayout))
	if r.BarcodePath != "" {
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		doc.ImageOptions(r.BarcodePath, barcodeX, doc.GetY(), barcodeW, 0, false, opts, 0, "")
	}
	return finish(doc, w)
}

// WriteCheckOut renders the employee copy, which carries a signature line.
func (p Printer) WriteCheckOut(w io.Writer, r CheckOut) error {
	doc := p.page("Check Out Receipt")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	line(doc, tr, "Item ID: "+r.ID)
	line(doc, tr, "Timestamp: "+r.Timestamp.Format(TimeLayout))
	doc.Ln(lineHeight)
	line(doc, tr, signatureLn)
	return finish(doc, w)
}

// WriteCustomerCopy renders the copy kept by the customer at pickup.
func (p Printer) WriteCustomerCopy(w io.Writer, r CheckOut) error {
	doc := p.page("Customer Copy")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	line(doc, tr, "Item ID: "+r.ID)
	line(doc, tr, "Timestamp: "+r.Timestamp.Format(TimeLayout))
	return finish(doc, w)
}

// SaveFile creates path and streams a receipt produced by render into it.
func SaveFile(path string, render func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create receipt dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create receipt: %w", err)
	}
	if err := render(file); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return err
	}
	return file.Close()
}

func (p Printer) page(title string) *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(!p.plain)
	doc.SetTitle(p.Shop+" - "+title, true)
	doc.AddPage()
	doc.SetFont(fontFamily, "", fontSize)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.CellFormat(lineWidth, lineHeight, tr(p.Shop+" - "+title), "", 1, "C", false, 0, "")
	doc.Ln(lineHeight)
	return doc
}

func line(doc *fpdf.Fpdf, tr func(string) string, text string) {
	doc.CellFormat(lineWidth, lineHeight, tr(text), "", 1, "L", false, 0, "")
}

func finish(doc *fpdf.Fpdf, w io.Writer) error {
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
