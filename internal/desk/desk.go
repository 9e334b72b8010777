// Package desk implements the check-in and check-out operations performed at
// the drop-off counter.
package desk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/dropoff/internal/barcode"
	"github.com/five82/dropoff/internal/ledger"
	"github.com/five82/dropoff/internal/receipt"
	"github.com/five82/dropoff/internal/ticket"
)

var (
	ErrMissingFields      = errors.New("please fill all fields")
	ErrMissingID          = errors.New("please enter the item ID")
	ErrInvalidID          = errors.New("item ID cannot contain path separators")
	ErrInvalidPickupHours = errors.New("pickup hours must be a positive whole number")
	ErrUnprintableID      = errors.New("item ID cannot be printed as a barcode")
)

// DefaultPickupHours is used when Options.PickupHours is not positive.
const DefaultPickupHours = 24

// Options configure a Service.
type Options struct {
	Ledger      *ledger.Ledger
	ReceiptsDir string
	ShopName    string
	PickupHours int
	Logger      *slog.Logger
	Now         func() time.Time
	// OnPickupHours is called after SetPickupHours accepts a new value.
	OnPickupHours func(hours int) error
}

// Intake is what the clerk types on the check-in form.
type Intake struct {
	Name        string
	Phone       string
	BatterySize string
}

// CheckInResult describes the row written and the files produced.
type CheckInResult struct {
	Record      ledger.CheckIn
	PickupAt    time.Time
	BarcodePath string
	ReceiptPath string
}

// CheckOutResult describes a completed check-out.
type CheckOutResult struct {
	Record       ledger.CheckOut
	Known        bool // a matching check-in exists
	CheckIn      ledger.CheckIn
	ReceiptPath  string
	CustomerPath string
}

// Service performs desk operations against one ledger and receipts directory.
type Service struct {
	ledger      *ledger.Ledger
	receiptsDir string
	printer     receipt.Printer
	logger      *slog.Logger
	now         func() time.Time
	onPickup    func(int) error

	mu          sync.RWMutex
	pickupHours int
}

// New validates opts and returns a Service.
func New(opts Options) (*Service, error) {
	if opts.Ledger == nil {
		return nil, errors.New("desk requires a ledger")
	}
	dir := strings.TrimSpace(opts.ReceiptsDir)
	if dir == "" {
		dir = filepath.Join(opts.Ledger.Dir(), "receipts")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	hours := opts.PickupHours
	if hours <= 0 {
		hours = DefaultPickupHours
	}
	return &Service{
		ledger:      opts.Ledger,
		receiptsDir: dir,
		printer:     receipt.New(opts.ShopName),
		logger:      logger,
		now:         now,
		onPickup:    opts.OnPickupHours,
		pickupHours: hours,
	}, nil
}

// Ledger exposes the underlying logs for read-only views.
func (s *Service) Ledger() *ledger.Ledger {
	return s.ledger
}

// ReceiptsDir returns where receipts and barcodes are written.
func (s *Service) ReceiptsDir() string {
	return s.receiptsDir
}

// PickupHours returns the current pickup window.
func (s *Service) PickupHours() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pickupHours
}

// SetPickupHours changes the pickup window used for new check-ins.
func (s *Service) SetPickupHours(hours int) error {
	if hours <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPickupHours, hours)
	}
	if s.onPickup != nil {
		if err := s.onPickup(hours); err != nil {
			return fmt.Errorf("save pickup hours: %w", err)
		}
	}
	s.mu.Lock()
	s.pickupHours = hours
	s.mu.Unlock()
	s.logger.Info("pickup window updated", "hours", hours)
	return nil
}

// CheckIn records a drop-off and produces its barcode and receipt.
func (s *Service) CheckIn(ctx context.Context, in Intake) (CheckInResult, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	size := strings.TrimSpace(in.BatterySize)
	if name == "" || phone == "" || size == "" {
		return CheckInResult{}, ErrMissingFields
	}
	if err := ctx.Err(); err != nil {
		return CheckInResult{}, err
	}

	now := s.now()
	rec := ledger.CheckIn{
		Name:        name,
		Phone:       phone,
		BatterySize: size,
		ID:          ticket.New(size, name, now),
		Timestamp:   now.Truncate(time.Second),
	}
	if !ticket.Valid(rec.ID) {
		return CheckInResult{}, fmt.Errorf("battery size %q: %w", size, ErrInvalidID)
	}
	logger := s.logger.With("op", "checkin", "request_id", uuid.NewString(), "id", rec.ID)

	// Render before touching the ledger so a rejected ID leaves no row behind.
	code, err := barcode.Render(rec.ID, barcode.DefaultWidth, barcode.DefaultHeight)
	if err != nil {
		logger.Warn("check-in rejected", "error", err)
		return CheckInResult{}, fmt.Errorf("%w: %v", ErrUnprintableID, err)
	}

	if err := s.ledger.AppendCheckIn(rec); err != nil {
		logger.Error("check-in append failed", "error", err)
		return CheckInResult{}, fmt.Errorf("record check-in: %w", err)
	}

	res := CheckInResult{
		Record:      rec,
		PickupAt:    now.Add(time.Duration(s.PickupHours()) * time.Hour),
		BarcodePath: filepath.Join(s.receiptsDir, "barcode_"+rec.ID+".png"),
		ReceiptPath: filepath.Join(s.receiptsDir, "checkin_receipt_"+rec.ID+".pdf"),
	}
	if err := barcode.SavePNG(res.BarcodePath, code); err != nil {
		logger.Error("barcode render failed", "error", err)
		return res, fmt.Errorf("render barcode: %w", err)
	}
	slip := receipt.CheckIn{
		Name:        rec.Name,
		Phone:       rec.Phone,
		BatterySize: rec.BatterySize,
		ID:          rec.ID,
		Timestamp:   rec.Timestamp,
		PickupAt:    res.PickupAt,
		BarcodePath: res.BarcodePath,
	}
	if err := receipt.SaveFile(res.ReceiptPath, func(w io.Writer) error {
		return s.printer.WriteCheckIn(w, slip)
	}); err != nil {
		logger.Error("check-in receipt failed", "error", err)
		return res, fmt.Errorf("write check-in receipt: %w", err)
	}

	logger.Info("battery checked in",
		"size", rec.BatterySize,
		"pickup_at", res.PickupAt.Format(ledger.TimeLayout),
		"receipt", res.ReceiptPath,
	)
	return res, nil
}

// CheckOut records a pickup and produces the employee and customer copies.
// IDs with no matching check-in are still accepted and reported as unknown.
func (s *Service) CheckOut(ctx context.Context, id string) (CheckOutResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CheckOutResult{}, ErrMissingID
	}
	if !ticket.Valid(id) {
		return CheckOutResult{}, ErrInvalidID
	}
	if err := ctx.Err(); err != nil {
		return CheckOutResult{}, err
	}
	logger := s.logger.With("op", "checkout", "request_id", uuid.NewString(), "id", id)

	prior, known, err := s.ledger.Find(id)
	if err != nil {
		// A damaged check-in log must not block a pickup.
		logger.Warn("check-in lookup failed", "error", err)
	}
	if !known {
		logger.Warn("checking out an ID with no check-in record")
	}

	rec := ledger.CheckOut{ID: id, Timestamp: s.now().Truncate(time.Second)}
	if err := s.ledger.AppendCheckOut(rec); err != nil {
		logger.Error("check-out append failed", "error", err)
		return CheckOutResult{}, fmt.Errorf("record check-out: %w", err)
	}

	res := CheckOutResult{
		Record:       rec,
		Known:        known,
		CheckIn:      prior,
		ReceiptPath:  filepath.Join(s.receiptsDir, "checkout_receipt_"+id+".pdf"),
		CustomerPath: filepath.Join(s.receiptsDir, "checkout_customer_copy_"+id+".pdf"),
	}
	slip := receipt.CheckOut{ID: id, Timestamp: rec.Timestamp}
	if err := receipt.SaveFile(res.ReceiptPath, func(w io.Writer) error {
		return s.printer.WriteCheckOut(w, slip)
	}); err != nil {
		logger.Error("check-out receipt failed", "error", err)
		return res, fmt.Errorf("write check-out receipt: %w", err)
	}
	if err := receipt.SaveFile(res.CustomerPath, func(w io.Writer) error {
		return s.printer.WriteCustomerCopy(w, slip)
	}); err != nil {
		logger.Error("customer copy failed", "error", err)
		return res, fmt.Errorf("write customer copy: %w", err)
	}

	logger.Info("battery checked out", "known", known, "receipt", res.ReceiptPath)
	return res, nil
}

// Export copies one of the logs to dest.
func (s *Service) Export(kind ledger.Kind, dest string) error {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return errors.New("export destination is empty")
	}
	if err := s.ledger.Export(kind, dest); err != nil {
		s.logger.Warn("export failed", "kind", string(kind), "dest", dest, "error", err)
		return err
	}
	s.logger.Info("log exported", "kind", string(kind), "dest", dest)
	return nil
}
