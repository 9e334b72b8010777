// Package ledger persists check-in and check-out events as append-only CSV logs.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// TimeLayout is the timestamp format stored in both logs.
const TimeLayout = "2006-01-02 15:04:05"

const (
	checkInFile  = "checkin.csv"
	checkOutFile = "checkout.csv"

	checkInColumns  = 5
	checkOutColumns = 2
)

// Kind selects one of the two logs.
type Kind string

const (
	KindCheckIn  Kind = "checkin"
	KindCheckOut Kind = "checkout"
)

var (
	// ErrNoRecords is returned when exporting a log that has never been written.
	ErrNoRecords = errors.New("no records have been logged yet")
	// ErrUnknownKind is returned for a Kind other than checkin or checkout.
	ErrUnknownKind = errors.New("unknown log kind")
)

// CheckIn is one row of checkin.csv.
type CheckIn struct {
	Name        string
	Phone       string
	BatterySize string
	ID          string
	Timestamp   time.Time
}

// CheckOut is one row of checkout.csv.
type CheckOut struct {
	ID        string
	Timestamp time.Time
}

// Ledger reads and appends the logs kept in a single data directory.
type Ledger struct {
	dir string
}

// Open returns a ledger rooted at dir, creating the directory if needed.
func Open(dir string) (*Ledger, error) {
	if dir == "" {
		return nil, errors.New("ledger requires a data directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Ledger{dir: dir}, nil
}

// Dir returns the data directory.
func (l *Ledger) Dir() string {
	return l.dir
}

// Path returns the file backing the given log.
func (l *Ledger) Path(kind Kind) (string, error) {
	switch kind {
	case KindCheckIn:
		return filepath.Join(l.dir, checkInFile), nil
	case KindCheckOut:
		return filepath.Join(l.dir, checkOutFile), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// AppendCheckIn writes a single check-in row.
func (l *Ledger) AppendCheckIn(rec CheckIn) error {
	return l.append(KindCheckIn, []string{
		rec.Name,
		rec.Phone,
		rec.BatterySize,
		rec.ID,
		rec.Timestamp.Format(TimeLayout),
	})
}

// AppendCheckOut writes a single check-out row.
func (l *Ledger) AppendCheckOut(rec CheckOut) error {
	return l.append(KindCheckOut, []string{rec.ID, rec.Timestamp.Format(TimeLayout)})
}

func (l *Ledger) append(kind Kind, row []string) error {
	path, err := l.Path(kind)
	if err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = lock.Unlock() }()

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(row); err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = file.Close()
		return fmt.Errorf("flush %s: %w", filepath.Base(path), err)
	}
	return file.Close()
}

// CheckIns returns every check-in row in file order.
func (l *Ledger) CheckIns() ([]CheckIn, error) {
	rows, err := l.read(KindCheckIn, checkInColumns)
	if err != nil {
		return nil, err
	}
	out := make([]CheckIn, 0, len(rows))
	for i, row := range rows {
		ts, err := parseTime(row[4])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", checkInFile, i+1, err)
		}
		out = append(out, CheckIn{
			Name:        row[0],
			Phone:       row[1],
			BatterySize: row[2],
			ID:          row[3],
			Timestamp:   ts,
		})
	}
	return out, nil
}

// CheckOuts returns every check-out row in file order.
func (l *Ledger) CheckOuts() ([]CheckOut, error) {
	rows, err := l.read(KindCheckOut, checkOutColumns)
	if err != nil {
		return nil, err
	}
	out := make([]CheckOut, 0, len(rows))
	for i, row := range rows {
		ts, err := parseTime(row[1])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", checkOutFile, i+1, err)
		}
		out = append(out, CheckOut{ID: row[0], Timestamp: ts})
	}
	return out, nil
}

// Outstanding returns check-ins that have no matching check-out, oldest first.
func (l *Ledger) Outstanding() ([]CheckIn, error) {
	ins, err := l.CheckIns()
	if err != nil {
		return nil, err
	}
	outs, err := l.CheckOuts()
	if err != nil {
		return nil, err
	}
	return OutstandingOf(ins, outs), nil
}

// OutstandingOf returns the check-ins in ins whose ID has no check-out in outs,
// in ledger order.
func OutstandingOf(ins []CheckIn, outs []CheckOut) []CheckIn {
	done := make(map[string]struct{}, len(outs))
	for _, o := range outs {
		done[o.ID] = struct{}{}
	}
	open := make([]CheckIn, 0, len(ins))
	for _, in := range ins {
		if _, ok := done[in.ID]; ok {
			continue
		}
		open = append(open, in)
	}
	return open
}

// Find returns the most recent check-in recorded under id.
func (l *Ledger) Find(id string) (CheckIn, bool, error) {
	ins, err := l.CheckIns()
	if err != nil {
		return CheckIn{}, false, err
	}
	for i := len(ins) - 1; i >= 0; i-- {
		if ins[i].ID == id {
			return ins[i], true, nil
		}
	}
	return CheckIn{}, false, nil
}

// Export copies the raw log to dest, creating parent directories as needed.
func (l *Ledger) Export(kind Kind, dest string) error {
	src, err := l.Path(kind)
	if err != nil {
		return err
	}
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("export %s: %w", kind, ErrNoRecords)
		}
		return fmt.Errorf("stat %s: %w", filepath.Base(src), err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := copyFile(src, dest); err != nil {
		return fmt.Errorf("export %s: %w", kind, err)
	}
	return nil
}

func (l *Ledger) read(kind Kind, columns int) ([][]string, error) {
	path, err := l.Path(kind)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = columns
	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseTime(value string) (time.Time, error) {
	ts, err := time.ParseInLocation(TimeLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return ts, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
