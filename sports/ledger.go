package sports

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

var ledgerHeader = []string{"Date", "Time", "Arena"}

// Ledger keeps arena bookings in memory and mirrors them to a CSV file.
// Every Add rewrites the whole file.
type Ledger struct {
	fs       afero.Fs
	path     string
	bookings []Booking
	validate *validator.Validate
	log      zerolog.Logger
}

// NewLedger returns an empty ledger backed by path on fsys. Call LoadAll to
// read existing bookings.
func NewLedger(fsys afero.Fs, path string, log zerolog.Logger) *Ledger {
	return &Ledger{
		fs:       fsys,
		path:     path,
		validate: newValidator(),
		log:      log.With().Str("component", "ledger").Str("path", path).Logger(),
	}
}

// Add validates the booking, appends it and rewrites the backing file. On
// any failure the ledger is left as it was.
func (l *Ledger) Add(date, time, arena string) (Booking, error) {
	b := Booking{Date: date, Time: time, Arena: arena}
	if err := check(l.validate, b); err != nil {
		return Booking{}, err
	}

	l.bookings = append(l.bookings, b)
	if err := l.save(); err != nil {
		l.bookings = l.bookings[:len(l.bookings)-1]
		return Booking{}, fmt.Errorf("save bookings: %w", err)
	}
	l.log.Info().Str("date", date).Str("time", time).Str("arena", arena).Msg("booking added")
	return b, nil
}

// LoadAll replaces the in-memory bookings with the contents of the backing
// file. A missing file means no bookings yet; an unreadable or malformed
// file is logged and treated the same way.
func (l *Ledger) LoadAll() ([]Booking, error) {
	data, err := afero.ReadFile(l.fs, l.path)
	if errors.Is(err, fs.ErrNotExist) {
		l.bookings = nil
		return l.Bookings(), nil
	}
	if err != nil {
		l.log.Warn().Err(err).Msg("cannot read bookings, starting empty")
		l.bookings = nil
		return l.Bookings(), nil
	}

	bookings, err := decodeBookings(bytes.NewReader(data))
	if err != nil {
		l.log.Warn().Err(err).Msg("malformed bookings file, starting empty")
		l.bookings = nil
		return l.Bookings(), nil
	}
	l.bookings = bookings
	return l.Bookings(), nil
}

// Bookings returns a copy of the bookings currently held.
func (l *Ledger) Bookings() []Booking {
	out := make([]Booking, len(l.bookings))
	copy(out, l.bookings)
	return out
}

// Arenas returns the venues accepted by Add.
func (l *Ledger) Arenas() []string { return Arenas() }

func (l *Ledger) save() error {
	var buf bytes.Buffer
	if err := encodeBookings(&buf, l.bookings); err != nil {
		return err
	}
	return afero.WriteFile(l.fs, l.path, buf.Bytes(), 0o644)
}

func encodeBookings(w io.Writer, bookings []Booking) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ledgerHeader); err != nil {
		return err
	}
	for _, b := range bookings {
		if err := writer.Write([]string{b.Date, b.Time, b.Arena}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// decodeBookings reads rows by header name, so column order in the file does
// not matter.
func decodeBookings(r io.Reader) ([]Booking, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[name] = i
	}
	for _, name := range ledgerHeader {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	bookings := make([]Booking, 0, len(records)-1)
	for _, rec := range records[1:] {
		bookings = append(bookings, Booking{
			Date:  rec[index["Date"]],
			Time:  rec[index["Time"]],
			Arena: rec[index["Arena"]],
		})
	}
	return bookings, nil
}
