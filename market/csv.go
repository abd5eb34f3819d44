package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"
)

const dateLayout = "2006-01-02"

// Load reads a daily price table from a CSV dataset.
//
// The expected layout is one row per trading day with a leading Date column
// and an "Open TICKER" / "Close TICKER" column pair per ticker:
//
//	Date,Open AAPL,Close AAPL,Open MSFT,Close MSFT
//	2024-01-02,185.64,185.14,373.86,370.87
//
// Datasets may be plain .csv, .csv.xz, or a .zip bundle containing a single
// CSV file.
func Load(path string) (*Table, error) {
	switch {
	case strings.HasSuffix(path, ".xz"):
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open dataset: %w", err)
		}
		defer f.Close()

		r, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open xz stream %s: %w", path, err)
		}
		return Read(r)

	case strings.HasSuffix(path, ".zip"):
		return loadZip(path)

	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open dataset: %w", err)
		}
		defer f.Close()
		return Read(f)
	}
}

// loadZip extracts a dataset bundle into a temp dir and loads the CSV found
// inside.
func loadZip(path string) (*Table, error) {
	dir, err := os.MkdirTemp("", "marketdata-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(path, dir); err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	var csvPath string
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".csv") {
			csvPath = p
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if csvPath == "" {
		return nil, fmt.Errorf("no CSV file found in %s", path)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses a price table from CSV content.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 3 || !strings.EqualFold(strings.TrimSpace(header[0]), "date") {
		return nil, fmt.Errorf("bad header: first column must be Date, got %q", strings.Join(header, ","))
	}

	type colRef struct {
		ticker string
		open   bool
	}
	cols := make([]colRef, 0, len(header)-1)
	opens := map[string]bool{}
	closes := map[string]bool{}

	for _, cell := range header[1:] {
		field, ticker, ok := strings.Cut(strings.TrimSpace(cell), " ")
		if !ok {
			return nil, fmt.Errorf("bad header column %q: want \"Open TICKER\" or \"Close TICKER\"", cell)
		}
		switch strings.ToLower(field) {
		case "open":
			cols = append(cols, colRef{ticker: ticker, open: true})
			opens[ticker] = true
		case "close":
			cols = append(cols, colRef{ticker: ticker, open: false})
			closes[ticker] = true
		default:
			return nil, fmt.Errorf("bad header column %q: unknown field %q", cell, field)
		}
	}
	for ticker := range opens {
		if !closes[ticker] {
			return nil, fmt.Errorf("ticker %s has an Open column but no Close column", ticker)
		}
	}
	for ticker := range closes {
		if !opens[ticker] {
			return nil, fmt.Errorf("ticker %s has a Close column but no Open column", ticker)
		}
	}

	var dates []time.Time
	bars := make(map[string][]Bar, len(opens))

	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+1, err)
		}
		row++

		d, err := time.Parse(dateLayout, strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad date %q: %w", row, rec[0], err)
		}
		dates = append(dates, d)

		for ticker := range opens {
			bars[ticker] = append(bars[ticker], Bar{})
		}
		for i, ref := range cols {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad value %q for %s: %w", row, rec[i+1], header[i+1], err)
			}
			b := &bars[ref.ticker][row-1]
			if ref.open {
				b.Open = v
			} else {
				b.Close = v
			}
		}
	}

	return NewTable(dates, bars)
}
