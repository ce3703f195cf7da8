package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
)

// compressedSuffix marks a snappy-compressed edge-list cache file.
const compressedSuffix = ".sz"

// ErrMissingColumn reports a CSV whose header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// ReadMessagesCSV streams the "message" column of a raw corpus CSV (one row
// per email, Kaggle Enron layout) and invokes fn for each raw message body.
// fn returning an error aborts the scan.
func ReadMessagesCSV(path string, fn func(raw string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read corpus header: %w", err)
	}
	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "message") {
			col = i
			break
		}
	}
	if col < 0 {
		return fmt.Errorf("corpus %s: %w: message", path, ErrMissingColumn)
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read corpus row: %w", err)
		}
		if col >= len(record) {
			continue
		}
		if err := fn(record[col]); err != nil {
			return err
		}
	}
}

// WritePairsCSV persists the cleaned pair list with exactly two named
// columns, From and To, one row per raw pair. A path ending in ".sz" is
// snappy stream compressed.
func WritePairsCSV(path string, pairs []Pair) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create edge list: %w", err)
	}
	defer f.Close()

	var w *csv.Writer
	var sw *snappy.Writer
	if strings.HasSuffix(path, compressedSuffix) {
		sw = snappy.NewBufferedWriter(f)
		w = csv.NewWriter(sw)
	} else {
		w = csv.NewWriter(f)
	}

	if err := w.Write([]string{"From", "To"}); err != nil {
		return fmt.Errorf("write edge list header: %w", err)
	}
	for _, p := range pairs {
		if err := w.Write([]string{p.From, p.To}); err != nil {
			return fmt.Errorf("write edge list row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush edge list: %w", err)
	}
	if sw != nil {
		if err := sw.Close(); err != nil {
			return fmt.Errorf("close compressed edge list: %w", err)
		}
	}
	return f.Sync()
}

// ReadPairsCSV loads a cleaned pair list written by WritePairsCSV.
func ReadPairsCSV(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open edge list: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(path, compressedSuffix) {
		src = snappy.NewReader(f)
	}
	r := csv.NewReader(src)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read edge list header: %w", err)
	}
	fromCol, toCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "From":
			fromCol = i
		case "To":
			toCol = i
		}
	}
	if fromCol < 0 || toCol < 0 {
		return nil, fmt.Errorf("edge list %s: %w: From, To", path, ErrMissingColumn)
	}

	var pairs []Pair
	for {
		record, err := r.Read()
		if err == io.EOF {
			return pairs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read edge list row: %w", err)
		}
		if fromCol >= len(record) || toCol >= len(record) {
			continue
		}
		pairs = append(pairs, Pair{From: record[fromCol], To: record[toCol]})
	}
}

// ParseStats reports what happened while scanning a raw corpus. Both
// counts stay zero when the cleaned cache was used.
type ParseStats struct {
	Messages int // messages successfully parsed
	Failures int // messages skipped because header parsing failed
	Cached   bool
}

// LoadOrParse returns the cleaned pair list, reading the cache when it
// exists and otherwise parsing the raw corpus and writing the cache.
// Malformed messages are counted and skipped, not fatal.
func LoadOrParse(corpusPath, cachePath string) ([]Pair, ParseStats, error) {
	var stats ParseStats

	if _, err := os.Stat(cachePath); err == nil {
		pairs, err := ReadPairsCSV(cachePath)
		if err != nil {
			return nil, stats, err
		}
		stats.Cached = true
		return pairs, stats, nil
	}

	var pairs []Pair
	err := ReadMessagesCSV(corpusPath, func(raw string) error {
		extracted, err := PairsFromMessage(raw)
		if err != nil {
			stats.Failures++
			return nil
		}
		stats.Messages++
		pairs = append(pairs, extracted...)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}

	if err := WritePairsCSV(cachePath, pairs); err != nil {
		return nil, stats, err
	}
	return pairs, stats, nil
}
