package ingest

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCorpus writes a minimal Kaggle-layout corpus CSV (file,message)
func writeCorpus(t *testing.T, dir string, messages []string) string {
	t.Helper()

	path := filepath.Join(dir, "emails.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.Write([]string{"file", "message"}))
	for i, msg := range messages {
		require.NoError(t, w.Write([]string{string(rune('a'+i)) + "/1.", msg}))
	}
	w.Flush()
	require.NoError(t, w.Error())
	return path
}

func TestReadMessagesCSV_StreamsMessageColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpus(t, dir, []string{sampleMessage, "From: a@x.com\r\n\r\nhi\r\n"})

	var got []string
	err := ReadMessagesCSV(path, func(raw string) error {
		got = append(got, raw)
		return nil
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	// csv.Reader normalises \r\n to \n inside quoted fields; the header
	// parser accepts bare LF, so messages arrive LF-terminated.
	assert.Equal(t, strings.ReplaceAll(sampleMessage, "\r\n", "\n"), got[0])
	assert.Equal(t, "From: a@x.com\n\nhi\n", got[1])
}

func TestReadMessagesCSV_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("foo,bar\n1,2\n"), 0o644))

	err := ReadMessagesCSV(path, func(string) error { return nil })

	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestPairsCSV_RoundTrip(t *testing.T) {
	pairs := []Pair{
		{From: "a@x.com", To: "b@x.com"},
		{From: "a@x.com", To: "b@x.com"},
		{From: "c@x.com", To: "a@x.com"},
	}

	for _, name := range []string{"edges.csv", "edges.csv.sz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			require.NoError(t, WritePairsCSV(path, pairs))
			got, err := ReadPairsCSV(path)

			require.NoError(t, err)
			assert.Equal(t, pairs, got)
		})
	}
}

func TestLoadOrParse_ParsesThenCaches(t *testing.T) {
	dir := t.TempDir()
	corpus := writeCorpus(t, dir, []string{sampleMessage, "garbage no headers"})
	cache := filepath.Join(dir, "cleaned.csv")

	pairs, stats, err := LoadOrParse(corpus, cache)

	require.NoError(t, err)
	assert.False(t, stats.Cached)
	assert.Equal(t, 1, stats.Messages)
	assert.Equal(t, 1, stats.Failures, "malformed message should be counted, not fatal")
	require.Len(t, pairs, 3)

	// Second call must come from the cache and agree with the first
	again, stats, err := LoadOrParse(corpus, cache)
	require.NoError(t, err)
	assert.True(t, stats.Cached)
	assert.Equal(t, pairs, again)
}
