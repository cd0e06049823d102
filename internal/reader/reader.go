// Package reader loads utility billing export files (delimited text or
// XLSX workbooks) into header lists and raw rows. A read either
// completes or fails atomically; no partial results are produced.
package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/Ing-Eduardo-E/csv-processor/pkg/contracts/domain"
)

// User-facing terminal read failures, kept in the language of the
// export files.
var (
	ErrEmptyFile    = errors.New("el archivo está vacío")
	ErrNoDataRows   = errors.New("no hay datos válidos en el archivo")
	ErrFileTooLarge = errors.New("el archivo excede el tamaño máximo permitido")
)

// ParsedFile is the reader's output: the header row and every data row
// keyed by header text. Format records which container was parsed.
type ParsedFile struct {
	Format  string
	Headers []string
	Rows    []domain.RawRow
}

// Reader parses export files within a configured size limit.
type Reader struct {
	maxBytes int64
	logger   *slog.Logger
}

// New creates a Reader. maxBytes <= 0 disables the size limit.
func New(maxBytes int64, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{
		maxBytes: maxBytes,
		logger:   logger.With(slog.String("component", "reader")),
	}
}

// ReadFile parses the file at path, choosing the container format from
// the file extension.
func (r *Reader) ReadFile(path string) (*ParsedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return r.Read(f, filepath.Base(path))
}

// Read parses an export file from src. The filename is only used to
// pick the container format: ".xlsx"/".xls" selects the workbook
// parser, everything else is treated as delimited text.
func (r *Reader) Read(src io.Reader, filename string) (*ParsedFile, error) {
	data, err := r.readAll(src)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	var parsed *ParsedFile
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		parsed, err = parseWorkbook(data)
	default:
		parsed, err = parseDelimited(data)
	}
	if err != nil {
		return nil, err
	}

	r.logger.Info("file parsed",
		slog.String("filename", filename),
		slog.String("format", parsed.Format),
		slog.Int("columns", len(parsed.Headers)),
		slog.Int("rows", len(parsed.Rows)))
	return parsed, nil
}

func (r *Reader) readAll(src io.Reader) ([]byte, error) {
	if r.maxBytes <= 0 {
		return io.ReadAll(src)
	}
	data, err := io.ReadAll(io.LimitReader(src, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > r.maxBytes {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// decodeText interprets raw bytes as UTF-8, falling back to a
// ISO 8859-1 re-decode when the bytes are not valid UTF-8 or the
// decoded text carries replacement runes. Legacy exports from Windows
// tooling are routinely Latin-1 encoded.
func decodeText(data []byte) string {
	if utf8.Valid(data) && !bytes.ContainsRune(data, utf8.RuneError) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
