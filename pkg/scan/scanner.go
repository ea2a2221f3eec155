// Package scan applies the record parser to line-oriented sources and
// reports one outcome per line. Malformed lines never stop a scan; file
// access problems do.
package scan

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/firmtools/hexlint/pkg/ihex"
)

// FileErrorKind classifies file-level scan failures.
type FileErrorKind int

// File-level failure classes. Each is terminal for the scan.
const (
	FileNotFound FileErrorKind = iota + 1
	FileIsDirectory
	FileRead
)

// FileError reports a file-level failure. Unlike per-line parse errors,
// a FileError stops the scan.
type FileError struct {
	Path string
	Kind FileErrorKind
	Err  error
}

// Error returns the single descriptive line written for the failure.
func (e *FileError) Error() string {
	switch e.Kind {
	case FileNotFound:
		return fmt.Sprintf("File not found %s", e.Path)
	case FileIsDirectory:
		return fmt.Sprintf("%s is a directory", e.Path)
	default:
		return fmt.Sprintf("Error while reading file %s", e.Path)
	}
}

// Unwrap returns the underlying I/O error, if any.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Stats aggregates the outcomes of one scan.
type Stats struct {
	Lines   int
	Valid   int
	Invalid int
	ByType  map[ihex.RecordType]int
}

// NewStats returns an empty Stats.
func NewStats() *Stats {
	return &Stats{ByType: make(map[ihex.RecordType]int)}
}

func (s *Stats) observe(result Result) {
	s.Lines++
	if result.Err != nil {
		s.Invalid++
		return
	}

	s.Valid++
	s.ByType[result.Record.Type]++
}

// Scanner feeds a line-oriented source through the record parser. Each line
// is processed independently; the scanner keeps no state between lines, so
// an end-of-file record does not end the scan early.
type Scanner struct {
	reporter Reporter
}

// NewScanner creates a scanner that reports each line's outcome to
// reporter. A nil reporter discards outcomes.
func NewScanner(reporter Reporter) *Scanner {
	if reporter == nil {
		reporter = Discard
	}

	return &Scanner{reporter: reporter}
}

// ScanFile scans every line of the file at path.
//
// File-level problems come back as *FileError: a missing path, a path that
// is a directory, or any other I/O failure. They are terminal and produce
// no per-line results. Per-line parse failures are reported through the
// reporter and the scan continues to the physical end of input. The
// returned stats cover every line processed before return, even when a
// read error cut the scan short. The file handle is released on every exit
// path.
func (s *Scanner) ScanFile(path string) (*Stats, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &FileError{Path: path, Kind: FileNotFound, Err: err}
		}
		return nil, &FileError{Path: path, Kind: FileRead, Err: err}
	}
	if info.IsDir() {
		return nil, &FileError{Path: path, Kind: FileIsDirectory}
	}

	file, err := os.Open(path)
	if err != nil {
		// The stat above raced a removal, or permissions block the open
		if os.IsNotExist(err) {
			return nil, &FileError{Path: path, Kind: FileNotFound, Err: err}
		}
		return nil, &FileError{Path: path, Kind: FileRead, Err: err}
	}
	defer file.Close()

	stats, err := s.ScanReader(file)
	if err != nil {
		return stats, &FileError{Path: path, Kind: FileRead, Err: err}
	}

	return stats, nil
}

// ScanReader scans every line of r. Lines are stripped of surrounding
// whitespace before parsing and may be arbitrarily long; an oversized
// malformed line is an ordinary per-line failure, never a scan abort. A
// read failure aborts the remaining lines and is returned alongside the
// stats gathered so far.
func (s *Scanner) ScanReader(r io.Reader) (*Stats, error) {
	stats := NewStats()

	reader := bufio.NewReader(r)
	lineNum := 0
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			lineNum++
			raw := strings.TrimSpace(line)

			record, parseErr := ihex.Parse(raw)
			result := Result{Line: lineNum, Raw: raw, Record: record, Err: parseErr}

			stats.observe(result)
			s.reporter.Report(result)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return stats, nil
			}
			return stats, err
		}
	}
}
