// =============================================================================
// Fechamento - File Aggregator
// =============================================================================
//
// Discovers the spreadsheet files for one day, runs each through
// normalize -> coerce -> validate in isolation, and concatenates the
// surviving rows into a single Dataset. Problems inside a file never abort
// the run; they become warnings. Only structural emptiness is fatal:
// nothing to discover, or nothing left after skipping.
//
// =============================================================================

package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vmsantos/fechamento/internal/sales"
	"github.com/vmsantos/fechamento/internal/schema"
	"github.com/vmsantos/fechamento/internal/sheet"
)

// NoInputFilesError is returned when the input directory holds no
// spreadsheet file of a supported extension. Fatal: there is nothing to
// process.
type NoInputFilesError struct {
	Dir string
}

func (e *NoInputFilesError) Error() string {
	return fmt.Sprintf("no spreadsheet files found in %s", e.Dir)
}

// NoValidFilesError is returned when every discovered file had to be
// skipped. Fatal: there is nothing meaningful to persist or report.
type NoValidFilesError struct {
	Dir string
}

func (e *NoValidFilesError) Error() string {
	return fmt.Sprintf("no valid spreadsheet files after validation in %s", e.Dir)
}

// Aggregator drives per-file ingestion for one pipeline run.
type Aggregator struct {
	aliases    schema.AliasTable
	extensions []string
	log        zerolog.Logger
}

// New creates an Aggregator. extensions lists the accepted file extensions
// (with leading dot); an empty list defaults to .xlsx only.
func New(aliases schema.AliasTable, extensions []string, log zerolog.Logger) *Aggregator {
	if len(extensions) == 0 {
		extensions = []string{".xlsx"}
	}
	normalized := make([]string, len(extensions))
	for i, ext := range extensions {
		normalized[i] = strings.ToLower(ext)
	}
	return &Aggregator{aliases: aliases, extensions: normalized, log: log}
}

// Load processes every supported spreadsheet in dir and returns the merged
// dataset. Files are processed in lexicographic filename order and each
// file's rows keep their original order, so repeated runs over the same
// inputs produce the same sequence.
func (a *Aggregator) Load(dir string) (*sales.Dataset, error) {
	files, err := a.discover(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &NoInputFilesError{Dir: dir}
	}

	ds := &sales.Dataset{}
	validFiles := 0
	for _, path := range files {
		name := filepath.Base(path)

		records, skipWarning, err := a.loadFile(path)
		if err != nil {
			var missing *schema.MissingColumnsError
			if errors.As(err, &missing) {
				// Recoverable: the file is ignored, the run goes on.
				ds.AddWarning("%s: missing columns %v; file skipped", name, missing.Missing)
				a.log.Warn().Str("file", name).Strs("missing", missing.Missing).
					Msg("file skipped: required columns not found")
				continue
			}
			// Unreadable files are likewise skipped with a warning; a
			// corrupt upload from one store must not block the others.
			ds.AddWarning("%s: %v; file skipped", name, err)
			a.log.Warn().Str("file", name).Err(err).Msg("file skipped: unreadable")
			continue
		}

		validFiles++
		ds.Records = append(ds.Records, records...)
		if skipWarning != "" {
			ds.Warnings = append(ds.Warnings, skipWarning)
		}
		a.log.Debug().Str("file", name).Int("rows", len(records)).Msg("file ingested")
	}

	if validFiles == 0 {
		return nil, &NoValidFilesError{Dir: dir}
	}
	return ds, nil
}

// loadFile ingests one spreadsheet: read, normalize headers, validate rows.
// It returns the accepted records in file order and, when rows were
// dropped, the file's aggregate rejection warning.
func (a *Aggregator) loadFile(path string) ([]sales.SalesRecord, sales.Warning, error) {
	s, err := sheet.Read(path)
	if err != nil {
		return nil, "", err
	}

	mapping, err := a.aliases.Normalize(s.SourceFile, s.Headers)
	if err != nil {
		return nil, "", err
	}

	var records []sales.SalesRecord
	rejected := 0
	for _, raw := range s.Rows {
		canonical := make(map[string]string, len(mapping))
		for original, field := range mapping {
			canonical[field] = raw[original]
		}
		record, ok := ValidateRow(canonical, s.SourceFile)
		if !ok {
			rejected++
			continue
		}
		records = append(records, record)
	}

	var warning sales.Warning
	if rejected > 0 {
		warning = sales.Warning(fmt.Sprintf("%s: %d invalid row(s) removed", s.SourceFile, rejected))
	}
	return records, warning, nil
}

// discover returns the supported spreadsheet files directly under dir,
// sorted by filename. Subdirectories are not descended into; the day root
// keeps its inputs flat.
func (a *Aggregator) discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		// Excel drops "~$" lock files next to open workbooks.
		if strings.HasPrefix(entry.Name(), "~$") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, accepted := range a.extensions {
			if ext == accepted {
				files = append(files, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}
	sort.Strings(files)
	return files, nil
}
