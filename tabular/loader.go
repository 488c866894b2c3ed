package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/iand/ddx/logging"
	"github.com/iand/ddx/model"
	"github.com/iand/ddx/text"
)

var (
	ErrMissingNameColumn = errors.New("missing Name column")
	ErrMissingName       = errors.New("missing disease name")
)

const (
	ColumnName       = "Name"
	ColumnSymptoms   = "Symptoms"
	ColumnTreatments = "Treatments"
	ColumnContagious = "Contagious"
	ColumnChronic    = "Chronic"
)

type Options struct {
	Delimiter rune // field separator, zero selects tab for .tsv files and comma otherwise
	Comment   rune // lines starting with this character are skipped, zero disables comments
}

// Loader reads a delimited table of diseases with a header row. Only the Name
// column is required.
type Loader struct {
	ScopeName string
	columns   map[string]int // lowercase column name to field index
	records   [][]string
	lines     []int // line in the input where each record starts
}

func NewLoader(filename string, opts Options) (*Loader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}

	if opts.Delimiter == 0 {
		opts.Delimiter = ','
		if strings.EqualFold(filepath.Ext(filename), ".tsv") {
			opts.Delimiter = '\t'
		}
	}

	l, err := Decode(bytes.NewReader(data), opts)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	l.ScopeName = filename
	return l, nil
}

// Decode reads a whole table from r. A zero delimiter means comma.
func Decode(r io.Reader, opts Options) (*Loader, error) {
	cr := csv.NewReader(r)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.Comment = opts.Comment
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: %w", ErrMissingNameColumn)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	l := &Loader{
		ScopeName: "table",
		columns:   make(map[string]int),
	}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		key := strings.ToLower(h)
		if _, dup := l.columns[key]; dup {
			slog.Warn("duplicate column in table header, using the first", "column", h)
			continue
		}
		l.columns[key] = i
	}

	if _, ok := l.columns[strings.ToLower(ColumnName)]; !ok {
		return nil, ErrMissingNameColumn
	}

	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read rows: %w", err)
		}
		line, _ := cr.FieldPos(0)
		l.records = append(l.records, rec)
		l.lines = append(l.lines, line)
	}

	for _, col := range []string{ColumnSymptoms, ColumnTreatments, ColumnContagious, ColumnChronic} {
		if !l.HasColumn(col) {
			slog.Info("optional column not present in table", "column", col)
		}
	}

	return l, nil
}

func (l *Loader) Scope() string {
	return l.ScopeName
}

// Rows returns the number of data rows, excluding the header.
func (l *Loader) Rows() int {
	return len(l.records)
}

func (l *Loader) HasColumn(name string) bool {
	_, ok := l.columns[strings.ToLower(name)]
	return ok
}

// Load adds one disease per row to b. A row without a name fails the load with an
// error naming the line of the input it was read from.
func (l *Loader) Load(b *model.Builder) error {
	for i, rec := range l.records {
		line := l.lines[i]
		in := model.DiseaseInput{
			Name:       l.field(rec, ColumnName),
			Symptoms:   text.SplitList(l.field(rec, ColumnSymptoms)),
			Treatments: l.field(rec, ColumnTreatments),
			Contagious: l.field(rec, ColumnContagious),
			Chronic:    l.field(rec, ColumnChronic),
		}
		if strings.TrimSpace(in.Name) == "" {
			return fmt.Errorf("line %d of %s: %w", line, l.ScopeName, ErrMissingName)
		}

		replaced, err := b.Add(in)
		if err != nil {
			return fmt.Errorf("line %d of %s: %w", line, l.ScopeName, err)
		}
		if replaced {
			slog.Warn("disease listed more than once, using the later row", "disease", strings.TrimSpace(in.Name), "line", line)
		}
	}
	logging.Info(fmt.Sprintf("loaded %d disease records", b.Len()), "rows", len(l.records))

	return nil
}

// field returns the trimmed value of the named column, or the empty string when
// the column or the cell is missing.
func (l *Loader) field(rec []string, name string) string {
	idx, ok := l.columns[strings.ToLower(name)]
	if !ok || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}
