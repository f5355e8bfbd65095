package frame

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// All code interacting with files is here

const (
	Sep         = ','
	NullString  = ""
	InfString   = "inf"
	TrueString  = "True"
	FalseString = "False"
	Precision   = -1
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Files reads and writes Frames as delimited text with a header row.
//
// On load every column is text unless it is named in FileFloats, in which case it is
// parsed as DTfloat with unparseable cells set to null. On save, nulls are written as
// NullString and infinities as InfString / "-"+InfString.
type Files struct {
	Sep rune
	FormatOptions

	floatCols []string
}

type FileOpt func(f *Files) error

func FileSep(sep rune) FileOpt {
	return func(f *Files) error {
		if sep == '"' || sep == '\n' || sep == '\r' {
			return fmt.Errorf("invalid separator %q", sep)
		}

		f.Sep = sep
		return nil
	}
}

// FileFloats names the columns to load as DTfloat.
func FileFloats(colNames ...string) FileOpt {
	return func(f *Files) error {
		f.floatCols = append(f.floatCols, colNames...)
		return nil
	}
}

func FileNullString(s string) FileOpt {
	return func(f *Files) error {
		f.NullString = s
		return nil
	}
}

func FileInfString(s string) FileOpt {
	return func(f *Files) error {
		if s == "" {
			return fmt.Errorf("infinity needs a non-empty representation")
		}

		f.InfString = s
		return nil
	}
}

func FilePrecision(p int) FileOpt {
	return func(f *Files) error {
		if p < -1 {
			return fmt.Errorf("invalid float precision %d", p)
		}

		f.Precision = p
		return nil
	}
}

func FileBoolStrings(t, fs string) FileOpt {
	return func(f *Files) error {
		f.TrueString, f.FalseString = t, fs
		return nil
	}
}

func NewFiles(opts ...FileOpt) (*Files, error) {
	f := &Files{
		Sep: Sep,
		FormatOptions: FormatOptions{
			NullString:  NullString,
			InfString:   InfString,
			TrueString:  TrueString,
			FalseString: FalseString,
			Precision:   Precision,
		},
	}

	for _, opt := range opts {
		if e := opt(f); e != nil {
			return nil, e
		}
	}

	return f, nil
}

// *********** Load ***********

func (f *Files) Load(fileName string) (*Frame, error) {
	var (
		file *os.File
		e    error
	)

	if file, e = os.Open(fileName); e != nil {
		return nil, e
	}
	defer file.Close()

	var df *Frame
	if df, e = f.Read(file); e != nil {
		return nil, fmt.Errorf("load %s: %w", fileName, e)
	}

	return df, nil
}

// Read loads delimited text with a header row. Rows shorter than the header are padded with
// empty cells; longer rows are an error. A header with no rows gives a Frame with no rows.
func (f *Files) Read(r io.Reader) (*Frame, error) {
	br := bufio.NewReader(r)
	if lead, e := br.Peek(len(utf8BOM)); e == nil && bytes.Equal(lead, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	var (
		records [][]string
		e       error
	)
	if records, e = f.records(br); e != nil {
		return nil, e
	}

	// gota needs at least one row after the header
	headerOnly := len(records) == 1
	if headerOnly {
		records = append(records, make([]string, len(records[0])))
	}

	gdf := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil))
	if gdf.Err != nil {
		return nil, gdf.Err
	}

	var cols []*Col
	for _, rawName := range gdf.Names() {
		s := gdf.Col(rawName)
		if s.Err != nil {
			return nil, s.Err
		}

		var col *Col

		name := strings.TrimSpace(rawName)
		vals := s.Records()

		v, _ := NewVector(vals, DTstring)
		if has(name, f.floatCols) {
			v = StringsToFloat(vals, ToFloat)
		}

		if col, e = NewCol(v, ColName(name)); e != nil {
			return nil, e
		}

		cols = append(cols, col)
	}

	var df *Frame
	if df, e = NewFrame(cols...); e != nil {
		return nil, e
	}

	for _, fc := range f.floatCols {
		if _, e := df.Column(fc); e != nil {
			return nil, e
		}
	}

	if headerOnly {
		df = df.Head(0)
	}

	return df, nil
}

func (f *Files) records(r io.Reader) ([][]string, error) {
	rdr := csv.NewReader(r)
	rdr.Comma = f.Sep
	rdr.FieldsPerRecord = -1

	var (
		records [][]string
		e       error
	)
	if records, e = rdr.ReadAll(); e != nil {
		return nil, e
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	width := len(records[0])
	for ind, rec := range records[1:] {
		switch {
		case len(rec) > width:
			return nil, fmt.Errorf("record %d has %d fields, header has %d", ind+1, len(rec), width)
		case len(rec) < width:
			records[ind+1] = append(rec, make([]string, width-len(rec))...)
		}
	}

	return records, nil
}

// *********** Save ***********

// Save writes df to fileName, replacing any existing file.
func (f *Files) Save(fileName string, df *Frame) error {
	var (
		file *os.File
		e    error
	)

	if file, e = os.Create(fileName); e != nil {
		return e
	}

	if e = f.Write(file, df); e != nil {
		_ = file.Close()
		return fmt.Errorf("save %s: %w", fileName, e)
	}

	return file.Close()
}

func (f *Files) Write(w io.Writer, df *Frame) error {
	bw := bufio.NewWriter(w)
	writer := csv.NewWriter(bw)
	writer.Comma = f.Sep

	if e := writer.Write(df.ColumnNames()); e != nil {
		return fmt.Errorf("write header: %w", e)
	}

	line := make([]string, df.ColumnCount())
	for row := 0; row < df.RowCount(); row++ {
		for ind, c := range df.cols {
			line[ind] = f.Format(c.Element(row))
		}

		if e := writer.Write(line); e != nil {
			return fmt.Errorf("write row %d: %w", row, e)
		}
	}

	writer.Flush()
	if e := writer.Error(); e != nil {
		return e
	}

	return bw.Flush()
}
