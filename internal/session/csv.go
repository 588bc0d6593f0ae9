package session

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

type column int

const (
	columnDate column = iota
	columnContent
	columnStrengths
	columnImprovements
	columnRating
)

// Header is the column order of a data file.
var Header = []string{"Date", "Content", "Strengths", "Improvements", "Rating"}

var requiredColumns = []column{columnDate, columnContent, columnRating}

// headerAliases maps folded header names to columns. The Vietnamese names are
// the headers of data files written by the first version of the log.
var headerAliases = map[string]column{
	fold("Date"):                    columnDate,
	fold("Content"):                 columnContent,
	fold("Strengths"):               columnStrengths,
	fold("Improvements"):            columnImprovements,
	fold("Rating"):                  columnRating,
	fold("Ngày"):                    columnDate,
	fold("Nội dung học"):            columnContent,
	fold("Bé đã làm tốt các phần:"): columnStrengths,
	fold("Tuy nhiên, cần cải thiện thêm:"): columnImprovements,
	fold("Đánh giá"):                       columnRating,
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV decodes a session table. name is used in error messages.
// Missing Strengths and Improvements columns are filled with empty strings.
func ReadCSV(r io.Reader, name string) ([]Record, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("br.Discard() > %w", err)
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read header: %v", ErrMalformedStorage, name, err)
	}

	positions := make(map[column]int, len(Header))
	for i, h := range header {
		col, ok := headerAliases[fold(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, seen := positions[col]; !seen {
			positions[col] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := positions[col]; !ok {
			return nil, &MissingColumnError{Path: name, Column: Header[col]}
		}
	}

	cell := func(row []string, col column) string {
		i, ok := positions[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := []Record{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedStorage, name, err)
		}
		records = append(records, Record{
			Date:         cell(row, columnDate),
			Content:      cell(row, columnContent),
			Strengths:    cell(row, columnStrengths),
			Improvements: cell(row, columnImprovements),
			Rating:       NormalizeRating(cell(row, columnRating)),
		})
	}
	return records, nil
}

// WriteCSV encodes records with the header in Header order.
func WriteCSV(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("writer.Write(header) > %w", err)
	}
	for i, r := range records {
		row := []string{r.Date, r.Content, r.Strengths, r.Improvements, string(r.Rating)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writer.Write(row %d) > %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("writer.Flush() > %w", err)
	}
	return nil
}

// readCSVFile returns an empty table when the file does not exist.
func readCSVFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return ReadCSV(file, path)
}

func writeCSVFile(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}

	if err := WriteCSV(file, records); err != nil {
		_ = file.Close()
		return fmt.Errorf("WriteCSV(%s) > %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("file.Close(%s) > %w", path, err)
	}
	return nil
}
