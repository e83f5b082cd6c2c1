package derive

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/healthmetrics/internal/metric"
)

// ReadCSV parses raw counts. The first column holds the group label and the
// header names the metric id of every other column. Empty cells and
// suppressed cells (containing "**") have no value; thousands separators
// are ignored.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("counts file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("header needs a group column and at least one metric column, got %d column(s)", len(header))
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading counts: %w", err)
		}
		row := Row{Group: strings.TrimSpace(rec[0]), Counts: make(map[metric.ID]float64)}
		for i, cellText := range rec[1:] {
			v, ok, err := parseCount(cellText)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %q: %w", line, header[i+1], err)
			}
			if ok {
				row.Counts[metric.ID(strings.TrimSpace(header[i+1]))] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseCount(s string) (float64, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, "**") {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid count %q", s)
	}
	return v, true, nil
}

// WriteCSV writes results with one column per id, in the given order.
// Missing values are written as empty cells.
func WriteCSV(w io.Writer, ids []metric.ID, results []Result) error {
	cw := csv.NewWriter(w)
	header := make([]string, 0, len(ids)+1)
	header = append(header, "group")
	for _, id := range ids {
		header = append(header, string(id))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, res := range results {
		rec := make([]string, 0, len(ids)+1)
		rec = append(rec, res.Group)
		for _, id := range ids {
			v, ok := res.Value(id)
			if !ok {
				rec = append(rec, "")
				continue
			}
			rec = append(rec, strconv.FormatFloat(v, 'f', 1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
