// Package export writes recorded runs out of the program: the whole run as
// JSON, the per-step scalars as CSV and single snapshots as SVG.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/trace"
)

type Data struct {
	Algorithm string             `json:"algorithm"`
	Seed      int64              `json:"seed"`
	Input     string             `json:"input"`
	Steps     int                `json:"steps"`
	Summary   string             `json:"summary"`
	Metrics   map[string]float64 `json:"metrics"`
	History   *trace.History     `json:"history"`
}

func FromResult(res *experiment.Result) (Data, error) {
	input, err := problem.Format(res.Problem)
	if err != nil {
		return Data{}, err
	}
	d := Data{
		Algorithm: res.Algorithm,
		Seed:      res.Seed,
		Input:     input,
		Steps:     res.History.Len(),
		Metrics:   res.Metrics,
		History:   res.History,
	}
	if res.Outcome != nil {
		d.Summary = res.Outcome.Summary()
	}
	return d, nil
}

func JSON(w io.Writer, d Data) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// JSONFile writes d to path, or to stdout when path is "-".
func JSONFile(path string, d Data) error {
	if path == "-" {
		return JSON(os.Stdout, d)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return JSON(file, d)
}

// Row is one step as stored in CSV.
type Row struct {
	Step        int
	Label       trace.Label
	Explanation string
	Lines       []int
	Scalars     map[string]float64
}

// ScalarNames returns the sorted union of scalar names over h.
func ScalarNames(h *trace.History) []string {
	seen := make(map[string]bool)
	for _, s := range h.Snapshots {
		for k := range s.Payload.Scalars() {
			seen[k] = true
		}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// CSV writes one row per snapshot: step, label, explanation, lines and every scalar.
func CSV(w io.Writer, h *trace.History) error {
	cw := csv.NewWriter(w)
	names := ScalarNames(h)

	header := append([]string{"step", "label", "explanation", "lines"}, names...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, s := range h.Snapshots {
		lines := make([]string, len(s.Lines))
		for j, l := range s.Lines {
			lines[j] = strconv.Itoa(l)
		}
		row := []string{strconv.Itoa(i), string(s.Label), s.Explanation, strings.Join(lines, " ")}
		scalars := s.Payload.Scalars()
		for _, name := range names {
			v, ok := scalars[name]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses what CSV wrote. Empty scalar cells are left out of the row.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Row{}, nil
	}
	header := records[0]
	if len(header) < 4 {
		return nil, fmt.Errorf("csv header has %d columns, want at least 4", len(header))
	}

	rows := make([]Row, 0, len(records)-1)
	for n, rec := range records[1:] {
		if len(rec) < 4 {
			continue
		}
		step, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: step: %w", n+1, err)
		}
		row := Row{Step: step, Label: trace.Label(rec[1]), Explanation: rec[2], Scalars: make(map[string]float64)}
		for _, f := range strings.Fields(rec[3]) {
			l, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("row %d: lines: %w", n+1, err)
			}
			row.Lines = append(row.Lines, l)
		}
		for j := 4; j < len(rec) && j < len(header); j++ {
			if rec[j] == "" {
				continue
			}
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %s: %w", n+1, header[j], err)
			}
			row.Scalars[header[j]] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Series extracts one scalar over the rows, skipping rows without it.
func Series(rows []Row, name string) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		if v, ok := r.Scalars[name]; ok {
			out = append(out, v)
		}
	}
	return out
}
