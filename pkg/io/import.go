package io

import (
	"encoding/csv"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/routemap/pkg/errors"
	"github.com/matzehuels/routemap/pkg/graph"
)

// ReadCSV decodes an edge list from r. The first row is treated as a header
// and skipped.
//
// ReadCSV returns an INVALID_RECORD error for a row without exactly three
// fields or with an empty label, and an INVALID_WEIGHT error for a weight
// that does not parse as a non-negative integer. ReadCSV does not close r.
func ReadCSV(r io.Reader) (*graph.Graph, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	g := graph.New()
	header := true
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if stderrors.As(err, &pe) {
				return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "line %d: malformed record", pe.Line)
			}
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "read csv")
		}
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			continue
		}
		line, _ := cr.FieldPos(0)
		if header {
			header = false
			continue
		}
		if err := addRecord(g, line, fields); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func addRecord(g *graph.Graph, line int, fields []string) error {
	if len(fields) != 3 {
		return errors.New(errors.ErrCodeInvalidRecord, "line %d: expected 3 fields, got %d", line, len(fields))
	}
	from := strings.TrimSpace(fields[0])
	to := strings.TrimSpace(fields[1])
	if from == "" || to == "" {
		return errors.New(errors.ErrCodeInvalidRecord, "line %d: empty node label", line)
	}
	raw := strings.TrimSpace(fields[2])
	w, err := strconv.Atoi(raw)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidWeight, err, "line %d: weight %q is not an integer", line, raw)
	}
	if w < 0 {
		return errors.New(errors.ErrCodeInvalidWeight, "line %d: weight %d is negative", line, w)
	}
	g.AddEdge(from, to, w)
	return nil
}

// ReadJSON decodes an edge list in the {"edges": [...]} form from r.
// Records are validated like CSV rows; the reported position is the
// record's index in the edges array.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}

	g := graph.New()
	for i, e := range data.Edges {
		from, to := strings.TrimSpace(e.From), strings.TrimSpace(e.To)
		if from == "" || to == "" {
			return nil, errors.New(errors.ErrCodeInvalidRecord, "edge %d: empty node label", i)
		}
		if e.Weight < 0 {
			return nil, errors.New(errors.ErrCodeInvalidWeight, "edge %d: weight %d is negative", i, e.Weight)
		}
		g.AddEdge(from, to, e.Weight)
	}
	return g, nil
}

// Import reads the edge list at path, choosing [ReadJSON] for a ".json"
// extension and [ReadCSV] otherwise. An unopenable file yields a
// FILE_NOT_FOUND error.
func Import(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ReadJSON(f)
	}
	return ReadCSV(f)
}
