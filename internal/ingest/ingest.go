// Package ingest turns collaborator-supplied bytes (CSV uploads, JSON
// bodies) into raw task records. Parsing here is deliberately shapeless:
// field naming and value coercion are the normalizer's job.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mhalloran/critpath/internal/task"
	"github.com/tidwall/gjson"
)

// ReadFile loads records from path, choosing the parser by extension
// (.csv, otherwise JSON).
func ReadFile(path string) ([]task.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ReadCSV(bytes.NewReader(data))
	}
	return ReadJSON(data)
}

// ReadCSV reads header-driven CSV rows into records. Cell values stay
// strings; short rows are padded, not rejected.
func ReadCSV(r io.Reader) ([]task.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []task.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		rec := make(task.Record, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadJSON parses a JSON document into records. Accepts either a bare
// array of task objects or an object with a "tasks" array.
func ReadJSON(data []byte) ([]task.Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse json: invalid document")
	}

	doc := gjson.ParseBytes(data)
	list := doc
	if doc.IsObject() {
		list = doc.Get("tasks")
		if !list.Exists() {
			return nil, fmt.Errorf(`parse json: expected an array or an object with a "tasks" array`)
		}
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("parse json: tasks value is not an array")
	}

	var records []task.Record
	list.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true // skip non-object entries
		}
		rec := make(task.Record)
		item.ForEach(func(key, value gjson.Result) bool {
			rec[key.String()] = value.Value()
			return true
		})
		records = append(records, rec)
		return true
	})
	return records, nil
}
