// Package loader reads tabular process descriptions from files. It supports
// CSV (header row first), and JSON/YAML record form (an array of row
// objects), which is validated against an embedded JSON schema before the
// column contract is checked.
package loader

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/awantoch/procmap/constants"
	"github.com/awantoch/procmap/table"
	"github.com/awantoch/procmap/utils"
)

//go:embed rows.schema.json
var rowsSchemaJSON string

var errs = utils.NewErrorWrapper("loader")

// Load reads a table from the given path. The format is chosen by
// extension: .csv, .json, or .yml/.yaml; unknown extensions fall back to
// CSV.
func Load(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(data)
	case ".yml", ".yaml":
		return LoadYAML(data)
	default:
		return LoadCSV(data)
	}
}

// LoadCSV parses CSV bytes; the first record is the header. Ragged rows are
// tolerated and read as empty cells.
func LoadCSV(data []byte) (*table.Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, errs.Wrapf(err, "csv parse failed")
	}
	if len(records) == 0 {
		return table.New(nil, nil), nil
	}
	return table.New(records[0], records[1:]), nil
}

// LoadJSON parses record-form JSON: an array of row objects.
func LoadJSON(data []byte) (*table.Table, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.Wrapf(err, "json parse failed")
	}
	return fromRecords(doc)
}

// LoadYAML parses record-form YAML: a list of row mappings. The document is
// round-tripped through JSON so schema validation sees json-shaped values.
func LoadYAML(data []byte) (*table.Table, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errs.Wrapf(err, "yaml parse failed")
	}
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, errs.Wrapf(err, "yaml rows are not json-compatible")
	}
	var jsonDoc any
	if err := json.Unmarshal(jsonBytes, &jsonDoc); err != nil {
		return nil, err
	}
	return fromRecords(jsonDoc)
}

// fromRecords validates a decoded document against the embedded rows schema
// and shapes it into a Table. Column order is deterministic: the known
// contract columns in contract order, then any extra columns sorted.
func fromRecords(doc any) (*table.Table, error) {
	schema, err := jsonschema.CompileString(constants.RowsSchemaFile, rowsSchemaJSON)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, errs.Wrapf(err, "rows failed schema validation")
	}
	records, _ := doc.([]any)

	present := map[string]bool{}
	for _, rec := range records {
		if m, ok := rec.(map[string]any); ok {
			for k := range m {
				present[k] = true
			}
		}
	}
	var columns []string
	for _, col := range append(append([]string{}, table.RequiredColumns...), table.OptionalColumns...) {
		if present[col] {
			columns = append(columns, col)
			delete(present, col)
		}
	}
	var extras []string
	for col := range present {
		extras = append(extras, col)
	}
	sort.Strings(extras)
	columns = append(columns, extras...)

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		m, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = cellString(m[col])
		}
		rows = append(rows, row)
	}
	return table.New(columns, rows), nil
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}

// WriteCSV re-exports a table (typically the filtered rows of one process)
// as CSV.
func WriteCSV(t *table.Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		if err := cw.Write(t.Row(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
