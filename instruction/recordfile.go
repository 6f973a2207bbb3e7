package instruction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// RecordFormat is a record file encoding.
type RecordFormat string

const (
	RecordJSON RecordFormat = "json"
	RecordYAML RecordFormat = "yaml"
	RecordTOML RecordFormat = "toml"
)

// RecordFormatFromPath infers the encoding from a file extension.
func RecordFormatFromPath(path string) (RecordFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return RecordJSON, nil
	case ".yaml", ".yml":
		return RecordYAML, nil
	case ".toml":
		return RecordTOML, nil
	}
	return "", NewError(KindInvalidInput, fmt.Sprintf("unsupported record file %q", filepath.Base(path)), nil)
}

// DecodeRecord parses a record in the given format.
func DecodeRecord(data []byte, format RecordFormat) (Record, error) {
	var record Record
	var err error
	switch format {
	case RecordJSON:
		err = json.NewDecoder(bytes.NewReader(data)).Decode(&record)
	case RecordYAML:
		err = yaml.Unmarshal(data, &record)
	case RecordTOML:
		err = toml.Unmarshal(data, &record)
	default:
		return Record{}, NewError(KindInvalidInput, fmt.Sprintf("unsupported record format %q", format), nil)
	}
	if err != nil {
		return Record{}, NewError(KindInvalidInput, "invalid record", err)
	}
	return record, nil
}

// EncodeRecord serializes a record in the given format.
func EncodeRecord(record Record, format RecordFormat) ([]byte, error) {
	switch format {
	case RecordJSON:
		return json.MarshalIndent(record, "", "  ")
	case RecordYAML:
		return yaml.Marshal(record)
	case RecordTOML:
		return toml.Marshal(record)
	}
	return nil, NewError(KindInvalidInput, fmt.Sprintf("unsupported record format %q", format), nil)
}

// ReadRecordFile loads a record from a .json, .yaml/.yml or .toml file.
func ReadRecordFile(path string) (Record, error) {
	format, err := RecordFormatFromPath(path)
	if err != nil {
		return Record{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, NewError(KindNotFound, fmt.Sprintf("read record file %s", path), err)
	}
	return DecodeRecord(data, format)
}
