package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/models"
)

// ErrMalformed is returned when an import document cannot be decoded
var ErrMalformed = errors.New("malformed import document")

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported format %q (expected json or yaml)", s)
}

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Ext returns the file extension for f, including the dot
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// FileName returns habit-tracker-backup-YYYY-MM-DD with the extension of f
func FileName(t time.Time, f Format) string {
	return constants.BackupFilePrefix + t.Format(constants.DateFormat) + f.Ext()
}

// BackupFileName is the default export file name for t
func BackupFileName(t time.Time) string {
	return FileName(t, FormatJSON)
}

// Encode writes the export document to w
func Encode(w io.Writer, data models.ExportData, f Format) error {
	data.Habits = models.CloneHabits(data.Habits)
	data.Activities = models.CloneActivities(data.Activities)

	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported format %q", f)
}

// Decode reads an import document. Unknown keys such as exportDate are ignored.
func Decode(r io.Reader, f Format) (models.ImportData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return models.ImportData{}, fmt.Errorf("failed to read import document: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return models.ImportData{}, fmt.Errorf("%w: document is empty", ErrMalformed)
	}

	var d models.ImportData
	switch f {
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(raw, &node); err != nil {
			return models.ImportData{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
			return models.ImportData{}, fmt.Errorf("%w: top level must be a mapping", ErrMalformed)
		}
		if err := node.Decode(&d); err != nil {
			return models.ImportData{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case FormatJSON, "":
		trimmed := bytes.TrimSpace(raw)
		if trimmed[0] != '{' {
			return models.ImportData{}, fmt.Errorf("%w: top level must be an object", ErrMalformed)
		}
		if err := json.Unmarshal(trimmed, &d); err != nil {
			return models.ImportData{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	default:
		return models.ImportData{}, fmt.Errorf("unsupported format %q", f)
	}
	return d, nil
}

// WriteFile encodes data in format f and writes it to path through a
// temporary file. A failed encode or write leaves path untouched.
func WriteFile(path string, data models.ExportData, f Format, perm os.FileMode) error {
	var buf bytes.Buffer
	if err := Encode(&buf, data, f); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), perm); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadFile decodes the import document at path
func ReadFile(path string) (models.ImportData, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.ImportData{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, FormatFromPath(path))
}
