package stats

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/applyviz/pkg/errors"
)

// Format is an input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from a file extension. Unknown extensions
// are treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes an aggregate from data.
func Parse(data []byte, format Format) (Aggregate, error) {
	var a Aggregate
	switch format {
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&a); err != nil {
			return Aggregate{}, errors.Wrap(errors.ErrCodeInvalidStats, err, "decode JSON statistics")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &a); err != nil {
			return Aggregate{}, errors.Wrap(errors.ErrCodeInvalidStats, err, "decode YAML statistics")
		}
	default:
		return Aggregate{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported statistics format: %s", format)
	}
	if err := a.Validate(); err != nil {
		return Aggregate{}, errors.Wrap(errors.ErrCodeInvalidStats, err, "invalid statistics")
	}
	return a, nil
}

// Load reads and decodes an aggregate from r.
func Load(r io.Reader, format Format) (Aggregate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Aggregate{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read statistics")
	}
	return Parse(data, format)
}

// LoadStdin reads an aggregate from standard input.
func LoadStdin(format Format) (Aggregate, error) {
	return Load(os.Stdin, format)
}

// LoadFile reads an aggregate from path, choosing the format by extension.
// A path of "-" reads JSON from stdin.
func LoadFile(path string) (Aggregate, error) {
	if path == "-" {
		return LoadStdin(FormatJSON)
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Aggregate{}, errors.New(errors.ErrCodeFileNotFound, "statistics file not found: %s", path)
	}
	if err != nil {
		return Aggregate{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Parse(data, FormatForPath(path))
}
