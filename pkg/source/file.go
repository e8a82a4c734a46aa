package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/heatcal/pkg/errors"
)

// File reads a series file on every fetch, so edits show up on the next
// render.
type File struct {
	name string
	path string
}

// NewFile returns a dataset reading path. The format follows the extension.
func NewFile(name, path string) *File { return &File{name: name, path: path} }

func (f *File) Name() string { return f.name }

// Path returns the file read by the dataset.
func (f *File) Path() string { return f.path }

// Fetch implements Dataset.
func (f *File) Fetch(ctx context.Context, year int) (Series, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeSourceNotFound, err, "dataset %q", f.name)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "dataset %q", f.name)
	}
	return decodeFile(data, filepath.Ext(f.path), year, f.path)
}

func decodeFile(data []byte, ext string, year int, origin string) (Series, error) {
	var doc document
	switch strings.ToLower(ext) {
	case ".csv":
		return decodeCSV(data, year, origin)
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "parse %s", origin)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "parse %s", origin)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "parse %s", origin)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidSource, "unsupported series file %q", origin)
	}
	return doc.series(year, origin)
}

// decodeCSV reads date,value rows. A first row whose value does not parse
// is taken as a header.
func decodeCSV(data []byte, year int, origin string) (Series, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comment = '#'

	s := make(Series)
	for row := 0; ; row++ {
		rec, err := r.Read()
		if err == io.EOF {
			return s, nil
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "parse %s", origin)
		}
		if len(rec) < 2 {
			return nil, errors.New(errors.ErrCodeInvalidSource, "%s: row %d: want date,value", origin, row+1)
		}
		v, verr := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if verr != nil && row == 0 {
			continue
		}
		if verr != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, verr, "%s: row %d", origin, row+1)
		}
		t, err := ParseDate(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "%s: row %d", origin, row+1)
		}
		if t.Year() == year {
			s.Add(t, v)
		}
	}
}
