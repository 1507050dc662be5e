// Package loader reads the eruption dataset from disk or from the copy
// bundled into the binary.
package loader

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"reflect"
	"strings"

	"github.com/couchcryptid/volcano-analytics/internal/domain"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// DefaultDataset is the bundled dataset name used when no path is given.
const DefaultDataset = "volcano.json"

//go:embed data/*.json
var bundled embed.FS

// Loader resolves, decodes, and validates eruption datasets.
type Loader struct {
	bundle     fs.FS
	logger     *slog.Logger
	validate   *validator.Validate
	translator ut.Translator
}

// New creates a Loader backed by the bundled dataset.
func New(logger *slog.Logger) *Loader {
	enLoc := en.New()
	uni := ut.New(enLoc, enLoc)
	trans, _ := uni.GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their dataset column name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("json")
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		if tag == "" || tag == "-" {
			return fld.Name
		}
		return tag
	})
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	return &Loader{
		bundle:     bundled,
		logger:     logger,
		validate:   v,
		translator: trans,
	}
}

// Load is shorthand for New(slog.Default()).Load(name).
func Load(name string) ([]domain.Eruption, error) {
	return New(slog.Default()).Load(name)
}

// Load reads the dataset at name, defaulting to DefaultDataset. The default
// name always resolves to the bundled copy; use "./volcano.json" to read a
// file of that name from disk. Any other name is read from disk first and
// falls back to the bundle when no such file exists.
func (l *Loader) Load(name string) ([]domain.Eruption, error) {
	if name == "" {
		name = DefaultDataset
	}

	data, source, err := l.read(name)
	if err != nil {
		return nil, err
	}

	records, err := l.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	l.logger.Info("eruption dataset loaded", "path", name, "source", source, "records", len(records))
	return records, nil
}

// LoadReader decodes a dataset from r.
func (l *Loader) LoadReader(r io.Reader) ([]domain.Eruption, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &domain.IOError{Path: "<reader>", Err: err}
	}
	return l.LoadBytes(data)
}

// LoadBytes decodes a JSON array of eruption objects, preserving order, and
// checks that every record carries the required columns.
func (l *Loader) LoadBytes(data []byte) ([]domain.Eruption, error) {
	var raws []domain.RawEruption
	if err := json.Unmarshal(bytes.TrimSpace(data), &raws); err != nil {
		return nil, &domain.ParseError{Index: -1, Err: err}
	}

	records := make([]domain.Eruption, 0, len(raws))
	for i := range raws {
		if err := l.check(i, raws[i]); err != nil {
			return nil, err
		}
		records = append(records, domain.NewEruption(raws[i]))
	}
	return records, nil
}

func (l *Loader) check(index int, raw domain.RawEruption) error {
	err := l.validate.Struct(raw)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &domain.ParseError{
			Index: index,
			Field: fe.Field(),
			Err:   errors.New(fe.Translate(l.translator)),
		}
	}
	return &domain.ParseError{Index: index, Field: "record", Err: err}
}

// read returns the dataset bytes and where they came from ("file" or "bundled").
func (l *Loader) read(name string) ([]byte, string, error) {
	if name == DefaultDataset {
		data, err := l.readBundled(name)
		if err != nil {
			return nil, "", &domain.IOError{Path: name, Err: err}
		}
		return data, "bundled", nil
	}

	data, err := os.ReadFile(name)
	if err == nil {
		return data, "file", nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, "", &domain.IOError{Path: name, Err: err}
	}

	data, bundleErr := l.readBundled(name)
	if bundleErr != nil {
		return nil, "", &domain.IOError{Path: name, Err: err}
	}
	return data, "bundled", nil
}

func (l *Loader) readBundled(name string) ([]byte, error) {
	bundledPath := path.Join("data", path.Clean(name))
	if !fs.ValidPath(bundledPath) {
		return nil, fs.ErrNotExist
	}
	return fs.ReadFile(l.bundle, bundledPath)
}
