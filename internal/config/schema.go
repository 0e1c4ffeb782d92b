package config

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/gopak/mgrep/internal/assets"
	"github.com/xeipuuv/gojsonschema"
)

// SchemaError lists the schema violations of a merged config and the files
// it was merged from.
type SchemaError struct {
	Sources  []string
	Problems []string
}

func (e *SchemaError) Error() string {
	msg := "schema validation failed: " + strings.Join(e.Problems, "; ")
	if len(e.Sources) > 0 {
		msg += " (merged from " + strings.Join(e.Sources, ", ") + ")"
	}
	return msg
}

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	if len(assets.ConfigSchema) == 0 {
		return nil, errors.New("schema not embedded")
	}
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(assets.ConfigSchema))
})

// Validate checks cfg against the embedded schema. sources only feeds the
// error message.
func Validate(cfg Config, sources ...string) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	doc, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	problems := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		problems = append(problems, e.Field()+": "+e.Description())
	}
	return &SchemaError{Sources: sources, Problems: problems}
}
