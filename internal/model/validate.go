package model

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/*.json
var schemaFS embed.FS

var (
	schemaOnce sync.Once
	schemas    map[string]*gojsonschema.Schema
	schemaErr  error
)

func loadSchemas() {
	schemas = map[string]*gojsonschema.Schema{}
	for _, name := range []string{"cv", "letter"} {
		b, err := schemaFS.ReadFile("schema/" + name + ".schema.json")
		if err != nil {
			schemaErr = err
			return
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
		if err != nil {
			schemaErr = fmt.Errorf("compile %s schema: %w", name, err)
			return
		}
		schemas[name] = s
	}
}

// ValidateCV validates a decoded CV document against the embedded CV schema.
func ValidateCV(m map[string]any) error { return validate("cv", m) }

// ValidateLetter validates a decoded letter against the embedded letter schema.
func ValidateLetter(m map[string]any) error { return validate("letter", m) }

func validate(name string, m map[string]any) error {
	schemaOnce.Do(loadSchemas)
	if schemaErr != nil {
		return schemaErr
	}
	res, err := schemas[name].Validate(gojsonschema.NewGoLoader(m))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
