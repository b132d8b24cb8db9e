package report

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var documentSchema []byte

// ValidateDocument checks encoded metrics JSON against the bundled
// schema. The returned error lists every violated constraint.
func ValidateDocument(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(documentSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validating metrics document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("metrics document violates schema: %s", strings.Join(msgs, "; "))
}
