package validation

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed job.schema.json
var jobSchemaJSON []byte

var jobSchema = mustSchema(jobSchemaJSON)

func mustSchema(raw []byte) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("validation: invalid embedded schema: %v", err))
	}
	return schema
}

// ValidateJob validates a raw job posting body against the embedded schema.
// The returned error lists every violation.
func ValidateJob(body []byte) error {
	res, err := jobSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("job payload is not valid JSON: %w", err)
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
