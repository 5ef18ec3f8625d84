package task

import (
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "tasker://task.schema.json"

// Schema is the JSON Schema a task file's tagged fields must satisfy.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Task file",
  "type": "object",
  "required": ["title", "description", "due_date"],
  "properties": {
    "title": {
      "type": "string",
      "minLength": 1,
      "pattern": "\\S"
    },
    "description": {
      "type": "string"
    },
    "due_date": {
      "type": "string",
      "format": "date"
    },
    "status": {
      "enum": ["complete", "incomplete", "unmarked"]
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, strings.NewReader(Schema)); err != nil {
		return nil, fmt.Errorf("add task schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// ValidationError is a schema violation at a field path.
type ValidationError struct {
	Path string // field name, empty for the whole file
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains the outcome of validating one file.
type ValidationResult struct {
	Valid  bool
	Errors []error
}

// Validate checks the tagged fields of a task file against Schema.
func Validate(content []byte) *ValidationResult {
	result := &ValidationResult{Valid: true}

	schema, err := compiledSchema()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err)
		return result
	}

	doc := make(map[string]interface{})
	for k, v := range Fields(content) {
		doc[k] = v
	}
	doc[FieldStatus] = string(statusOf(string(content)))

	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return result
}

func appendSchemaErrors(result *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: fieldPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// fieldPath turns a JSON pointer such as "/due_date" into "due_date".
func fieldPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	ptr = strings.ReplaceAll(ptr, "~1", "/")
	return strings.ReplaceAll(ptr, "~0", "~")
}
