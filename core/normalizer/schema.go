package normalizer

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	apperrors "github.com/smeggmann99/arrango-scheduler/core/errors"
)

//go:embed request.schema.json
var requestSchemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaCompileErr error
)

func compiledRequestSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("request.schema.json", bytes.NewReader(requestSchemaJSON)); err != nil {
			schemaCompileErr = err
			return
		}
		compiledSchema, schemaCompileErr = compiler.Compile("request.schema.json")
	})
	return compiledSchema, schemaCompileErr
}

// ValidateSchema rejects a request body that does not even match the
// coarse JSON-Schema shape (wrong JSON types, etc.), ahead of the more
// detailed semantic checks performed by Normalize.
func ValidateSchema(raw []byte) *apperrors.Error {
	schema, err := compiledRequestSchema()
	if err != nil {
		return apperrors.Internal(err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return apperrors.InvalidInput("", "request body is not valid JSON: %v", err)
	}

	if err := schema.Validate(doc); err != nil {
		return apperrors.InvalidInput("", "request failed schema validation: %v", err)
	}
	return nil
}
