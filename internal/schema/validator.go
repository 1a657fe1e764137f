// Package schema validates generated artifacts against the JSON schemas embedded in
// the binary.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	derrors "github.com/tiation/deploygen/internal/errors"
)

// HostingSchemaURL identifies the embedded hosting schema.
const HostingSchemaURL = "https://schemas.tiation.dev/deploygen/surge.schema.json"

//go:embed surge.schema.json
var hostingSchema []byte

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(HostingSchemaURL, bytes.NewReader(hostingSchema)); err != nil {
			schemaErr = fmt.Errorf("add hosting schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(HostingSchemaURL)
	})
	return compiledSchema, schemaErr
}

// ValidateHosting checks a rendered surge.json document.
func ValidateHosting(data []byte) error {
	sch, err := loadSchema()
	if err != nil {
		return derrors.InternalError("hosting schema failed to compile", err)
	}

	var document any
	if err := json.Unmarshal(data, &document); err != nil {
		return derrors.SchemaViolation("surge.json", fmt.Errorf("decode json: %w", err))
	}
	if err := sch.Validate(document); err != nil {
		return derrors.SchemaViolation("surge.json", err)
	}
	return nil
}
