// Package validate checks incoming payloads against embedded JSON
// schemas before they reach storage.
package validate

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/qri-io/jsonschema"
)

//go:embed entry_schema.json
var entrySchemaJSON []byte

var (
	entryOnce   sync.Once
	entrySchema *jsonschema.Schema
	entryErr    error
)

func loadEntrySchema() (*jsonschema.Schema, error) {
	entryOnce.Do(func() {
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(entrySchemaJSON, rs); err != nil {
			entryErr = fmt.Errorf("compile entry schema: %w", err)
			return
		}
		entrySchema = rs
	})

	return entrySchema, entryErr
}

// Entry validates a raw entry-creation payload. The returned slice
// holds one message per violated constraint; it is empty for a valid
// payload.
func Entry(ctx context.Context, body []byte) ([]string, error) {
	rs, err := loadEntrySchema()
	if err != nil {
		return nil, err
	}

	keyErrs, err := rs.ValidateBytes(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("validate entry: %w", err)
	}

	msgs := make([]string, 0, len(keyErrs))
	for _, ke := range keyErrs {
		msgs = append(msgs, ke.Error())
	}

	return msgs, nil
}
