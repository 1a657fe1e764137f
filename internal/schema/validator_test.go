package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiation/deploygen/internal/catalog"
	"github.com/tiation/deploygen/internal/config"
	derrors "github.com/tiation/deploygen/internal/errors"
	"github.com/tiation/deploygen/internal/surge"
)

func TestValidateHosting_AcceptsEveryBuiltinDocument(t *testing.T) {
	for _, repo := range catalog.Builtin().All() {
		t.Run(repo.Key, func(t *testing.T) {
			out, err := surge.Render(surge.Build(repo, config.Default()))
			require.NoError(t, err)
			require.NoError(t, ValidateHosting(out))
		})
	}
}

func TestValidateHosting_RejectsViolations(t *testing.T) {
	repo, err := catalog.Builtin().Lookup("tiation-cms")
	require.NoError(t, err)
	out, err := surge.Render(surge.Build(repo, config.Default()))
	require.NoError(t, err)

	mutations := map[string]func(map[string]any){
		"missing domain":   func(m map[string]any) { delete(m, "domain") },
		"uppercase domain": func(m map[string]any) { m["domain"] = "Tiation.SURGE.sh" },
		"unknown key":      func(m map[string]any) { m["extra"] = true },
		"bad redirect":     func(m map[string]any) { m["redirects"] = []any{map[string]any{"source": "/a", "destination": "/", "type": 200}} },
		"non-string header": func(m map[string]any) {
			m["headers"] = map[string]any{"/**": map[string]any{"X-Test": 1}}
		},
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			var doc map[string]any
			require.NoError(t, json.Unmarshal(out, &doc))
			mutate(doc)
			data, err := json.Marshal(doc)
			require.NoError(t, err)

			err = ValidateHosting(data)
			require.Error(t, err)
			assert.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
		})
	}
}

func TestValidateHosting_RejectsInvalidJSON(t *testing.T) {
	err := ValidateHosting([]byte("{"))
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
}
