package model

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Postgres rejects ''::jsonb, so every jsonb column needs a database
// default for the pending-row insert. The usecases also set the
// placeholder explicitly, but the schema default is the backstop.
func TestJSONBColumnsDeclareDefaults(t *testing.T) {
	records := []any{
		JDAnalysis{},
		CapstoneProject{},
		RepoAnalysis{},
		Scaffold{},
		Portfolio{},
		FitnessScore{},
	}

	for _, record := range records {
		typ := reflect.TypeOf(record)
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			tag := field.Tag.Get("gorm")
			if !strings.Contains(tag, "jsonb") {
				continue
			}
			assert.Contains(t, tag, "default:'",
				"%s.%s is jsonb without a default", typ.Name(), field.Name)
		}
	}
}

// A zero pgvector.Vector serializes to "[]", which Postgres rejects for
// a typed vector column. The field must stay a pointer so records
// without an embedding bind SQL NULL.
func TestEmbeddingColumnIsNullable(t *testing.T) {
	field, ok := reflect.TypeOf(JDAnalysis{}).FieldByName("Embedding")
	require.True(t, ok)
	assert.Equal(t, reflect.Ptr, field.Type.Kind())
}

func TestAsJSONNeverEmpty(t *testing.T) {
	assert.Equal(t, "{}", AsJSON(struct{}{}))
	assert.Equal(t, "[]", AsJSON([]string{}))
	assert.Equal(t, "null", AsJSON(nil))
	assert.NotEmpty(t, AsJSON(SkillProfile{}))
}

func TestEmptyPlaceholders(t *testing.T) {
	assert.Equal(t, "{}", EmptyObject)
	assert.Equal(t, "[]", EmptyArray)
}
