package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptJSONIncludesCategoryName(t *testing.T) {
	p := Prompt{ID: 3, Title: "Greet", Content: "Hi {name}", Variables: []string{"name"}, CategoryID: 1, Category: &Category{ID: 1, Name: "General"}}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "General", got["category_name"])
	assert.Equal(t, "Greet", got["title"])
	assert.Equal(t, []interface{}{"name"}, got["variables"])
	assert.NotContains(t, got, "Category")
}

func TestPromptJSONWithoutCategory(t *testing.T) {
	raw, err := json.Marshal(&Prompt{ID: 1})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"category_name":""`)
}
