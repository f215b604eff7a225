package docs

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type openAPI struct {
	Paths map[string]map[string]any `json:"paths"`
}

func TestDocRegistradoYSincronizado(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var registered openAPI
	require.NoError(t, json.Unmarshal([]byte(raw), &registered))
	assert.Contains(t, registered.Paths, "/api/sales/{id}/pdf")
	assert.Contains(t, registered.Paths["/api/purchases/{id}/status"], "patch")

	file, err := os.ReadFile("swagger.json")
	require.NoError(t, err)
	var served openAPI
	require.NoError(t, json.Unmarshal(file, &served))
	assert.Len(t, served.Paths, len(registered.Paths))
}
