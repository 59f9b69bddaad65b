package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dan-solli/ocigenai/pkg/embeddings"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "cohere.embed-english-v3.0", cfg.ModelName)
	assert.Equal(t, "END", cfg.Truncate)
	assert.Equal(t, embeddings.DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, "API_KEY", cfg.Auth.Type)
	assert.Equal(t, "DEFAULT", cfg.Auth.Profile)
	assert.Equal(t, "embeddings.db", cfg.StorePath)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocigenai.yaml")
	content := `model_name: cohere.embed-english-light-v3.0
service_endpoint: https://inference.generativeai.us-chicago-1.oci.oraclecloud.com
compartment_id: ocid1.compartment.oc1..example
batch_size: 16
auth:
  type: instance_principal
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "cohere.embed-english-light-v3.0", cfg.ModelName)
	assert.Equal(t, 16, cfg.BatchSize)
	assert.Equal(t, "ocid1.compartment.oc1..example", cfg.CompartmentID)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	oci, err := cfg.OCIConfig()
	require.NoError(t, err)
	assert.Equal(t, embeddings.AuthTypeInstancePrincipal, oci.AuthType)
	assert.Equal(t, "https://inference.generativeai.us-chicago-1.oci.oraclecloud.com", oci.ServiceEndpoint)
	assert.Equal(t, 16, oci.BatchSize)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("OCIGENAI_MODEL_NAME", "cohere.embed-multilingual-v3.0")
	t.Setenv("OCIGENAI_AUTH_TYPE", "SECURITY_TOKEN")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "cohere.embed-multilingual-v3.0", cfg.ModelName)
	assert.Equal(t, "SECURITY_TOKEN", cfg.Auth.Type)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"OCIGENAI_AUTH_TYPE": "PASSWORD",
		"OCIGENAI_LOG_LEVEL": "loud",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load(New(), "")
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
