package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
		errMsg  string
	}{
		{name: "valid config", doc: "work_dir: /srv/feeds\nrun:\n  max_workers: 2\nserver:\n  listen: :8080\n"},
		{name: "empty document", doc: ""},
		{name: "empty section", doc: "work_dir: /srv/feeds\nfetch:\n"},
		{name: "unknown top level key", doc: "work_dir: /srv/feeds\nworkdir: /tmp\n", wantErr: true,
			errMsg: "workdir is not allowed"},
		{name: "unknown nested key", doc: "run:\n  max_worker: 2\n", wantErr: true, errMsg: "run.max_worker is not allowed"},
		{name: "unknown inline section key", doc: "server:\n  port: 80\n", wantErr: true, errMsg: "server.port is not allowed"},
		{name: "scalar instead of section", doc: "housekeeping: 5\n", wantErr: true, errMsg: "housekeeping must be a section"},
		{name: "all problems reported", doc: "foo: 1\nrun:\n  bar: 2\n", wantErr: true, errMsg: "foo is not allowed; run.bar is not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyAgainstEmbeddedSchema([]byte(tt.doc))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(data), "work_dir")
	assert.Contains(t, string(data), "max_workers")
}

func TestGenerateFeedSchema(t *testing.T) {
	schema, err := GenerateFeedSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(data), "list_url_list")
	assert.Contains(t, string(data), "sort_field_pattern")
	assert.Contains(t, string(data), "url_prefix_for_guid")
}
