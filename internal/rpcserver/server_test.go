package rpcserver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Compile_ValidSchema(t *testing.T) {
	srv := NewServer(1 << 20)
	in, err := packAny(CompileRequest{Text: "type Query { hello: String }"})
	require.NoError(t, err)

	out, err := srv.Compile(context.Background(), in)
	require.NoError(t, err)

	var resp CompileResponse
	require.NoError(t, unpackAny(out, &resp))
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Diagnostics)
	assert.False(t, resp.CacheHit)
}

func TestServer_Compile_InvalidSchemaReportsDiagnostics(t *testing.T) {
	srv := NewServer(1 << 20)
	in, err := packAny(CompileRequest{Text: "type Query { hello: NotAType }"})
	require.NoError(t, err)

	out, err := srv.Compile(context.Background(), in)
	require.NoError(t, err)

	var resp CompileResponse
	require.NoError(t, unpackAny(out, &resp))
	assert.False(t, resp.Valid)
	assert.NotEmpty(t, resp.Diagnostics)
}

func TestServer_Compile_CacheHitOnSecondCall(t *testing.T) {
	srv := NewServer(1 << 20)
	schemaText := "type Query { hello: String }"
	in, err := packAny(CompileRequest{SchemaText: schemaText, Text: "{ hello }"})
	require.NoError(t, err)

	out1, err := srv.Compile(context.Background(), in)
	require.NoError(t, err)
	var resp1 CompileResponse
	require.NoError(t, unpackAny(out1, &resp1))
	assert.False(t, resp1.CacheHit)

	out2, err := srv.Compile(context.Background(), in)
	require.NoError(t, err)
	var resp2 CompileResponse
	require.NoError(t, unpackAny(out2, &resp2))
	assert.True(t, resp2.CacheHit)
	assert.True(t, resp2.Valid)
}
