package rpcserver

import (
	"context"

	"github.com/golang/protobuf/ptypes/any"

	graphql "github.com/shyptr/gqlcompiler"
	"github.com/shyptr/gqlcompiler/internal/diagjson"
	"github.com/shyptr/gqlcompiler/parser"
	"github.com/shyptr/gqlcompiler/source"
)

// Server implements CompileServer, wrapping the graphql facade behind the
// Any-wire-message contract and a groupcache-backed schema cache.
type Server struct {
	cache *schemaCache
}

// NewServer returns a Server whose schema cache is bounded to cacheBytes
// of groupcache accounting.
func NewServer(cacheBytes int64) *Server {
	return &Server{cache: newSchemaCache(cacheBytes)}
}

// Compile implements CompileServer. When req.SchemaText is empty, Text is
// compiled and validated as a schema; otherwise SchemaText is resolved
// through the cache and Text is bound and validated against it as an
// executable document.
func (s *Server) Compile(ctx context.Context, in *any.Any) (*any.Any, error) {
	var req CompileRequest
	if err := unpackAny(in, &req); err != nil {
		return nil, err
	}

	if req.SchemaText == "" {
		_, err, schemaSources, cacheHit := s.cache.getOrCompile(req.Text)
		return packAny(compileResponse(diagjson.FromSchemaErr(err, schemaSources), cacheHit))
	}

	validSchema, err, schemaSources, cacheHit := s.cache.getOrCompile(req.SchemaText)
	if err != nil {
		return packAny(compileResponse(diagjson.FromSchemaErr(err, schemaSources), cacheHit))
	}

	execSources := source.NewMap()
	p := parser.New()
	_, execErr := graphql.ParseAndValidateExecutable(p, execSources, validSchema, req.Path, req.Text)
	return packAny(compileResponse(diagjson.FromExecutableErr(execErr, execSources), cacheHit))
}

func compileResponse(diags []diagjson.Diagnostic, cacheHit bool) CompileResponse {
	return CompileResponse{Valid: len(diags) == 0, Diagnostics: diags, CacheHit: cacheHit}
}
