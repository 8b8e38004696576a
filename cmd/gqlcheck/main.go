// Command gqlcheck validates the `.graphql`/`.graphqls` files named by a
// `.graphqlconfig.yaml` (SPEC_FULL.md §6 "cmd/gqlcheck") and prints any
// diagnostics as a JSON array in spec.md §6's error shape. Sources are
// read through gocloud.dev/blob so a config can point at `file://`,
// `s3://` or `gs://` roots uniformly; the blank imports below register
// each scheme's driver with the blob package, the usual gocloud wiring
// pattern.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"

	graphql "github.com/shyptr/gqlcompiler"
	"github.com/shyptr/gqlcompiler/internal/config"
	"github.com/shyptr/gqlcompiler/internal/diagjson"
	"github.com/shyptr/gqlcompiler/parser"
	"github.com/shyptr/gqlcompiler/source"
)

func main() {
	configPath := flag.String("config", ".graphqlconfig.yaml", "path to .graphqlconfig.yaml")
	flag.Parse()

	if err := run(*configPath, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "gqlcheck:", err)
		os.Exit(1)
	}
}

func run(configPath string, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	files, err := loadSourceFiles(ctx, cfg.Sources)
	if err != nil {
		return err
	}

	diags := checkFiles(files, cfg.RecursionLimit)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(diags); err != nil {
		return fmt.Errorf("gqlcheck: encoding diagnostics: %w", err)
	}
	if len(diags) > 0 {
		os.Exit(1)
	}
	return nil
}

type sourceFile struct {
	path string
	text string
}

// loadSourceFiles opens each root as a blob bucket and lists every
// `.graphql`/`.graphqls` object under it.
func loadSourceFiles(ctx context.Context, roots []string) ([]sourceFile, error) {
	var files []sourceFile
	for _, root := range roots {
		bucket, err := blob.OpenBucket(ctx, root)
		if err != nil {
			return nil, fmt.Errorf("gqlcheck: opening %s: %w", root, err)
		}
		err = func() error {
			defer bucket.Close()
			iter := bucket.List(nil)
			for {
				obj, err := iter.Next(ctx)
				if err == io.EOF {
					break
				}
				if err != nil {
					return fmt.Errorf("gqlcheck: listing %s: %w", root, err)
				}
				if !isGraphQLFile(obj.Key) {
					continue
				}
				data, err := bucket.ReadAll(ctx, obj.Key)
				if err != nil {
					return fmt.Errorf("gqlcheck: reading %s: %w", obj.Key, err)
				}
				files = append(files, sourceFile{path: root + "/" + obj.Key, text: string(data)})
			}
			return nil
		}()
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func isGraphQLFile(key string) bool {
	return strings.HasSuffix(key, ".graphql") || strings.HasSuffix(key, ".graphqls")
}

// checkFiles builds and validates one Schema from every `.graphqls` file
// combined, then validates every `.graphql` file's operations against it,
// collecting diagnostics as spec.md §6 JSON entries. When the schema has
// diagnostics, only those are returned and no operation file is checked.
func checkFiles(files []sourceFile, recursionLimit int) []diagjson.Diagnostic {
	sources := source.NewMap()
	p := parser.New()
	if recursionLimit > 0 {
		p.SetRecursionLimit(recursionLimit)
	}

	var schemaText strings.Builder
	var operationFiles []sourceFile
	for _, f := range files {
		if strings.HasSuffix(f.path, ".graphqls") {
			schemaText.WriteString(f.text)
			schemaText.WriteString("\n")
		} else {
			operationFiles = append(operationFiles, f)
		}
	}

	var out []diagjson.Diagnostic

	validSchema, err := graphql.ParseAndValidateSchema(p, sources, "<schema>", schemaText.String())
	if err != nil {
		out = append(out, diagjson.FromSchemaErr(err, sources)...)
		return out
	}

	for _, f := range operationFiles {
		if _, err := graphql.ParseAndValidateExecutable(p, sources, validSchema, f.path, f.text); err != nil {
			out = append(out, diagjson.FromExecutableErr(err, sources)...)
		}
	}
	return out
}
