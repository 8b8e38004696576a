// Package config loads the `.graphqlconfig.yaml` file the CLI and daemons
// read on startup (SPEC_FULL.md §2 "Configuration"): source roots, builder
// options, and daemon bind addresses. Decoding uses gopkg.in/yaml.v2, the
// teacher's own dependency; the decoded value is then checked with
// github.com/go-playground/validator/v10, grounded on the teacher's
// schemabuilder/validator.go singleton-validator pattern.
package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v2"
)

// Config is the decoded shape of `.graphqlconfig.yaml`.
type Config struct {
	// Sources lists the root paths/URIs (gocloud.dev/blob-style, e.g.
	// "file://./schema", "s3://bucket/schema") gqlcheck reads .graphql/
	// .graphqls files from.
	Sources []string `yaml:"sources" validate:"required,min=1,dive,required"`

	// AdoptOrphanExtensions mirrors schema.BuilderOption's
	// adopt-orphan-extensions switch (spec.md §4.3 Open Question). It is
	// decoded and validated here only: cmd/gqlcheck, cmd/gqlcheckd and
	// cmd/gqlwatch do not pass it to the schema builder, so they always
	// report an orphan extension as OrphanExtension.
	AdoptOrphanExtensions bool `yaml:"adopt_orphan_extensions"`

	// RecursionLimit overrides the parser's default recursion depth
	// (spec.md §6 "parser recursion limit"); zero means "use the
	// parser's own default".
	RecursionLimit int `yaml:"recursion_limit" validate:"gte=0"`

	// Daemon holds cmd/gqlcheckd's bind address; zero value if the config
	// is only ever used by the gqlcheck/gqlwatch CLIs.
	Daemon DaemonConfig `yaml:"daemon"`

	// Watch holds cmd/gqlwatch's bind address and poll interval.
	Watch WatchConfig `yaml:"watch"`
}

// DaemonConfig configures cmd/gqlcheckd's gRPC listener.
type DaemonConfig struct {
	ListenAddr string `yaml:"listen_addr" validate:"omitempty,hostname_port"`
}

// WatchConfig configures cmd/gqlwatch's WebSocket listener and poll rate.
type WatchConfig struct {
	ListenAddr   string `yaml:"listen_addr" validate:"omitempty,hostname_port"`
	PollSeconds  int    `yaml:"poll_seconds" validate:"gte=1"`
}

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// newValidate returns the package-wide validator.Validate, built once —
// the same once.Do-guarded singleton the teacher's
// schemabuilder.NewValidate uses, since validator.New() is documented as
// safe to share and expensive to rebuild per call.
func newValidate() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New()
	})
	return validatorInst
}

// Load reads and decodes the YAML file at path, applying defaults and then
// validating the result. A zero PollSeconds defaults to 5 before
// validation runs, so callers that don't care about gqlwatch don't have to
// spell it out.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.Watch.PollSeconds == 0 {
		cfg.Watch.PollSeconds = 5
	}
	if err := newValidate().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}
