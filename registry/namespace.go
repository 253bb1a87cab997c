package registry

import (
	"os"
	"path/filepath"

	"github.com/blang/semver/v4"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const namespaceFileName = "alconna_namespace.yaml"

var (
	// ErrNamespacePathNotExist mirrors the teacher's config-load sentinel
	// (configs/config.go: errConfigPathNotExist), wrapped via pkg/errors.
	ErrNamespacePathNotExist = errors.New("namespace config path does not exist")
	// ErrNamespaceSchemaTooNew is raised when a loaded namespace file
	// declares a SchemaVersion newer than this build understands.
	ErrNamespaceSchemaTooNew = errors.New("namespace schema version is newer than supported")
)

// SupportedSchemaVersion is the highest namespace-file schema this build
// understands (SPEC_FULL §6 "schema-version tagging").
var SupportedSchemaVersion = semver.MustParse("1.0.0")

// Namespace holds per-namespace default Meta overrides, inherited by every
// command registered under it (spec.md §6 "namespace").
type Namespace struct {
	Name           string            `yaml:"name"`
	SchemaVersion  string            `yaml:"schema_version"`
	Separators     string            `yaml:"separators"`
	FuzzyMatch     bool              `yaml:"fuzzy_match"`
	Strict         bool              `yaml:"strict"`
	FoldCase       bool              `yaml:"fold_case"`
	DisableBuiltin map[string]bool   `yaml:"disable_builtin"`
	Extra          map[string]string `yaml:"extra"`
}

// LoadNamespaceDefaults reads a Namespace definition from dir/alconna_namespace.yaml,
// the way the teacher's Config.load reads birdwatcher.yaml (configs/config.go).
func LoadNamespaceDefaults(dir string) (*Namespace, error) {
	if dir == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, errors.Wrap(err, "resolve home directory")
		}
		dir = home
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrNamespacePathNotExist, dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%s is not a directory", dir)
	}

	bs, err := os.ReadFile(filepath.Join(dir, namespaceFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &Namespace{Name: "default", SchemaVersion: SupportedSchemaVersion.String()}, nil
		}
		return nil, err
	}

	var ns Namespace
	if err := yaml.Unmarshal(bs, &ns); err != nil {
		return nil, errors.Wrap(err, "parse namespace file")
	}
	if ns.SchemaVersion != "" {
		v, err := semver.Parse(ns.SchemaVersion)
		if err != nil {
			return nil, errors.Wrap(err, "parse namespace schema_version")
		}
		if v.GT(SupportedSchemaVersion) {
			return nil, errors.Wrap(ErrNamespaceSchemaTooNew, ns.SchemaVersion)
		}
	}
	return &ns, nil
}
