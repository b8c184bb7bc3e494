package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"blockstyle/block"
	"blockstyle/common"
	"blockstyle/responsive"
	"blockstyle/style"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	InstanceConfig struct {
		Strategy common.TokenStrategy `yaml:"strategy"`
		Prefix   string               `yaml:"prefix" validate:"required,max=32"`
	}

	EngineConfig struct {
		// keyed by table variant name
		Breakpoints map[string]responsive.Table `yaml:"breakpoints"`
		Instance    InstanceConfig              `yaml:"instance"`
		Overlay     style.OverlayParams         `yaml:"overlay"`
		Derive      responsive.Factors          `yaml:"derive"`
		CatalogPath string                      `yaml:"catalog_path,omitempty" sanitize:"assure_file_access"`
	}

	StoreConfig struct {
		Path string `yaml:"path,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Engine    EngineConfig   `yaml:"engine"`
		Store     StoreConfig    `yaml:"store"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// checkEngine validates what tags cannot express: breakpoint tables must be
// known variants with well ordered breakpoints.
func checkEngine(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)
	for name, table := range cfg.Engine.Breakpoints {
		if _, err := common.ParseTableVariant(name); err != nil {
			sl.ReportError(table, "breakpoints", "Breakpoints", "variant", name)
			continue
		}
		if err := table.Validate(); err != nil {
			sl.ReportError(table, "breakpoints", "Breakpoints", "table", name)
		}
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkEngine)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// Tables returns configured breakpoint tables by variant. Validated
// configuration never has unknown variants.
func (conf *EngineConfig) Tables() map[common.TableVariant]responsive.Table {
	tables := make(map[common.TableVariant]responsive.Table, len(conf.Breakpoints))
	for name, table := range conf.Breakpoints {
		if v, err := common.ParseTableVariant(name); err == nil {
			tables[v] = table
		}
	}
	return tables
}

// BlockOptions returns engine wide settings for block catalog.
func (conf *EngineConfig) BlockOptions() block.Options {
	return block.Options{
		Factors: conf.Derive,
		Overlay: conf.Overlay.Merge(style.DefaultOverlay()),
		Tables:  conf.Tables(),
	}
}

// Catalog returns built-in block catalog extended with types from
// CatalogPath when configured.
func (conf *EngineConfig) Catalog() (*block.Catalog, error) {
	cat, err := block.Default()
	if err != nil {
		return nil, err
	}
	if conf.CatalogPath == "" {
		return cat, nil
	}
	data, err := os.ReadFile(conf.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read block catalog: %w", err)
	}
	extra, err := block.Load(data)
	if err != nil {
		return nil, fmt.Errorf("unable to load block catalog from %q: %w", conf.CatalogPath, err)
	}
	return cat.Merge(extra), nil
}
