package pipeline

import (
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/iisrank/pkg/errors"
)

// LoadConfig decodes a TOML (.toml) or YAML (.yaml, .yml) file onto opts.
// Keys missing from the file keep their current value in opts, so callers
// start from [DefaultOptions]. Unknown keys are rejected.
func LoadConfig(path string, opts *Options) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return loadTOML(path, opts)
	case ".yaml", ".yml":
		return loadYAML(path, opts)
	default:
		return errors.Config("unsupported config file %q (want .toml, .yaml or .yml)", path)
	}
}

func loadTOML(path string, opts *Options) error {
	md, err := toml.DecodeFile(path, opts)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Config("unknown key %q in %s", undecoded[0].String(), path)
	}
	return nil
}

func loadYAML(path string, opts *Options) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(opts); err != nil && !stderrors.Is(err, io.EOF) {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return nil
}

// WriteArtifact writes data to path, creating parent directories.
func WriteArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
