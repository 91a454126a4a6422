package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/router"
)

// DefaultFileName is the configuration file looked up by Find.
const DefaultFileName = "routes.json"

// Format is a configuration document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// candidates are the file names Find tries, in order.
var candidates = []string{"routes.json", "routes.yaml", "routes.yml", "routes.toml"}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New("R041").
		WithPath(path).
		WithSuggestion("Rename the file with a .json, .yaml, .yml or .toml extension")
}

// Decode parses a configuration document.
//
// A "children" value that is not a list fails with R003 before the typed
// decode, so the error names the offending route instead of a Go type.
func Decode(data []byte, format Format) (router.Config, error) {
	var raw any
	if err := unmarshal(data, format, &raw); err != nil {
		return router.Config{}, err
	}
	if err := checkChildren(raw, ""); err != nil {
		return router.Config{}, err
	}

	var cfg router.Config
	if err := unmarshal(data, format, &cfg); err != nil {
		return router.Config{}, err
	}
	return cfg, nil
}

func unmarshal(data []byte, format Format, v any) error {
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, v)
	case FormatYAML:
		err = yaml.Unmarshal(data, v)
	case FormatTOML:
		err = toml.Unmarshal(data, v)
	default:
		return errors.New("R041").WithDetail(fmt.Sprintf("Unknown format %q.", format))
	}
	if err != nil {
		return errors.New("R040").
			WithDetail(fmt.Sprintf("Failed to parse %s: %v", format, err)).
			WithSuggestion(fmt.Sprintf("Check that the document is valid %s", strings.ToUpper(string(format))))
	}
	return nil
}

// checkChildren walks the routes of a generically decoded document and
// rejects any "children" entry that is not a list. Meta is not visited.
func checkChildren(node any, parent string) error {
	switch n := node.(type) {
	case map[string]any:
		key := parent
		if p, ok := n["path"].(string); ok {
			key = parent + p
		}
		if children, ok := n["children"]; ok && children != nil {
			switch children.(type) {
			case []any, []map[string]any:
			default:
				return errors.New("R003").WithPath(key)
			}
		}
		if err := checkChildren(n["routes"], parent); err != nil {
			return err
		}
		if err := checkChildren(n["children"], key); err != nil {
			return err
		}
	case []any:
		for _, v := range n {
			if err := checkChildren(v, parent); err != nil {
				return err
			}
		}
	case []map[string]any:
		for _, v := range n {
			if err := checkChildren(v, parent); err != nil {
				return err
			}
		}
	}
	return nil
}

// Encode renders cfg in the given format.
func Encode(cfg router.Config, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, errors.New("R040").Wrap(err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, errors.New("R040").Wrap(err)
		}
		if err := enc.Close(); err != nil {
			return nil, errors.New("R040").Wrap(err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, errors.New("R040").Wrap(err)
		}
	default:
		return nil, errors.New("R041").WithDetail(fmt.Sprintf("Unknown format %q.", format))
	}
	return buf.Bytes(), nil
}

// LoadFile reads and decodes the configuration file at path.
func LoadFile(path string) (router.Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return router.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return router.Config{}, errors.New("R040").
				WithPath(path).
				WithDetail("No route configuration found at " + path).
				WithSuggestion("Pass the configuration file with --config")
		}
		return router.Config{}, errors.New("R040").WithPath(path).Wrap(err)
	}

	cfg, err := Decode(data, format)
	if err != nil {
		if re, ok := err.(*errors.RouterError); ok && re.Code != "R003" {
			re.Path = path
		}
		return router.Config{}, err
	}
	return cfg, nil
}

// SaveFile writes cfg to path in the format implied by its extension.
func SaveFile(cfg router.Config, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(cfg, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("R040").WithPath(path).Wrap(err)
	}
	return nil
}

// Find returns the first default configuration file present in dir.
func Find(dir string) (string, error) {
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.New("R040").
		WithPath(dir).
		WithDetail("No " + strings.Join(candidates, ", ") + " found in " + dir).
		WithSuggestion("Create " + DefaultFileName + " or pass --config")
}

// IsS3 reports whether location names an S3 object.
func IsS3(location string) bool {
	return strings.HasPrefix(location, s3Scheme)
}
