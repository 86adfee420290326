package config

import (
	"fmt"
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// LoadYAMLStore reads a nested YAML document and flattens it into
// slash-separated paths:
//
//	catalog:
//	  search:
//	    engine: elasticsearch
//
// becomes "catalog/search/engine".
func LoadYAMLStore(path string) (*MapStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseYAMLStore(data)
}

func ParseYAMLStore(data []byte) (*MapStore, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	values := make(map[string]string)
	flatten("", doc, values)
	return NewMapStore(values), nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for key, value := range node {
		path := key
		if prefix != "" {
			path = prefix + "/" + key
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(path, v, out)
		case []any:
			out[path] = joinList(v)
		case nil:
			out[path] = ""
		default:
			out[path] = cast.ToString(v)
		}
	}
}

func joinList(values []any) string {
	result := ""
	for i, v := range values {
		if i > 0 {
			result += ","
		}
		result += cast.ToString(v)
	}
	return result
}
