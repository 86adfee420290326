package catalog

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/matst80/slask-layer/pkg/types"
	"gopkg.in/yaml.v3"
)

// Provider yields the filterable attributes for the current catalog
// context, in display order.
type Provider interface {
	Filterable(ctx context.Context) ([]types.AttributeDescriptor, error)
}

type StaticProvider []types.AttributeDescriptor

func (p StaticProvider) Filterable(ctx context.Context) ([]types.AttributeDescriptor, error) {
	return slices.Clone(p), nil
}

type attributeFile struct {
	Attributes []types.AttributeDescriptor `yaml:"attributes"`
}

// LoadYAML reads an attribute list file:
//
//	attributes:
//	  - code: price
//	    backend_type: decimal
func LoadYAML(path string) (StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file attributeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse attributes %s: %w", path, err)
	}
	SortByPosition(file.Attributes)
	return StaticProvider(file.Attributes), nil
}

func SortByPosition(attrs []types.AttributeDescriptor) {
	slices.SortStableFunc(attrs, func(a, b types.AttributeDescriptor) int {
		return a.Position - b.Position
	})
}
