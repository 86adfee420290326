package types

const BooleanSourceModel = "eav/entity_attribute_source_boolean"

// AttributeDescriptor describes one filterable catalog attribute as handed
// out by the attribute metadata provider.
type AttributeDescriptor struct {
	Code        string `json:"code" yaml:"code"`
	SourceModel string `json:"sourceModel,omitempty" yaml:"source_model,omitempty"`
	BackendType string `json:"backendType,omitempty" yaml:"backend_type,omitempty"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Position    int    `json:"position,omitempty" yaml:"position,omitempty"`
}

func (a *AttributeDescriptor) FilterName() string {
	return a.Code + FilterNameSuffix
}

func (a *AttributeDescriptor) UpdateFrom(other *AttributeDescriptor) {
	if other == nil {
		return
	}
	if other.SourceModel != "" {
		a.SourceModel = other.SourceModel
	}
	if other.BackendType != "" {
		a.BackendType = other.BackendType
	}
	if other.Label != "" {
		a.Label = other.Label
	}
	a.Position = other.Position
}
