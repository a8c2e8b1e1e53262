package core

// FieldSchema describes a single module input or output.
type FieldSchema struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Doc      string `json:"doc,omitempty"`
	Optional bool   `json:"optional,omitempty"`
}

// ModuleTypeInfo is the structured metadata the host registry holds for a module type.
type ModuleTypeInfo struct {
	TypeName      string        `json:"type_name"`
	Doc           string        `json:"documentation"`
	InputsSchema  []FieldSchema `json:"inputs_schema"`
	OutputsSchema []FieldSchema `json:"outputs_schema"`
}

// Input returns the input field with the given name.
func (m *ModuleTypeInfo) Input(name string) (FieldSchema, bool) {
	return findField(m.InputsSchema, name)
}

// Output returns the output field with the given name.
func (m *ModuleTypeInfo) Output(name string) (FieldSchema, bool) {
	return findField(m.OutputsSchema, name)
}

func findField(fields []FieldSchema, name string) (FieldSchema, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSchema{}, false
}
