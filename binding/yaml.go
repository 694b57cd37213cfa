package binding

import "gopkg.in/yaml.v3"

// LoadYAML decodes a BindingProfile from its YAML document shape.
func LoadYAML(data []byte) (BindingProfile, error) {
	var doc profileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return BindingProfile{}, err
	}
	return fromProfileDoc(doc), nil
}

// SaveYAML encodes a BindingProfile to its YAML document shape.
func SaveYAML(p BindingProfile) ([]byte, error) {
	return yaml.Marshal(toProfileDoc(p))
}
