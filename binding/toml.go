package binding

import toml "github.com/pelletier/go-toml"

// LoadTOML decodes a BindingProfile from its TOML document shape.
func LoadTOML(data []byte) (BindingProfile, error) {
	var doc profileDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return BindingProfile{}, err
	}
	return fromProfileDoc(doc), nil
}

// SaveTOML encodes a BindingProfile to its TOML document shape.
func SaveTOML(p BindingProfile) ([]byte, error) {
	return toml.Marshal(toProfileDoc(p))
}
