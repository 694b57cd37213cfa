package binding

import "encoding/json"

// LoadJSON decodes a BindingProfile from its JSON document shape. JSON is
// the wire format hosts most often embed directly, so it round-trips
// through the standard library rather than an extra dependency.
func LoadJSON(data []byte) (BindingProfile, error) {
	var doc profileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return BindingProfile{}, err
	}
	return fromProfileDoc(doc), nil
}

// SaveJSON encodes a BindingProfile to its JSON document shape.
func SaveJSON(p BindingProfile) ([]byte, error) {
	return json.Marshal(toProfileDoc(p))
}
