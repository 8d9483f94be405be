package bibtex

import "encoding/json"

// recordJSON is the wire shape used when records are embedded in the corpus
// cache artifact. Fields stay a list so their order survives a round trip.
type recordJSON struct {
	Type   string  `json:"type"`
	ID     string  `json:"id"`
	Fields []Field `json:"fields"`
}

// MarshalJSON encodes the record with its field order preserved.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{Type: r.Type, ID: r.ID, Fields: r.fields})
}

// UnmarshalJSON decodes a record, rebuilding the key index.
func (r *Record) UnmarshalJSON(data []byte) error {
	var wire recordJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*r = NewRecord(wire.Type, wire.ID)
	for _, field := range wire.Fields {
		r.Set(field.Key, field.Value)
	}
	return nil
}
