package bibtex

import "strings"

// Field is a single key/value pair inside a record.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Record is one bibliographic entry: the entry type, the citation key, and an
// ordered list of fields. Field keys are case-insensitive and stored
// lowercased; iteration order is insertion order, which the serializer
// preserves on output.
type Record struct {
	Type   string
	ID     string
	fields []Field
	index  map[string]int
}

// NewRecord creates an empty record with the given entry type and citation key.
func NewRecord(entryType, id string) Record {
	return Record{
		Type:  strings.ToLower(strings.TrimSpace(entryType)),
		ID:    strings.TrimSpace(id),
		index: make(map[string]int),
	}
}

// Get returns the value for key and whether the field exists.
func (r *Record) Get(key string) (string, bool) {
	if r.index == nil {
		return "", false
	}
	i, ok := r.index[normalizeKey(key)]
	if !ok {
		return "", false
	}
	return r.fields[i].Value, true
}

// Value returns the value for key, or the empty string when absent.
func (r *Record) Value(key string) string {
	v, _ := r.Get(key)
	return v
}

// Has reports whether the record carries the given field.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Set stores a field value. An existing field is updated in place, keeping its
// position; a new field is appended.
func (r *Record) Set(key, value string) {
	key = normalizeKey(key)
	if key == "" {
		return
	}
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[key]; ok {
		r.fields[i].Value = value
		return
	}
	r.index[key] = len(r.fields)
	r.fields = append(r.fields, Field{Key: key, Value: value})
}

// Delete removes a field if present and reports whether it existed.
func (r *Record) Delete(key string) bool {
	key = normalizeKey(key)
	i, ok := r.index[key]
	if !ok {
		return false
	}
	r.fields = append(r.fields[:i], r.fields[i+1:]...)
	delete(r.index, key)
	for k, j := range r.index {
		if j > i {
			r.index[k] = j - 1
		}
	}
	return true
}

// Fields returns the record's fields in order. The returned slice is a copy.
func (r *Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of fields, excluding the type and citation key.
func (r *Record) Len() int {
	return len(r.fields)
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() Record {
	out := Record{
		Type:   r.Type,
		ID:     r.ID,
		fields: make([]Field, len(r.fields)),
		index:  make(map[string]int, len(r.index)),
	}
	copy(out.fields, r.fields)
	for k, v := range r.index {
		out.index[k] = v
	}
	return out
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
