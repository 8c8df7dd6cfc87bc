package models

// Record is a raw Odoo record after field-name normalization. Odoo
// reports unset fields as boolean false rather than omitting them, and
// many2one references as [id, display_name] pairs; the accessors below
// absorb both conventions.
type Record map[string]any

// Str returns the string value of key, or "" when unset.
func (r Record) Str(key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

// Int returns the integer value of key, or 0 when unset.
func (r Record) Int(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// Float returns the float value of key, or 0 when unset.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// Bool returns the boolean value of key. Unset fields are false, which
// coincides with Odoo's own convention.
func (r Record) Bool(key string) bool {
	if b, ok := r[key].(bool); ok {
		return b
	}
	return false
}

// Ref decodes a many2one value ([id, name]) into a reference, or nil
// when the field is unset.
func (r Record) Ref(key string) *Ref {
	pair, ok := r[key].([]any)
	if !ok || len(pair) == 0 {
		return nil
	}

	ref := &Ref{}
	switch id := pair[0].(type) {
	case int64:
		ref.ID = id
	case float64:
		ref.ID = int64(id)
	default:
		return nil
	}
	if len(pair) > 1 {
		if name, ok := pair[1].(string); ok {
			ref.Name = name
		}
	}
	return ref
}

// Refs decodes a many2many value into references. search_read returns
// many2many fields as plain id lists; read in some contexts returns
// [id, name] pairs. Both decode.
func (r Record) Refs(key string) []Ref {
	items, ok := r[key].([]any)
	if !ok {
		return nil
	}

	refs := make([]Ref, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case int64:
			refs = append(refs, Ref{ID: v})
		case float64:
			refs = append(refs, Ref{ID: int64(v)})
		case []any:
			if len(v) >= 2 {
				id, okID := v[0].(int64)
				name, okName := v[1].(string)
				if okID && okName {
					refs = append(refs, Ref{ID: id, Name: name})
				}
			}
		}
	}
	return refs
}
