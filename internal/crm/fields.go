// Package crm contains the query/translation core: the custom-field
// mapper, the domain builder, the per-entity repositories against the
// remote server, the lead lifecycle, and the dashboard aggregator.
// Everything here is stateless; the remote server owns all records.
package crm

import (
	"fmt"
	"os"

	"github.com/isep-edu/crm-gateway/internal/models"
	"gopkg.in/yaml.v3"
)

// defaultFieldEntries maps generic attribute names to the deployment's
// Studio custom-field names. Standard fields pass through untouched.
var defaultFieldEntries = map[string]string{
	"program_id":        "x_studio_programa_academico",
	"canal_contacto":    "x_studio_canal_de_contacto",
	"programa_interes":  "x_studio_programa_de_inters",
	"fecha_firma":       "x_studio_fecha_de_firma",
	"mautic_id":         "x_studio_id_mautic",
	"duracion_convenio": "x_studio_duracin_de_convenio",
	"correo_existe":     "x_studio_correo_existe",
	"correo_revisado":   "x_studio_correo_revisado",
	"bool_interes":      "x_studio_bool_interes",
}

// FieldMap is a bidirectional mapping between generic attribute names
// and institution-specific custom-attribute names. Injective on the
// mapped subset in both directions.
type FieldMap struct {
	toRemote   map[string]string
	fromRemote map[string]string
}

// NewFieldMap builds a FieldMap from generic→remote entries, rejecting
// collisions in either direction.
func NewFieldMap(entries map[string]string) (*FieldMap, error) {
	m := &FieldMap{
		toRemote:   make(map[string]string, len(entries)),
		fromRemote: make(map[string]string, len(entries)),
	}
	if err := m.merge(entries); err != nil {
		return nil, err
	}
	return m, nil
}

// DefaultFieldMap returns the built-in mapping table.
func DefaultFieldMap() *FieldMap {
	m, err := NewFieldMap(defaultFieldEntries)
	if err != nil {
		// The built-in table is validated by tests; a collision here is
		// a programming error.
		panic(err)
	}
	return m
}

// LoadFieldMap builds the default map and, when path is non-empty,
// merges deployment-specific overrides from a YAML file of
// generic→remote pairs.
func LoadFieldMap(path string) (*FieldMap, error) {
	m := DefaultFieldMap()
	if path == "" {
		return m, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read field mapping file: %w", err)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse field mapping file %s: %w", path, err)
	}

	if err := m.merge(overrides); err != nil {
		return nil, fmt.Errorf("invalid field mapping file %s: %w", path, err)
	}
	return m, nil
}

func (m *FieldMap) merge(entries map[string]string) error {
	for generic, remote := range entries {
		if generic == "" || remote == "" {
			return fmt.Errorf("empty field name in mapping %q -> %q", generic, remote)
		}
		// Re-mapping an existing generic name is allowed (override);
		// two generic names may not collide on one remote name.
		if prev, ok := m.fromRemote[remote]; ok && prev != generic {
			return fmt.Errorf("remote field %q mapped by both %q and %q", remote, prev, generic)
		}
		if old, ok := m.toRemote[generic]; ok {
			delete(m.fromRemote, old)
		}
		m.toRemote[generic] = remote
		m.fromRemote[remote] = generic
	}
	return nil
}

// ToRemote translates a generic attribute name to its remote name.
// Unmapped names pass through unchanged.
func (m *FieldMap) ToRemote(name string) string {
	if remote, ok := m.toRemote[name]; ok {
		return remote
	}
	return name
}

// ToRemoteFields translates a list of generic field names.
func (m *FieldMap) ToRemoteFields(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = m.ToRemote(name)
	}
	return out
}

// ToRemoteValues translates the keys of a write payload.
func (m *FieldMap) ToRemoteValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[m.ToRemote(k)] = v
	}
	return out
}

// FromRemote reverse-maps every institution-specific key in a raw
// record back to its generic name. Remote fields without a mapping
// entry pass through unchanged.
func (m *FieldMap) FromRemote(raw map[string]any) models.Record {
	rec := make(models.Record, len(raw))
	for k, v := range raw {
		if generic, ok := m.fromRemote[k]; ok {
			rec[generic] = v
		} else {
			rec[k] = v
		}
	}
	return rec
}
