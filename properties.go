package tilemap

import (
	"fmt"
	"sort"
)

const (
	// Property types
	// see doc.mapeditor.org/en/stable/reference/tmx-map-format/#properties
	PropString = "string"
	PropInt    = "int"
	PropFloat  = "float"
	PropBool   = "bool"
)

// Properties is a typed bag of editor properties, used for tiles, tilesets,
// layers, objects and entity configs. Each key holds exactly one type.
type Properties struct {
	ints    map[string]int
	floats  map[string]float64
	strings map[string]string
	bools   map[string]bool
}

// NewProperties returns an empty properties
func NewProperties() *Properties {
	return &Properties{
		ints:    map[string]int{},
		floats:  map[string]float64{},
		strings: map[string]string{},
		bools:   map[string]bool{},
	}
}

// Merge properties `o` into this properties. Keys in `o` win.
// A nil `o` is a no-op.
func (p *Properties) Merge(o *Properties) *Properties {
	if o == nil {
		return p
	}
	for k, v := range o.ints {
		p.SetInt(k, v)
	}
	for k, v := range o.floats {
		p.SetFloat(k, v)
	}
	for k, v := range o.strings {
		p.SetString(k, v)
	}
	for k, v := range o.bools {
		p.SetBool(k, v)
	}
	return p
}

// Clone returns a deep copy. Cloning nil gives an empty properties.
func (p *Properties) Clone() *Properties {
	return NewProperties().Merge(p)
}

// Len is the number of keys set.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.ints) + len(p.floats) + len(p.strings) + len(p.bools)
}

// Keys returns all set keys, sorted.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, p.Len())
	for k := range p.ints {
		keys = append(keys, k)
	}
	for k := range p.floats {
		keys = append(keys, k)
	}
	for k := range p.strings {
		keys = append(keys, k)
	}
	for k := range p.bools {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Type returns the type of the value held under key (one of the Prop*
// constants) or "" if unset.
func (p *Properties) Type(key string) string {
	if p == nil {
		return ""
	}
	if _, ok := p.ints[key]; ok {
		return PropInt
	}
	if _, ok := p.floats[key]; ok {
		return PropFloat
	}
	if _, ok := p.strings[key]; ok {
		return PropString
	}
	if _, ok := p.bools[key]; ok {
		return PropBool
	}
	return ""
}

// Value returns the raw value under key, whatever its type.
func (p *Properties) Value(key string) (interface{}, bool) {
	switch p.Type(key) {
	case PropInt:
		return p.ints[key], true
	case PropFloat:
		return p.floats[key], true
	case PropString:
		return p.strings[key], true
	case PropBool:
		return p.bools[key], true
	}
	return nil, false
}

// Number returns an int or float value as a float64.
func (p *Properties) Number(key string) (float64, bool) {
	if v, ok := p.Float(key); ok {
		return v, true
	}
	if v, ok := p.Int(key); ok {
		return float64(v), true
	}
	return 0, false
}

func (p *Properties) String(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.strings[key]
	return v, ok
}

func (p *Properties) SetString(key, value string) {
	p.delete(key)
	p.strings[key] = value
}

func (p *Properties) Int(key string) (int, bool) {
	if p == nil {
		return 0, false
	}
	v, ok := p.ints[key]
	return v, ok
}

func (p *Properties) SetInt(key string, value int) {
	p.delete(key)
	p.ints[key] = value
}

func (p *Properties) Float(key string) (float64, bool) {
	if p == nil {
		return 0, false
	}
	v, ok := p.floats[key]
	return v, ok
}

func (p *Properties) SetFloat(key string, value float64) {
	p.delete(key)
	p.floats[key] = value
}

func (p *Properties) Bool(key string) (bool, bool) {
	if p == nil {
		return false, false
	}
	v, ok := p.bools[key]
	return v, ok
}

func (p *Properties) SetBool(key string, value bool) {
	p.delete(key)
	p.bools[key] = value
}

// Delete removes key, whatever its type.
func (p *Properties) Delete(key string) {
	p.delete(key)
}

func (p *Properties) delete(key string) {
	delete(p.ints, key)
	delete(p.floats, key)
	delete(p.strings, key)
	delete(p.bools, key)
}

func (p *Properties) GoString() string {
	s := "tilemap.Properties{"
	for i, k := range p.Keys() {
		if i > 0 {
			s += ", "
		}
		v, _ := p.Value(k)
		s += fmt.Sprintf("%s: %v", k, v)
	}
	return s + "}"
}
