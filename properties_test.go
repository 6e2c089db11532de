package tilemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertiesTypes(t *testing.T) {
	p := NewProperties()
	p.SetInt("a", 1)
	p.SetFloat("b", 2.5)
	p.SetString("c", "three")
	p.SetBool("d", true)

	assert.Equal(t, 4, p.Len())
	assert.Equal(t, []string{"a", "b", "c", "d"}, p.Keys())
	assert.Equal(t, PropInt, p.Type("a"))
	assert.Equal(t, PropFloat, p.Type("b"))
	assert.Equal(t, PropString, p.Type("c"))
	assert.Equal(t, PropBool, p.Type("d"))
	assert.Equal(t, "", p.Type("e"))

	// a key holds one type
	p.SetString("a", "one")
	_, ok := p.Int("a")
	assert.False(t, ok)
	v, ok := p.Value("a")
	assert.True(t, ok)
	assert.Equal(t, "one", v)
	assert.Equal(t, 4, p.Len())

	n, ok := p.Number("b")
	assert.True(t, ok)
	assert.Equal(t, 2.5, n)
	p.SetInt("b", 2)
	n, ok = p.Number("b")
	assert.True(t, ok)
	assert.Equal(t, 2.0, n)
	_, ok = p.Number("c")
	assert.False(t, ok)

	p.Delete("d")
	_, ok = p.Bool("d")
	assert.False(t, ok)
	assert.Equal(t, 3, p.Len())

	assert.Equal(t, `tilemap.Properties{a: one, b: 2, c: three}`, p.GoString())
}

func TestPropertiesMergeAndClone(t *testing.T) {
	base := NewProperties()
	base.SetInt("hp", 10)
	base.SetString("name", "orc")

	over := NewProperties()
	over.SetFloat("hp", 12.5)
	over.SetBool("boss", true)

	c := base.Clone().Merge(over)

	hp, ok := c.Float("hp")
	assert.True(t, ok)
	assert.Equal(t, 12.5, hp)
	name, _ := c.String("name")
	assert.Equal(t, "orc", name)
	boss, _ := c.Bool("boss")
	assert.True(t, boss)

	// base untouched
	hpi, ok := base.Int("hp")
	assert.True(t, ok)
	assert.Equal(t, 10, hpi)
	_, ok = base.Bool("boss")
	assert.False(t, ok)

	assert.Same(t, base, base.Merge(nil))
}

func TestPropertiesNil(t *testing.T) {
	var p *Properties

	assert.Equal(t, 0, p.Len())
	assert.Nil(t, p.Keys())
	assert.Equal(t, "", p.Type("a"))
	_, ok := p.String("a")
	assert.False(t, ok)
	_, ok = p.Int("a")
	assert.False(t, ok)
	_, ok = p.Value("a")
	assert.False(t, ok)

	c := p.Clone()
	assert.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
}
