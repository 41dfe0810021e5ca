package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"storage-diagnostics/internal/model"
	"storage-diagnostics/internal/reshape"
)

func TestViewCacheExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newViewCache(time.Minute)
	c.now = func() time.Time { return now }

	c.set("k", "ds-1", 42)
	v, ok := c.get("k")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	now = now.Add(2 * time.Minute)
	_, ok = c.get("k")
	assert.False(t, ok)

	c.set("k2", "ds-1", 1)
	assert.Equal(t, 1, c.len())
}

func TestViewCacheRetain(t *testing.T) {
	c := newViewCache(time.Hour)
	c.set("a", "ds-1", 1)
	c.set("b", "ds-2", 2)
	c.retain("ds-2")
	_, ok := c.get("a")
	assert.False(t, ok)
	_, ok = c.get("b")
	assert.True(t, ok)

	c.set("c", "ds-1", 3)
	_, ok = c.get("c")
	assert.False(t, ok)
	assert.Equal(t, 1, c.len())

	c.set("d", "ds-2", 4)
	_, ok = c.get("d")
	assert.True(t, ok)
}

func TestNilViewCache(t *testing.T) {
	c := newViewCache(0)
	assert.Nil(t, c)
	c.set("k", "ds", 1)
	_, ok := c.get("k")
	assert.False(t, ok)
	c.retain("ds")
	assert.Zero(t, c.len())
}

func TestViewKey(t *testing.T) {
	t0 := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	w := model.TimeWindow{Start: t0, End: t0.Add(time.Hour)}
	a := reshape.Selection{Primary: []model.Variable{model.VarPrice}}
	b := reshape.Selection{Secondary: []model.Variable{model.VarPrice}}

	assert.Equal(t, viewKey("plain", "ds", w, a), viewKey("plain", "ds", w, a))
	assert.NotEqual(t, viewKey("plain", "ds", w, a), viewKey("plain", "ds", w, b))
	assert.NotEqual(t, viewKey("plain", "ds", w, a), viewKey("flow", "ds", w, a))
	assert.NotEqual(t, viewKey("flow", "ds", w, a), viewKey("flow", "other", w, a))
}
