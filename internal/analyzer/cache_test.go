package analyzer

import (
	"testing"

	"github.com/couchcryptid/volcano-analytics/internal/domain"
	"github.com/couchcryptid/volcano-analytics/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []domain.Eruption {
	return []domain.Eruption{
		{Name: "Ruiz", Country: "Colombia", Elevation: 5279, Deaths: "23080"},
		{Name: "Galeras", Country: "Colombia", Elevation: 4276, Deaths: "9"},
		{Name: "Pelee", Country: "Martinique", Elevation: 1397, Deaths: "28000"},
	}
}

// --- Cached tests ---

func TestCached_CountByCountryHit(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	c := NewCached(New(testRecords()), 10, metrics)

	n1, err := c.CountByCountry("Colombia")
	require.NoError(t, err)
	n2, err := c.CountByCountry("Colombia")
	require.NoError(t, err)

	assert.Equal(t, 2, n1)
	assert.Equal(t, n1, n2)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("count_by_country", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("count_by_country", "hit")))
}

func TestCached_ElevatedAboveHit(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	c := NewCached(New(testRecords()), 10, metrics)

	first, err := c.ElevatedAbove(4000)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ruiz", "Galeras"}, first)

	// Callers cannot corrupt the cached slice.
	first[0] = "changed"

	second, err := c.ElevatedAbove(4000)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ruiz", "Galeras"}, second)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("elevated_above", "hit")))
}

func TestCached_DoesNotCacheErrors(t *testing.T) {
	c := NewCached(&Analyzer{}, 10, nil)

	_, err := c.CountByCountry("Colombia")
	require.ErrorIs(t, err, domain.ErrNotLoaded)
	assert.Equal(t, 0, c.byCountry.len())

	require.NoError(t, c.Load(testRecords()))
	n, err := c.CountByCountry("Colombia")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCached_PassThrough(t *testing.T) {
	c := NewCached(New(testRecords()), 10, nil)

	deadly, err := c.MostDeadly()
	require.NoError(t, err)
	assert.Equal(t, "Pelee", deadly.Name)
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache[int](3)

	c.put("a", 1)
	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache[int](2)

	c.put("a", 1)
	c.put("b", 2)
	c.put("c", 3) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok)
	_, ok = c.get("b")
	assert.True(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.len())
}

func TestLRUCache_AccessRefreshes(t *testing.T) {
	c := newLRUCache[int](2)

	c.put("a", 1)
	c.put("b", 2)
	c.get("a")    // a is now most recent
	c.put("c", 3) // evicts "b"

	_, ok := c.get("a")
	assert.True(t, ok)
	_, ok = c.get("b")
	assert.False(t, ok)
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache[int](2)

	c.put("a", 1)
	c.put("a", 10)

	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, 10, v)
	assert.Equal(t, 1, c.len())
}

func TestLRUCache_MinimumSize(t *testing.T) {
	c := newLRUCache[string](0)
	c.put("a", "x")
	c.put("b", "y")
	assert.Equal(t, 1, c.len())
}
