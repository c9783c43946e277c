package crawl_test

import (
	"testing"
	"time"

	"github.com/sitemapper/sitemapper"
	"github.com/sitemapper/sitemapper/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_KeepsFirstArrivalPerLocation(t *testing.T) {
	t.Parallel()

	r := crawl.NewRecorder()
	first := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	r.Record(sitemapper.PageRecord{Loc: "https://example.com/a", LastMod: first})
	r.Record(sitemapper.PageRecord{Loc: "https://example.com/a", LastMod: later})
	r.Record(sitemapper.PageRecord{Loc: "https://example.com/b", LastMod: later})

	require.Equal(t, 2, r.Len())
	assert.True(t, r.Contains("https://example.com/a"))
	assert.False(t, r.Contains("https://example.com/c"))

	records := r.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "https://example.com/a", records[0].Loc)
	assert.Equal(t, first, records[0].LastMod)
	assert.Equal(t, "https://example.com/b", records[1].Loc)
}

func TestRecorder_DuplicateContent(t *testing.T) {
	t.Parallel()

	r := crawl.NewRecorder()
	hash := crawl.BodyHash([]byte("<html>same body</html>"))
	other := crawl.BodyHash([]byte("<html>different</html>"))

	r.Record(sitemapper.PageRecord{Loc: "https://example.com/a", ContentHash: hash})
	r.Record(sitemapper.PageRecord{Loc: "https://example.com/b", ContentHash: hash})
	r.Record(sitemapper.PageRecord{Loc: "https://example.com/c", ContentHash: other})
	// Records without a hash never count toward duplicates.
	r.Record(sitemapper.PageRecord{Loc: "https://example.com/d.pdf"})

	assert.Equal(t, 1, r.DuplicateContent())
	assert.Equal(t, 4, r.Len())
}

func TestBodyHash_Deterministic(t *testing.T) {
	t.Parallel()

	a := crawl.BodyHash([]byte("body"))
	b := crawl.BodyHash([]byte("body"))
	c := crawl.BodyHash([]byte("other"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEmpty(t, a)
}
