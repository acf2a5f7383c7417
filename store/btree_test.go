package store

import (
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache.
func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}
	base := devnull.CacheWrap()

	k, v := []byte("french"), []byte("fry")
	assertGet(t, base, k, nil)
	require.NoError(t, base.Set(k, v))
	assertGet(t, base, k, v)

	// a layer on top reads the base data
	cache := base.CacheWrap()
	assertGet(t, cache, k, v)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	assertGet(t, cache, k2, v2)
	assertGet(t, base, k2, nil)

	require.NoError(t, cache.Write())
	assertGet(t, base, k, v)
	assertGet(t, base, k2, v2)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()
	assertGet(t, base, k3, nil)

	// and commit a delete
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	assertGet(t, c3, k, nil)
	assertGet(t, base, k, v)
	require.NoError(t, c3.Write())
	assertGet(t, base, k, nil)
	assertGet(t, base, k2, v2)
}

func TestBTreeCacheIterator(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, base.Set([]byte(k), []byte("base-"+k)))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Delete([]byte("b")))
	require.NoError(t, cache.Set([]byte("c"), []byte("cache-c")))
	require.NoError(t, cache.Set([]byte("bb"), []byte("cache-bb")))
	require.NoError(t, cache.Set([]byte("f"), []byte("cache-f")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []string
	}{
		"full ascending": {
			want: []string{"a=base-a", "bb=cache-bb", "c=cache-c", "d=base-d", "e=base-e", "f=cache-f"},
		},
		"full descending": {
			reverse: true,
			want:    []string{"f=cache-f", "e=base-e", "d=base-d", "c=cache-c", "bb=cache-bb", "a=base-a"},
		},
		"bounded range excludes end": {
			start: []byte("b"),
			end:   []byte("d"),
			want:  []string{"bb=cache-bb", "c=cache-c"},
		},
		"bounded descending range excludes end": {
			start:   []byte("b"),
			end:     []byte("e"),
			reverse: true,
			want:    []string{"d=base-d", "c=cache-c", "bb=cache-bb"},
		},
		"open start": {
			end:  []byte("bc"),
			want: []string{"a=base-a", "bb=cache-bb"},
		},
		"open end": {
			start: []byte("e"),
			want:  []string{"e=base-e", "f=cache-f"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			defer it.Release()

			var got []string
			for {
				k, v, err := it.Next()
				if errors.ErrIteratorDone.Is(err) {
					break
				}
				require.NoError(t, err)
				got = append(got, string(k)+"="+string(v))
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNonAtomicBatch(t *testing.T) {
	db := MemStore()
	b := NewNonAtomicBatch(db)
	require.NoError(t, b.Set([]byte("a"), []byte("1")))
	require.NoError(t, b.Delete([]byte("a")))
	require.NoError(t, b.Set([]byte("b"), []byte("2")))
	assert.Len(t, b.ShowOps(), 3)

	// nothing is visible before the write
	assertGet(t, db, []byte("b"), nil)
	require.NoError(t, b.Write())
	assertGet(t, db, []byte("a"), nil)
	assertGet(t, db, []byte("b"), []byte("2"))
	assert.Empty(t, b.ShowOps())
}

func assertGet(t testing.TB, db ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := db.Get(key)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	has, err := db.Has(key)
	require.NoError(t, err)
	assert.Equal(t, want != nil, has)
}
