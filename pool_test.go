package relight

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramePoolAllocAndReset(t *testing.T) {
	p := NewFramePool(2)

	a, ok := p.Alloc(RenderLight{Kind: KindSphere, History: NoHistory})
	require.True(t, ok)
	b, ok := p.Alloc(RenderLight{Kind: KindRect, History: 7})
	require.True(t, ok)
	assert.Equal(t, uint32(0), a)
	assert.Equal(t, uint32(1), b)
	assert.Equal(t, 2, p.Len())

	// A fresh light takes its slot as history; an existing handle is kept.
	got, ok := p.Get(a)
	require.True(t, ok)
	assert.Equal(t, a, got.History)
	got, ok = p.Get(b)
	require.True(t, ok)
	assert.Equal(t, uint32(7), got.History)

	// Full pool drops the light for this cycle.
	if _, ok := p.Alloc(RenderLight{Kind: KindDisk}); ok {
		t.Errorf("Exhausted pool should refuse allocation")
	}

	p.Reset()
	assert.Equal(t, 0, p.Len())
	if _, ok := p.Get(a); ok {
		t.Errorf("Reset should invalidate old slots")
	}
	s, ok := p.Alloc(RenderLight{Kind: KindSphere})
	require.True(t, ok)
	assert.Equal(t, uint32(0), s, "slots recycle from zero after reset")
}

func TestFramePoolRange(t *testing.T) {
	p := NewFramePool(4)
	for i := 0; i < 3; i++ {
		_, ok := p.Alloc(RenderLight{Kind: KindSphere})
		require.True(t, ok)
	}

	lights, ok := p.Range(1, 2)
	require.True(t, ok)
	assert.Len(t, lights, 2)

	if _, ok := p.Range(2, 2); ok {
		t.Errorf("Range past the populated slots should fail")
	}
}

func TestFramePoolRangeBounds(t *testing.T) {
	p := NewFramePool(4)
	for i := 0; i < 3; i++ {
		_, ok := p.Alloc(RenderLight{Kind: KindSphere})
		require.True(t, ok)
	}

	cases := []struct {
		name         string
		first, count uint32
	}{
		{"first past populated", 4, 0},
		{"count past populated", 0, 4},
		{"count wraps around", ^uint32(0), 2},
		{"first and count wrap around", ^uint32(0), ^uint32(0)},
	}
	for _, tc := range cases {
		if _, ok := p.Range(tc.first, tc.count); ok {
			t.Errorf("Range(%d, %d) should fail: %s", tc.first, tc.count, tc.name)
		}
	}

	lights, ok := p.Range(3, 0)
	require.True(t, ok, "empty range at the populated boundary is valid")
	assert.Len(t, lights, 0)
}

func poolTestRecords(t *testing.T, n int) []*LightRecord {
	t.Helper()
	records := make([]*LightRecord, n)
	for i := range records {
		r := newDefaultRecord(LightKind(i % 5))
		r.Position = mgl32.Vec3{float32(i), 0, 0}
		r.Hash = uint64(i + 1)
		records[i] = r
	}
	return records
}

func TestConvertAllMatchesSerial(t *testing.T) {
	records := poolTestRecords(t, 17)

	serial, serialOK := ConvertAll(records, nil, 1)
	parallel, parallelOK := ConvertAll(records, nil, 4)

	require.Equal(t, serial, parallel, "worker count must not change conversion results")
	require.Equal(t, serialOK, parallelOK)

	for i, ok := range serialOK {
		if !ok {
			t.Errorf("Record %d failed to convert", i)
		}
	}
}

func TestConvertAllCarriesHistory(t *testing.T) {
	records := poolTestRecords(t, 3)

	prevSphere := RenderLight{Kind: records[0].Kind, History: 9}
	prev := func(hash uint64) *RenderLight {
		if hash == records[0].Hash {
			return &prevSphere
		}
		return nil
	}

	out, ok := ConvertAll(records, prev, 2)
	require.True(t, ok[0])
	assert.Equal(t, uint32(9), out[0].History)
	assert.Equal(t, NoHistory, out[1].History)
}

func TestConvertAllNilRecord(t *testing.T) {
	records := poolTestRecords(t, 2)
	records = append(records, nil)

	out, ok := ConvertAll(records, nil, 2)
	assert.False(t, ok[2])
	assert.Equal(t, RenderLight{}, out[2])
}
