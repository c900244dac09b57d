package tracks

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestSegmentKey(t *testing.T) {
	t.Run("direction invariant", func(t *testing.T) {
		pairs := [][2]orb.Point{
			{{-87.70, 41.90}, {-87.69, 41.90}},
			{{-87.63, 41.88}, {-87.631, 41.885}},
			{{-87.9048, 41.9786}, {-87.9048, 41.9700}},
			{{-87.63, 41.88}, {-87.70, 41.95}},
		}
		for _, pair := range pairs {
			assert.Equal(t, SegmentKey(pair[0], pair[1]), SegmentKey(pair[1], pair[0]))
		}
	})

	t.Run("formats lower point first", func(t *testing.T) {
		key := SegmentKey(orb.Point{-87.69, 41.90}, orb.Point{-87.70, 41.90})
		assert.Equal(t, "-87.7,41.9_-87.69,41.9", key)
	})

	t.Run("rounds to five decimals outside downtown", func(t *testing.T) {
		key := SegmentKey(orb.Point{-87.7000049, 41.9000051}, orb.Point{-87.71, 41.91})
		assert.Equal(t, "-87.71,41.91_-87.7,41.90001", key)
	})

	t.Run("rounds the stored binary value at a half boundary", func(t *testing.T) {
		key := SegmentKey(orb.Point{-87.7, 41.900065}, orb.Point{-87.69, 41.9})
		assert.Equal(t, "-87.7,41.90006_-87.69,41.9", key)

		other := SegmentKey(orb.Point{-87.7, 41.900070}, orb.Point{-87.69, 41.9})
		assert.NotEqual(t, key, other)

		downtown := SegmentKey(orb.Point{-87.631245, 41.88125}, orb.Point{-87.6312, 41.8813})
		assert.Equal(t, "-87.6312,41.8813_-87.6312,41.8813", downtown)
	})

	t.Run("downtown pairs differing in the fifth decimal collapse", func(t *testing.T) {
		a := SegmentKey(orb.Point{-87.63001, 41.88001}, orb.Point{-87.63101, 41.88201})
		b := SegmentKey(orb.Point{-87.63002, 41.88002}, orb.Point{-87.63102, 41.88202})
		assert.Equal(t, a, b)
		assert.Equal(t, "-87.631,41.882_-87.63,41.88", a)
	})

	t.Run("the same offsets outside downtown stay distinct", func(t *testing.T) {
		a := SegmentKey(orb.Point{-87.73001, 41.88001}, orb.Point{-87.73101, 41.88201})
		b := SegmentKey(orb.Point{-87.73002, 41.88002}, orb.Point{-87.73102, 41.88202})
		assert.NotEqual(t, a, b)
	})

	t.Run("one endpoint outside downtown uses fine rounding", func(t *testing.T) {
		a := SegmentKey(orb.Point{-87.63001, 41.88001}, orb.Point{-87.65001, 41.88001})
		b := SegmentKey(orb.Point{-87.63002, 41.88001}, orb.Point{-87.65001, 41.88001})
		assert.NotEqual(t, a, b)
	})
}
