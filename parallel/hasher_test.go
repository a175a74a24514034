package parallel

import "testing"

import "github.com/stretchr/testify/assert"

// hasher test
func TestHasher(t *testing.T) {
	forward := NewUint16Hasher(100)
	for n := 0; n < 100; n++ {
		forward.MustPutUint16(n, uint16(n*7))
	}
	backward := NewUint16Hasher(100)
	ForEach(100, 8, func(i int) {
		n := 99 - i
		backward.MustPutUint16(n, uint16(n*7))
	})
	assert.Equal(t, forward.Sum(), backward.Sum())

	other := NewUint16Hasher(100)
	for n := 0; n < 100; n++ {
		other.MustPutUint16(n, uint16(n*7+1))
	}
	assert.NotEqual(t, forward.Sum(), other.Sum())
}

func TestHasherMisuse(t *testing.T) {
	h := NewUint16Hasher(2)
	h.MustPutUint16(1, 5)
	assert.Panics(t, func() { h.MustPutUint16(1, 5) })
	assert.Panics(t, func() { h.MustPutUint16(2, 5) })
	assert.Panics(t, func() { h.MustPutUint16(-1, 5) })
}
