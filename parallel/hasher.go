package parallel

import "crypto/sha256"
import "encoding/binary"
import "fmt"
import "sync"

// Hasher fingerprints a fixed number of uint16 values written by index, from any number
// of goroutines in any order. The sum depends only on the values and their indices.
type Hasher struct {
	mut    sync.Mutex
	values []uint16
	set    []bool
}

// NewUint16Hasher makes a hasher of n values
func NewUint16Hasher(n int) *Hasher {
	return &Hasher{
		values: make([]uint16, n),
		set:    make([]bool, n),
	}
}

// MustPutUint16 stores the n-th value. It panics when n is out of range or was already
// written.
func (h *Hasher) MustPutUint16(n int, value uint16) {
	h.mut.Lock()
	defer h.mut.Unlock()
	if n < 0 || n >= len(h.values) {
		panic(fmt.Sprintf("hasher: index %d out of range [0, %d)", n, len(h.values)))
	}
	if h.set[n] {
		panic(fmt.Sprintf("hasher: duplicate write at %d", n))
	}
	h.set[n] = true
	h.values[n] = value
}

// Sum hashes the values in index order, unwritten values count as zero.
func (h *Hasher) Sum() (ret [32]byte) {
	h.mut.Lock()
	defer h.mut.Unlock()
	sha := sha256.New()
	var buf = make([]byte, 2*len(h.values))
	for i, v := range h.values {
		binary.LittleEndian.PutUint16(buf[2*i:], v)
	}
	sha.Write(buf)
	copy(ret[:], sha.Sum(nil))
	return
}
