package atbat

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource abstract
type RandomSource interface {
	Float64() float64 // [0, 1)
}

// crypto random : default generation method
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	// Read 53bit random => [0, 1)
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// back to math/rand/v2
		return rand.Float64()
	}

	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// NewSeed returns a random seed, so an unseeded run can still be replayed.
func NewSeed() uint64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Uint64()
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// Replicable RNG (seeded runs, tests, cached results)
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// Sampler picks one index from a discrete weighted distribution.
type Sampler interface {
	SampleIndex(weights []float64) int
}

// inverseCDF samples by walking the cumulative weights.
// Every call consumes exactly one Float64 from the source, so a seeded source
// replays the same sequence of picks.
type inverseCDF struct {
	rng RandomSource
}

// NewSampler wraps a RandomSource; nil falls back to DefaultRNG.
func NewSampler(rng RandomSource) Sampler {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &inverseCDF{rng: rng}
}

func (s *inverseCDF) SampleIndex(weights []float64) int {
	u := s.rng.Float64()
	n := len(weights)
	if n == 0 {
		return -1
	}
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	// all-zero weights: uniform pick, still one draw
	if total <= 0 {
		i := int(u * float64(n))
		if i >= n {
			i = n - 1
		}
		return i
	}
	target := u * total
	var cum float64
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cum += w
		last = i
		if target < cum {
			return i
		}
	}
	// float rounding can leave target == total
	return last
}
