package layout

import (
	"unicode/utf16"
)

// LCG constants from Knuth's MMIX.
const (
	lcgMultiplier = 6364136223846793005
	lcgIncrement  = 1442695040888963407
)

// LCG is a 64-bit linear congruential generator:
//
//	x(n+1) = x(n)*6364136223846793005 + 1442695040888963407  (mod 2^64)
//
// Float64 uses the top 53 bits of each state so the low-order bits, which
// have short periods in any power-of-two LCG, never reach the caller.
// LCG satisfies math/rand/v2.Source. It is not safe for concurrent use.
type LCG struct {
	state uint64
}

// NewLCG returns a generator whose first output is derived from seed.
func NewLCG(seed int64) *LCG {
	return &LCG{state: uint64(seed)}
}

// Uint64 advances the generator and returns the new state.
func (g *LCG) Uint64() uint64 {
	g.state = g.state*lcgMultiplier + lcgIncrement
	return g.state
}

// Float64 returns a value in [0, 1).
func (g *LCG) Float64() float64 {
	return float64(g.Uint64()>>11) / (1 << 53)
}

// HashEvent is the 32-bit string hash h = h*31 + c over UTF-16 code units,
// wrapping on overflow (the java.lang.String hash).
func HashEvent(id string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(id)) {
		h = (h << 5) - h + int32(u)
	}
	return h
}

// LayoutSeed is the geometry seed for a map.
func LayoutSeed(mapID int) int64 {
	return int64(mapID) * 1000
}

// StatusSeed is the availability seed for a (map, event) pair. An empty
// event id hashes as "default".
func StatusSeed(mapID int, eventID string) int64 {
	if eventID == "" {
		eventID = DefaultEventID
	}
	h := int64(HashEvent(eventID))
	if h < 0 {
		h = -h
	}
	return int64(mapID)*1000 + h
}
