package automaton

import "hash/fnv"

// mix32 is the 32 bit finalization step of MurmurHash3.
func mix32(v int) int {
	k := uint32(v)
	k = (k ^ (k >> 16)) * 0x85ebca6b
	k = (k ^ (k >> 13)) * 0xc2b2ae35
	return int(k ^ (k >> 16))
}

// mixState spreads the bits of a state label so that summing member hashes
// gives an order independent set hash with few collisions.
func mixState(s State) uint64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return uint64(uint32(mix32(int(h.Sum32()))))
}
