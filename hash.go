package hashmap

const hashSeed = 5381

// Hash returns the DJB2 hash of key: starting from 5381, each byte c updates
// the running value as hash*33 + c, wrapping at 64 bits. The result is
// identical for identical input across runs and platforms; Hash("") is 5381.
func Hash(key string) uint64 {
	h := uint64(hashSeed)
	for i := 0; i < len(key); i++ {
		h = ((h << 5) + h) + uint64(key[i])
	}
	return h
}
