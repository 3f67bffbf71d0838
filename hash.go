package gui

import "github.com/cespare/xxhash/v2"

// HashString returns the 64-bit name hash used for node ids, textures, fonts
// and layers. The empty string hashes to 0, which means "none".
func HashString(s string) uint64 {
	if s == "" {
		return 0
	}
	return xxhash.Sum64String(s)
}
