package comms

// wireKey is the fixed shared key applied cyclically across a payload to
// produce its wire form. This is reversible obfuscation, not encryption:
// it exists so that endpoints exchange a transformed byte string, and it
// must never be treated as a security boundary.
var wireKey = []byte("USMC-COMMS-KEY")

// obfuscate XORs data with wireKey, reused cyclically. The transform is
// symmetric: applying it twice restores the original bytes.
func obfuscate(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ wireKey[i%len(wireKey)]
	}
	return out
}
