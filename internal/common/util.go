package common

// WipeByteArray overwrites the buffer with zeroes. Used to clear plaintext
// passwords from memory as soon as they are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
