// Package shared holds small helpers with no better home.
package shared

// WipeBytes overwrites b with zeros. Use it on passwords once they have been
// handed to the transport.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
