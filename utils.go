package lamportsig

// bitAt reports whether bit i of d is set, numbering bits least-significant
// first within each byte: bit i selects byte i/8 and mask 1<<(i%8). This
// ordering decides, per bit of a message digest, which half of a Lamport
// private key gets revealed by Sign.
func bitAt(i int, d Hash) bool {
	return d[i/8]&(1<<uint(i%8)) != 0
}
