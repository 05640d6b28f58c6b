// Package wire owns the camera link wire contract and codec primitives.
//
// Ownership boundary:
// - frame layout constants (markers, sizes)
// - Record payload encode/decode
// - whole-frame encoding for senders and tests
package wire
