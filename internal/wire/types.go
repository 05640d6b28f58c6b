package wire

// Frame layout: SOF(2) | LEN(1) | PAYLOAD(16) | CRC(1) | EOF(2).
// LEN counts PAYLOAD+CRC and must always equal BodySize; anything else
// on the wire is a framing error, never a variable-length frame.
const (
	SOF1 byte = 0xAA
	SOF2 byte = 0x55
	EOF1 byte = 0x55
	EOF2 byte = 0xAA

	PayloadSize = 16
	BodySize    = PayloadSize + 1
	TrailerSize = 2
	FrameSize   = 2 + 1 + BodySize + TrailerSize
)

// Record is one decoded detection: a bounding box plus the sender's
// millisecond timestamp. Values are opaque here; no range validation.
type Record struct {
	X         uint16 `json:"x"`
	Y         uint16 `json:"y"`
	W         uint16 `json:"w"`
	H         uint16 `json:"h"`
	Timestamp uint64 `json:"timestamp"`
}
