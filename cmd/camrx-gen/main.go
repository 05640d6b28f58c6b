// camrx-gen writes synthetic wire frames for soak-testing the receiver
// over a pty or socat loopback. It can interleave garbage bytes,
// corrupted payloads, and bad length bytes to exercise resync paths.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"camrx/internal/wire"
)

func main() {
	var (
		out     = flag.String("out", "-", "output file, or - for stdout")
		count   = flag.Int("count", 100, "number of valid frames to emit")
		garbage = flag.Int("garbage", 0, "random garbage bytes before each frame")
		corrupt = flag.Float64("corrupt", 0, "fraction of frames with a flipped payload bit")
		badLen  = flag.Float64("badlen", 0, "fraction of frames with a wrong length byte")
		seed    = flag.Int64("seed", 0, "rng seed (0 = time-based)")
	)
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	w := os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "camrx-gen: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	bw := bufio.NewWriter(w)
	defer bw.Flush()

	for i := 0; i < *count; i++ {
		for j := 0; j < *garbage; j++ {
			_ = bw.WriteByte(byte(rng.Intn(256)))
		}

		rec := wire.Record{
			X:         uint16(rng.Intn(640)),
			Y:         uint16(rng.Intn(480)),
			W:         uint16(1 + rng.Intn(320)),
			H:         uint16(1 + rng.Intn(240)),
			Timestamp: uint64(time.Now().UnixMilli()),
		}
		frame := wire.EncodeFrame(rec)

		if rng.Float64() < *corrupt {
			// Flip one payload bit; the CRC check must reject it.
			idx := 3 + rng.Intn(wire.PayloadSize)
			frame[idx] ^= 1 << uint(rng.Intn(8))
		}
		if rng.Float64() < *badLen {
			frame[2] = byte(rng.Intn(256))
		}

		if _, err := bw.Write(frame); err != nil {
			fmt.Fprintf(os.Stderr, "camrx-gen: write: %v\n", err)
			os.Exit(1)
		}
	}
}
