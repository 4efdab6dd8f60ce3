package id

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"sync"

	"agricredit-backend/pkg/clock"
)

const receiptPrefix = "WR-"

// Generator produces receipt numbers and one-time codes from an injected
// clock and random source.
type Generator struct {
	clock clock.Clock
	rand  io.Reader

	mu         sync.Mutex
	lastMillis int64
}

// NewGenerator falls back to the system clock and crypto/rand when c or r is nil.
func NewGenerator(c clock.Clock, r io.Reader) *Generator {
	if c == nil {
		c = clock.System()
	}
	if r == nil {
		r = rand.Reader
	}
	return &Generator{clock: c, rand: r}
}

// ReceiptNumber returns "WR-<millis>-<4 hex>". The millisecond part never
// repeats within one Generator, even when the clock stalls or steps back.
func (g *Generator) ReceiptNumber() (string, error) {
	g.mu.Lock()
	ms := g.clock.Now().UnixMilli()
	if ms <= g.lastMillis {
		ms = g.lastMillis + 1
	}
	g.lastMillis = ms
	g.mu.Unlock()

	b := make([]byte, 2)
	if _, err := io.ReadFull(g.rand, b); err != nil {
		return "", fmt.Errorf("receipt number entropy: %w", err)
	}
	return fmt.Sprintf("%s%d-%s", receiptPrefix, ms, hex.EncodeToString(b)), nil
}

const (
	otpSpan  = 900000
	otpLimit = (1 << 32) / otpSpan * otpSpan
)

// OTP returns a 6-digit numeric code in [100000, 999999].
func (g *Generator) OTP() (string, error) {
	b := make([]byte, 4)
	for {
		if _, err := io.ReadFull(g.rand, b); err != nil {
			return "", fmt.Errorf("otp entropy: %w", err)
		}
		// rejection keeps the distribution uniform
		if n := uint64(binary.BigEndian.Uint32(b)); n < otpLimit {
			return strconv.FormatUint(n%otpSpan+100000, 10), nil
		}
	}
}
