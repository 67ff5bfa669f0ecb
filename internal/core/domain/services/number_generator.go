package services

import (
	"crypto/rand"
	"io"
	"strconv"
	"time"

	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/parcel"
)

const (
	suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffixLength   = 8
	// largest multiple of len(suffixAlphabet) that fits in a byte; higher bytes are rejected
	suffixCutoff = 252
)

// NumberGenerator issues human-facing identifiers: a prefix, the current Unix time
// in milliseconds and a random alphanumeric suffix. The store's unique constraint
// stays the final authority; callers retry on conflict.
type NumberGenerator struct {
	now     func() time.Time
	entropy io.Reader
}

func NewNumberGenerator() NumberGenerator {
	return NumberGenerator{now: time.Now, entropy: rand.Reader}
}

// NewNumberGeneratorWith uses the given clock and entropy source.
func NewNumberGeneratorWith(now func() time.Time, entropy io.Reader) NumberGenerator {
	return NumberGenerator{now: now, entropy: entropy}
}

// TrackingNumber returns e.g. "TRK1741597200000K3Q9ZP2M".
func (g NumberGenerator) TrackingNumber() (string, error) {
	return g.next(parcel.TrackingNumberPrefix)
}

// InvoiceNumber returns e.g. "INV1741597200000A0B1C2D3".
func (g NumberGenerator) InvoiceNumber() (string, error) {
	return g.next(invoice.NumberPrefix)
}

func (g NumberGenerator) next(prefix string) (string, error) {
	now, entropy := g.now, g.entropy
	if now == nil {
		now = time.Now
	}
	if entropy == nil {
		entropy = rand.Reader
	}

	suffix := make([]byte, 0, suffixLength)
	buf := make([]byte, suffixLength*2)
	for len(suffix) < suffixLength {
		if _, err := io.ReadFull(entropy, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= suffixCutoff {
				continue
			}
			suffix = append(suffix, suffixAlphabet[int(b)%len(suffixAlphabet)])
			if len(suffix) == suffixLength {
				break
			}
		}
	}

	return prefix + strconv.FormatInt(now().UnixMilli(), 10) + string(suffix), nil
}
