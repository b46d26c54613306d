// Package ticket generates the structured opaque identifiers used by the
// emulated CAS server. Every identifier has the shape
//
//	<family>-<sequence>-<32 character [A-Za-z0-9] suffix>
//
// e.g. "OC-3-kP8kYz0sQ2fW1xR7dN4mB6vC9tL5hJ2a". The family tag tells the
// consumer what kind of credential it is holding; the sequence number is a
// per-process counter matching the emulated system's ticket format.
package ticket

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync/atomic"
)

// Identifier families issued by the server.
const (
	FamilyAuthorizationCode = "OC" // authorization codes
	FamilyAccessToken       = "AT" // access tokens
	FamilyRefreshToken      = "RT" // refresh tokens
	FamilyServiceTicket     = "ST" // CAS service tickets
)

const suffixLength = 32

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Generator mints identifiers for a single family. Safe for concurrent use.
type Generator struct {
	family string
	seq    atomic.Uint64
}

// NewGenerator returns a generator for the given family tag ("OC", "AT", ...).
func NewGenerator(family string) *Generator {
	return &Generator{family: family}
}

// Next returns a fresh identifier. The random suffix is drawn from
// crypto/rand; the emulated system used a weaker source, but the format is
// what clients depend on, not the entropy.
func (g *Generator) Next() (string, error) {
	suffix, err := randomAlphanumeric(suffixLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate ticket suffix: %w", err)
	}
	return fmt.Sprintf("%s-%d-%s", g.family, g.seq.Add(1), suffix), nil
}

// randomAlphanumeric returns n characters drawn uniformly from [A-Za-z0-9].
func randomAlphanumeric(n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = alphabet[idx.Int64()]
	}
	return string(buf), nil
}
