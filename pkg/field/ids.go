package field

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDGenerator mints identifiers for fields and options. Generated ids must
// never repeat for the lifetime of the generator.
type IDGenerator interface {
	NewID() string
}

// IDFunc adapts a function into an IDGenerator.
type IDFunc func() string

// NewID calls the underlying function.
func (fn IDFunc) NewID() string {
	return fn()
}

// ULIDGenerator produces lexicographically sortable ULIDs. Monotonic entropy
// keeps ids strictly increasing within the same millisecond; the mutex makes
// the generator safe for concurrent sessions.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

// NewULIDGenerator returns a generator seeded from crypto/rand.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// NewID returns a fresh ULID string.
func (g *ULIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}

var (
	defaultIDsOnce sync.Once
	defaultIDs     *ULIDGenerator
)

// DefaultIDs returns the process-wide ULID generator.
func DefaultIDs() IDGenerator {
	defaultIDsOnce.Do(func() {
		defaultIDs = NewULIDGenerator()
	})
	return defaultIDs
}
