package instance

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"blockstyle/common"
)

// Generator issues instance tokens.
type Generator interface {
	Next() Token
}

// Counter issues sequential tokens. Its sequence is scoped to a render pass:
// create a new one for every page render so output is stable between passes.
type Counter struct {
	prefix string
	n      atomic.Uint64
}

// NewCounter returns counter generator with sanitized prefix.
func NewCounter(prefix string) *Counter {
	return &Counter{prefix: Sanitize(prefix)}
}

// Next returns next token, safe for concurrent use.
func (c *Counter) Next() Token {
	return Token(c.prefix + "-" + strconv.FormatUint(c.n.Add(1), 10))
}

// Random issues tokens with random 64 bit suffix taken from uuid v4. With
// tens of blocks per page collision probability is negligible.
type Random struct {
	prefix string
}

// NewRandom returns random generator with sanitized prefix.
func NewRandom(prefix string) *Random {
	return &Random{prefix: Sanitize(prefix)}
}

// Next returns next token, safe for concurrent use.
func (r *Random) Next() Token {
	id := uuid.New()
	return Token(r.prefix + "-" + strings.ReplaceAll(id.String(), "-", "")[:16])
}

// pathNamespace is fixed so path tokens are stable across program runs.
var pathNamespace = uuid.MustParse("6f1c2b4e-8d0a-5c3e-9b7f-2a4d6e8f0c1b")

// ForPath returns deterministic token for render tree path. It is used when
// no runtime identity is available (server side rendering): same path
// produces same token on every render.
func ForPath(prefix, path string) Token {
	id := uuid.NewSHA1(pathNamespace, []byte(path))
	return Token(Sanitize(prefix) + "-" + strings.ReplaceAll(id.String(), "-", "")[:12])
}

// pathGenerator hashes sequence number of the call together with a seed, it
// backs Generator interface for path strategy when caller has no paths.
type pathGenerator struct {
	prefix string
	seed   string
	n      atomic.Uint64
}

func (g *pathGenerator) Next() Token {
	return ForPath(g.prefix, fmt.Sprintf("%s/%d", g.seed, g.n.Add(1)))
}

// New returns generator implementing requested strategy. Seed is only used
// by path strategy and should identify the render pass (page slug, etc).
func New(strategy common.TokenStrategy, prefix, seed string) Generator {
	switch strategy {
	case common.TokenStrategyRandom:
		return NewRandom(prefix)
	case common.TokenStrategyPath:
		return &pathGenerator{prefix: prefix, seed: seed}
	default:
		return NewCounter(prefix)
	}
}
