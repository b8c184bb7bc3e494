package instance

import (
	"strconv"
	"sync"

	"blockstyle/common"
)

// Pass keeps tokens of one page render. Occurrences are identified by keys
// (layout position, block id) so re-rendering an occurrence within the pass
// yields the same token, while no two keys ever share one.
type Pass struct {
	strategy common.TokenStrategy
	prefix   string
	gen      Generator

	mu     sync.Mutex
	byKey  map[string]Token
	issued map[Token]string
}

// NewPass creates render pass issuing tokens with requested strategy.
func NewPass(strategy common.TokenStrategy, prefix, seed string) *Pass {
	return &Pass{
		strategy: strategy,
		prefix:   prefix,
		gen:      New(strategy, prefix, seed),
		byKey:    make(map[string]Token),
		issued:   make(map[Token]string),
	}
}

// Token returns token for occurrence key, issuing new one on first request.
// Empty key always gets a fresh token.
func (p *Pass) Token(key string) Token {
	p.mu.Lock()
	defer p.mu.Unlock()

	if key != "" {
		if t, ok := p.byKey[key]; ok {
			return t
		}
	}

	var t Token
	if p.strategy == common.TokenStrategyPath && key != "" {
		t = ForPath(p.prefix, key)
	} else {
		t = p.gen.Next()
	}
	// Never hand out the same token twice, even if hash or random source
	// collides.
	base := t
	for i := 2; ; i++ {
		if _, taken := p.issued[t]; !taken {
			break
		}
		t = Token(string(base) + "-" + strconv.Itoa(i))
	}

	p.issued[t] = key
	if key != "" {
		p.byKey[key] = t
	}
	return t
}

// Next implements Generator, every call returns fresh token.
func (p *Pass) Next() Token {
	return p.Token("")
}

// Len returns number of tokens issued so far.
func (p *Pass) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.issued)
}
