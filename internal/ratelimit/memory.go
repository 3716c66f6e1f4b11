package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// DefaultMaxKeys — сколько клиентов по умолчанию помнит Memory.
const DefaultMaxKeys = 10000

// Memory хранит по token bucket на каждое правило для каждого ключа.
// Давно не встречавшиеся ключи вытесняются из LRU, их счётчики сбрасываются.
type Memory struct {
	mu    sync.Mutex
	rules []Rule
	keys  *lru.Cache[string, []*rate.Limiter]
	now   func() time.Time
}

// NewMemory создаёт лимитер в памяти процесса.
func NewMemory(rules []Rule, maxKeys int) (*Memory, error) {
	const op = "ratelimit.NewMemory"
	if maxKeys < 1 {
		maxKeys = DefaultMaxKeys
	}
	keys, err := lru.New[string, []*rate.Limiter](maxKeys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Memory{
		rules: rules,
		keys:  keys,
		now:   time.Now,
	}, nil
}

func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	if len(m.rules) == 0 {
		return Decision{Allowed: true}, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	limiters, ok := m.keys.Get(key)
	if !ok {
		limiters = make([]*rate.Limiter, len(m.rules))
		for i, rule := range m.rules {
			every := rate.Limit(float64(rule.Limit) / rule.Window.Seconds())
			limiters[i] = rate.NewLimiter(every, rule.Limit)
		}
		m.keys.Add(key, limiters)
	}

	reservations := make([]*rate.Reservation, 0, len(limiters))
	for i, lim := range limiters {
		r := lim.ReserveN(now, 1)
		if delay := r.DelayFrom(now); !r.OK() || delay > 0 {
			// токен не списываем ни по одному правилу
			r.CancelAt(now)
			for _, prev := range reservations {
				prev.CancelAt(now)
			}
			return Decision{Rule: m.rules[i], RetryAfter: delay}, nil
		}
		reservations = append(reservations, r)
	}

	d := Decision{Allowed: true, Remaining: -1}
	for i, lim := range limiters {
		remaining := int(lim.TokensAt(now))
		if remaining < 0 {
			remaining = 0
		}
		if d.Remaining < 0 || remaining < d.Remaining {
			d.Rule = m.rules[i]
			d.Remaining = remaining
		}
	}
	return d, nil
}
