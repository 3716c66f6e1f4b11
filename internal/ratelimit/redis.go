package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Проверяет все счётчики до инкремента и увеличивает их, только если проходят все правила.
// Ответ: {1, 0, count_1..count_n} при успехе или {0, i, current} при отказе правила i.
const fixedWindowLuaScript = `
local n = #KEYS
for i = 1, n do
    local current = tonumber(redis.call("GET", KEYS[i]) or "0")
    if current + 1 > tonumber(ARGV[2 * i - 1]) then
        return {0, i, current}
    end
end

local result = {1, 0}
for i = 1, n do
    local value = redis.call("INCR", KEYS[i])
    if value == 1 then
        redis.call("EXPIRE", KEYS[i], ARGV[2 * i])
    end
    result[i + 2] = value
end
return result
`

// Redis считает запросы в фиксированных окнах в redis, поэтому лимит общий
// для всех процессов сервиса.
type Redis struct {
	client *redis.Client
	prefix string
	rules  []Rule
	script *redis.Script
	now    func() time.Time
}

// NewRedis создаёт лимитер; prefix отделяет ключи разных групп маршрутов.
func NewRedis(client *redis.Client, prefix string, rules []Rule) *Redis {
	return &Redis{
		client: client,
		prefix: prefix,
		rules:  rules,
		script: redis.NewScript(fixedWindowLuaScript),
		now:    time.Now,
	}
}

func (l *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	const op = "ratelimit.Redis.Allow"
	if len(l.rules) == 0 {
		return Decision{Allowed: true}, nil
	}

	now := l.now()
	keys := make([]string, len(l.rules))
	windowEnds := make([]time.Time, len(l.rules))
	args := make([]any, 0, 2*len(l.rules))
	for i, rule := range l.rules {
		window := int64(rule.Window / time.Second)
		bucket := now.Unix() / window
		keys[i] = fmt.Sprintf("%s:%s:%d:%d:%d", l.prefix, key, rule.Limit, window, bucket)
		windowEnds[i] = time.Unix((bucket+1)*window, 0)
		args = append(args, rule.Limit, window)
	}

	res, err := l.script.Run(ctx, l.client, keys, args...).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(res) < 2 {
		return Decision{}, fmt.Errorf("%s: unexpected script result %v", op, res)
	}

	if res[0] == 0 {
		i := int(res[1]) - 1
		if i < 0 || i >= len(l.rules) {
			return Decision{}, fmt.Errorf("%s: unexpected rule index %d", op, res[1])
		}
		return Decision{Rule: l.rules[i], RetryAfter: windowEnds[i].Sub(now)}, nil
	}

	d := Decision{Allowed: true, Remaining: -1}
	for i, count := range res[2:] {
		if i >= len(l.rules) {
			break
		}
		remaining := l.rules[i].Limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		if d.Remaining < 0 || remaining < d.Remaining {
			d.Rule = l.rules[i]
			d.Remaining = remaining
		}
	}
	return d, nil
}
