// Package ratelimit ограничивает частоту запросов по ключу клиента.
// Правила задаются строками вида "50 per hour" или "10 per 5 minutes",
// несколько правил разделяются точкой с запятой. Запрос проходит, только если
// его допускают все правила.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidRule возвращается для строки правила, которую не удалось разобрать.
var ErrInvalidRule = errors.New("invalid rate limit rule")

var units = map[string]time.Duration{
	"second": time.Second,
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
}

var ruleRe = regexp.MustCompile(`^(\d+)\s*(?:per|/)\s*(\d+)?\s*(second|minute|hour|day)s?$`)

// Rule — не больше Limit запросов за Count единиц Unit.
type Rule struct {
	Limit  int
	Count  int
	Unit   string
	Window time.Duration
}

// String возвращает правило в каноническом виде, например "50 per 1 hour".
func (r Rule) String() string {
	return fmt.Sprintf("%d per %d %s", r.Limit, r.Count, r.Unit)
}

// ParseRule разбирает одно правило.
func ParseRule(s string) (Rule, error) {
	m := ruleRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return Rule{}, fmt.Errorf("%w: %q", ErrInvalidRule, s)
	}
	limit, err := strconv.Atoi(m[1])
	if err != nil || limit < 1 {
		return Rule{}, fmt.Errorf("%w: %q", ErrInvalidRule, s)
	}
	count := 1
	if m[2] != "" {
		if count, err = strconv.Atoi(m[2]); err != nil || count < 1 {
			return Rule{}, fmt.Errorf("%w: %q", ErrInvalidRule, s)
		}
	}
	return Rule{
		Limit:  limit,
		Count:  count,
		Unit:   m[3],
		Window: time.Duration(count) * units[m[3]],
	}, nil
}

// ParseRules разбирает список правил через ";". Пустая строка — ни одного правила.
func ParseRules(s string) ([]Rule, error) {
	var rules []Rule
	for _, part := range strings.Split(s, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		rule, err := ParseRule(part)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Decision — результат проверки запроса.
type Decision struct {
	Allowed bool
	// Rule — отказавшее правило, а для пропущенного запроса — правило с наименьшим остатком.
	Rule      Rule
	Remaining int
	// RetryAfter задан только при отказе.
	RetryAfter time.Duration
}

// RetryAfterSeconds округляет RetryAfter вверх до целых секунд, не меньше 1.
func (d Decision) RetryAfterSeconds() int {
	secs := int((d.RetryAfter + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

// Limiter проверяет и учитывает очередной запрос с ключом key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}
