// Package jwt реализует выпуск и проверку подписанных bearer-токенов.
//
// Токен подписывается HS256 общим для процесса секретом и несёт идентификатор,
// имя и почту учётной записи. Отзыва и обновления токенов нет: токен валиден,
// пока не истёк срок жизни.
package jwt

import (
	"errors"
	"time"
)

// DefaultTTL — срок жизни токена, если в конфиге он не задан.
const DefaultTTL = 24 * time.Hour

// ErrInvalidToken возвращается для любого токена, который нельзя принять:
// истёкшего, подделанного, подписанного чужим ключом или другим алгоритмом.
var ErrInvalidToken = errors.New("invalid or expired token")

// Maker описывает выпуск и разбор токенов.
type Maker interface {
	GenerateToken(userID, username, email string) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker с использованием секретного ключа и времени жизни токена.
type MakerImpl struct {
	secretKey []byte        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
	now       func() time.Time
}

// NewJWTMaker создаёт MakerImpl. Нулевой ttl заменяется на DefaultTTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &MakerImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
		now:       time.Now,
	}
}
