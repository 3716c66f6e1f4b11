// Package password реализует хеширование и проверку паролей учётных записей.
//
// Хеш строится через bcrypt: соль генерируется на каждый вызов, поэтому
// два хеша одного и того же пароля никогда не совпадают, а исходный пароль
// из хеша не восстанавливается.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword возвращается при попытке захешировать пустой пароль.
var ErrEmptyPassword = errors.New("password is empty")

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
func GetHash(plain string) (string, error) {
	const op = "password.GetHash"
	if plain == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, иначе — ошибку.
func CompareHash(hash, plain string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Matches сообщает, подходит ли пароль к хешу. Пустой хеш не подходит ни к чему.
func Matches(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return CompareHash(hash, plain) == nil
}
