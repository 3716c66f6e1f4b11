// Package request разбирает общие параметры HTTP-запросов.
package request

import (
	"errors"
	"net/http"
	"strconv"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
	// MaxOffset ограничивает число пропускаемых записей.
	MaxOffset = 1_000_000
)

var (
	ErrInvalidPage    = errors.New("page must be a positive integer")
	ErrInvalidPerPage = errors.New("per_page must be between 1 and 100")
)

// Page читает page и per_page из строки запроса. Отсутствующие параметры
// получают значения по умолчанию.
func Page(r *http.Request) (page, perPage int, err error) {
	q := r.URL.Query()

	page = DefaultPage
	if raw := q.Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, ErrInvalidPage
		}
	}

	perPage = DefaultPerPage
	if raw := q.Get("per_page"); raw != "" {
		perPage, err = strconv.Atoi(raw)
		if err != nil || perPage < 1 || perPage > MaxPerPage {
			return 0, 0, ErrInvalidPerPage
		}
	}
	if page-1 > MaxOffset/perPage {
		return 0, 0, ErrInvalidPage
	}
	return page, perPage, nil
}
