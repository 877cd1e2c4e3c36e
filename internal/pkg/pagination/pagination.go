package pagination

import (
	"net/http"
	"strconv"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// FromRequest reads page and limit from the query string, applying defaults for absent values.
func FromRequest(r *http.Request) (Params, error) {
	var errs validator.ValidationErrors
	p := Params{Page: DefaultPage, Limit: DefaultLimit}

	if page := r.URL.Query().Get("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			errs.Add("page", "page must be a positive integer")
		} else {
			p.Page = n
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		switch {
		case err != nil || n < 1:
			errs.Add("limit", "limit must be a positive integer")
		case n > MaxLimit:
			errs.Add("limit", "limit must not exceed "+strconv.Itoa(MaxLimit))
		default:
			p.Limit = n
		}
	}

	if err := errs.Err(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func (p Params) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
