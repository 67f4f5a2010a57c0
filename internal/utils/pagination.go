package utils

import (
	"fmt"
	"net/url"
	"strconv"

	apperrors "medspace-api/internal/errors"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	MaxPageOffset    = 1<<31 - 1
)

// ParsePagination reads offset and limit query values, applying defaults and bounds.
func ParsePagination(query url.Values) (int, int, error) {
	offset, limit := 0, DefaultPageLimit
	var details []apperrors.FieldError

	if raw := query.Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > MaxPageOffset {
			details = append(details, apperrors.FieldError{Field: "offset", Message: fmt.Sprintf("offset must be between 0 and %d", MaxPageOffset)})
		} else {
			offset = v
		}
	}
	if raw := query.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > MaxPageLimit {
			details = append(details, apperrors.FieldError{Field: "limit", Message: fmt.Sprintf("limit must be between 1 and %d", MaxPageLimit)})
		} else {
			limit = v
		}
	}
	if len(details) > 0 {
		return 0, 0, apperrors.Validation(details)
	}
	return offset, limit, nil
}

// PageLinks returns next and previous URLs, empty when there is no such page.
func PageLinks(baseURL string, offset, limit int, total int64, params url.Values) (string, string) {
	var next, prev string
	if int64(offset) < total-int64(limit) {
		next = BuildPaginationURL(baseURL, offset+limit, limit, params)
	}
	if offset > 0 {
		p := offset - limit
		if p < 0 {
			p = 0
		}
		prev = BuildPaginationURL(baseURL, p, limit, params)
	}
	return next, prev
}

func BuildPaginationURL(baseURL string, offset, limit int, params url.Values) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		u = &url.URL{Path: baseURL}
	}
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	for key, values := range params {
		if key != "offset" && key != "limit" {
			for _, value := range values {
				q.Add(key, value)
			}
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
