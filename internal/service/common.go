package service

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"stallhub/internal/model"
	"stallhub/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page is the list envelope returned to clients.
type Page[T any] struct {
	Items  []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func pageQuery(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}

func newPage[T any](res *repository.PageResult[T], pq repository.PageQuery) *Page[T] {
	return &Page[T]{Items: res.Items, Total: res.Total, Limit: pq.Limit, Offset: pq.Offset}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func requireUser(p model.Principal) error {
	if p.Anonymous() {
		return ErrUnauthorized
	}
	return nil
}

// normalizeEmail lower-cases and validates a bare address.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("email is not valid")
	}
	return email, nil
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)
	apostrophes = strings.NewReplacer("'", "", "\u2019", "")
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// slugify derives a URL slug: lower case, apostrophes dropped, runs of other
// characters become one dash.
func slugify(s string) string {
	s = apostrophes.Replace(strings.ToLower(s))
	return strings.Trim(slugInvalid.ReplaceAllString(s, "-"), "-")
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid("%s is required", field)
	}
	return nil
}
