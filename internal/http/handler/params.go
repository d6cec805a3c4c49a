package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"stallhub/internal/model"
)

const dateLayout = "2006-01-02"

// paramError is a malformed request detected before reaching a service.
type paramError struct {
	code    string
	message string
}

func (e *paramError) Error() string { return e.message }

func badParam(code, message string) error {
	return &paramError{code: code, message: message}
}

// idParam returns the named path parameter when it is a UUID.
func idParam(c *fiber.Ctx, name string) (string, error) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", badParam("INVALID_ID", "invalid id format")
	}
	return id, nil
}

// pageParams reads limit and offset. Zero values let the service apply its defaults.
func pageParams(c *fiber.Ctx) (limit, offset int, err error) {
	if v := c.Query("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 0 {
			return 0, 0, badParam("INVALID_LIMIT", "invalid limit")
		}
	}
	if v := c.Query("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil || offset < 0 {
			return 0, 0, badParam("INVALID_OFFSET", "invalid offset")
		}
	}
	return limit, offset, nil
}

// boolParam parses an optional boolean query parameter.
func boolParam(c *fiber.Ctx, key string) (*bool, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, badParam("INVALID_QUERY", "invalid "+key)
	}
	return &b, nil
}

// dateRange reads from and to as RFC 3339 timestamps or calendar dates.
// A bare date for "to" covers that whole day.
func dateRange(c *fiber.Ctx) (model.DateRange, error) {
	var r model.DateRange
	var ok bool
	if r.From, ok = parseTime(c.Query("from"), false); !ok {
		return r, badParam("INVALID_RANGE", "from must be RFC 3339 or YYYY-MM-DD")
	}
	if r.To, ok = parseTime(c.Query("to"), true); !ok {
		return r, badParam("INVALID_RANGE", "to must be RFC 3339 or YYYY-MM-DD")
	}
	return r, nil
}

func parseTime(v string, endOfDay bool) (time.Time, bool) {
	if v == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}
	return t, true
}

// bindJSON parses the request body into v.
func bindJSON(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return badParam("INVALID_BODY", "invalid request body")
	}
	return nil
}
