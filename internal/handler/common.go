package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// getAttendeeID extracts the attendee_id claim from echo.Context and
// converts it to uint64. JWT numeric claims decode as float64, but the
// value may also arrive as a string or integer depending on how the
// token was produced, so all shapes are accepted.
func getAttendeeID(c echo.Context) (uint64, error) {
	v := c.Get("attendee_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid attendee_id in context")
}
