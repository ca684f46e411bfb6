package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mhzindev/sunsetflow/internal/core"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// decodeBody reads a JSON request body into dst. Unknown fields are
// rejected so typos surface as 422 instead of silently dropped data.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return core.ValidationErr("invalid request body", err)
	}
	return nil
}

// parseAmount wraps core.ParseAmount with a field-specific message.
func parseAmount(field, s string) (decimal.Decimal, error) {
	d, err := core.ParseAmount(s)
	if err != nil {
		return decimal.Zero, core.ValidationErr(fmt.Sprintf("invalid %s", field), err)
	}
	return d, nil
}

func parseSignedAmount(field, s string) (decimal.Decimal, error) {
	d, err := core.ParseSignedAmount(s)
	if err != nil {
		return decimal.Zero, core.ValidationErr(fmt.Sprintf("invalid %s", field), err)
	}
	return d, nil
}

// parseOptionalAmount treats an empty string as zero.
func parseOptionalAmount(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return parseAmount(field, s)
}

// parseDate accepts ISO dates (2006-01-02), with or without a time
// component.
func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, core.ValidationErr(fmt.Sprintf("missing %s", field), core.ErrZeroDate)
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, core.ValidationErr(fmt.Sprintf("invalid %s", field),
		errors.New("expected 2006-01-02 or RFC 3339"))
}

// parseOptionalDate returns the zero time for an empty string.
func parseOptionalDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return parseDate(field, s)
}
