// Package schema validates raw module outputs against their per-module
// schemas. Validation is strict: unknown fields, missing fields, wrong
// cardinality and out-of-range numbers are all rejected, never coerced.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// decodeStrict unmarshals raw into v, rejecting unknown fields and trailing data.
func decodeStrict(module model.Module, raw []byte, v any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &model.ValidationError{Module: module, Field: "$", Reason: "payload is empty"}
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return decodeError(module, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return &model.ValidationError{Module: module, Field: "$", Reason: "unexpected data after payload"}
	}
	return nil
}

func decodeError(module model.Module, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "$"
		}
		return &model.ValidationError{
			Module: module,
			Field:  field,
			Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &model.ValidationError{
			Module: module,
			Field:  "$",
			Reason: fmt.Sprintf("malformed JSON at offset %d: %v", syntaxErr.Offset, err),
		}
	}

	// encoding/json reports unknown fields as `json: unknown field "x"`.
	msg := err.Error()
	if strings.HasPrefix(msg, "json: unknown field ") {
		name, _ := strconv.Unquote(strings.TrimPrefix(msg, "json: unknown field "))
		return &model.ValidationError{Module: module, Field: name, Reason: "unknown field"}
	}
	return &model.ValidationError{Module: module, Field: "$", Reason: msg}
}

// check accumulates the first failure for a module. Later checks are no-ops
// once an error is recorded.
type check struct {
	module model.Module
	err    error
}

func (c *check) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *check) missing(field string) {
	c.fail(&model.ValidationError{Module: c.module, Field: field, Reason: "required field missing"})
}

func (c *check) invalid(field, reason string) {
	c.fail(&model.ValidationError{Module: c.module, Field: field, Reason: reason})
}

func (c *check) mismatch(field, expected, actual string) {
	c.fail(&model.SchemaMismatchError{Module: c.module, Field: field, Expected: expected, Actual: actual})
}

// number requires v and checks it lies in [lo, hi].
func (c *check) number(field string, v *float64, lo, hi float64) float64 {
	if v == nil {
		c.missing(field)
		return 0
	}
	if *v < lo || *v > hi {
		c.mismatch(field, fmt.Sprintf("value in [%s,%s]", fmtNum(lo), fmtNum(hi)), fmtNum(*v))
	}
	return *v
}

// text requires v and, when nonEmpty, rejects blank strings.
func (c *check) text(field string, v *string, nonEmpty bool) string {
	if v == nil {
		c.missing(field)
		return ""
	}
	if nonEmpty && strings.TrimSpace(*v) == "" {
		c.invalid(field, "must not be empty")
	}
	return *v
}

// count checks exact cardinality of a required list.
func (c *check) count(field string, present bool, got, want int) {
	if !present {
		c.missing(field)
		return
	}
	if got != want {
		c.mismatch(field, fmt.Sprintf("%d entries", want), fmt.Sprintf("%d entries", got))
	}
}

// atLeast checks minimum cardinality of a required list.
func (c *check) atLeast(field string, present bool, got, min int) {
	if !present {
		c.missing(field)
		return
	}
	if got < min {
		c.mismatch(field, fmt.Sprintf("at least %d entries", min), fmt.Sprintf("%d entries", got))
	}
}

func elem(field string, i int, name string) string {
	return fmt.Sprintf("%s[%d].%s", field, i, name)
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
