package intent

import (
	"strconv"
	"strings"
)

// Params holds the named groups captured from a question
type Params struct {
	intent Intent
	values map[string]string
}

func newParams(intent Intent, values map[string]string) Params {
	if values == nil {
		values = map[string]string{}
	}
	return Params{intent: intent, values: values}
}

// Raw returns the captured text as-is
func (p Params) Raw(name string) string {
	return p.values[name]
}

// Text returns the captured text without surrounding whitespace or a trailing
// question mark. Empty text is an error.
func (p Params) Text(name string) (string, error) {
	value := strings.TrimRight(strings.TrimSpace(p.values[name]), "?! ")
	if value == "" {
		return "", &ParamError{Intent: p.intent, Param: name}
	}
	return value, nil
}

// Int parses the captured text as a base 10 integer
func (p Params) Int(name string) (int64, error) {
	value, err := p.number(name)
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &ParamError{Intent: p.intent, Param: name, Value: value, Err: err}
	}
	return n, nil
}

// IntOr is Int with a default for an absent optional group. The value must be
// at least 1 and is capped at maxLimit.
func (p Params) IntOr(name string, fallback int) (int, error) {
	if strings.TrimSpace(p.values[name]) == "" {
		return fallback, nil
	}

	n, err := p.Int(name)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, &ParamError{Intent: p.intent, Param: name, Value: p.values[name], Err: errNotPositive}
	}
	if n > int64(maxLimit) {
		n = int64(maxLimit)
	}
	return int(n), nil
}

// Amount parses a money value; a leading "$" is accepted
func (p Params) Amount(name string) (float64, error) {
	value, err := p.number(name)
	if err != nil {
		return 0, err
	}

	amount, err := strconv.ParseFloat(strings.TrimPrefix(value, "$"), 64)
	if err != nil {
		return 0, &ParamError{Intent: p.intent, Param: name, Value: value, Err: err}
	}
	return amount, nil
}

func (p Params) number(name string) (string, error) {
	value := strings.TrimRight(strings.TrimSpace(p.values[name]), "?!.,")
	if value == "" {
		return "", &ParamError{Intent: p.intent, Param: name}
	}
	return value, nil
}
