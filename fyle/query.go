package fyle

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/google/go-querystring/query"
)

// EncodeQuery turns request parameters into query values.
//
// Accepted inputs are nil, url.Values, map[string]any and structs tagged
// for go-querystring. Unset values (nil, nil pointers) are left out and
// booleans are always rendered as "true" or "false".
func EncodeQuery(params any) (url.Values, error) {
	switch p := params.(type) {
	case nil:
		return url.Values{}, nil
	case url.Values:
		out := make(url.Values, len(p))
		for k, v := range p {
			out[k] = append([]string(nil), v...)
		}
		return out, nil
	case map[string]any:
		return encodeMap(p), nil
	}

	rv := reflect.ValueOf(params)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return url.Values{}, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("unsupported query params type %T", params)
	}

	values, err := query.Values(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query params: %w", err)
	}
	return values, nil
}

func encodeMap(params map[string]any) url.Values {
	values := make(url.Values, len(params))
	for key, raw := range params {
		v, ok := deref(raw)
		if !ok {
			continue
		}
		if b, isBool := v.(bool); isBool {
			values.Set(key, strconv.FormatBool(b))
			continue
		}
		values.Set(key, fmt.Sprint(v))
	}
	return values
}

// deref follows pointers and reports false for unset values.
func deref(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}
