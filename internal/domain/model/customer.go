package model

import (
	"fmt"
	"strconv"
)

// Customer is one record returned by the protected customers endpoint. The
// backend contract does not pin a schema, so the decoded JSON object is kept
// as-is and the display fields are looked up leniently.
type Customer map[string]any

// ID returns the record identifier, or "" if none of the known keys is set.
func (c Customer) ID() string {
	return c.lookup("customerId", "CustomerId", "id")
}

// Name returns the record display name, or "" if none of the known keys is set.
func (c Customer) Name() string {
	return c.lookup("customerName", "CustomerName", "name")
}

func (c Customer) lookup(keys ...string) string {
	for _, k := range keys {
		v, ok := c[k]
		if !ok || v == nil {
			continue
		}
		if s := stringify(v); s != "" {
			return s
		}
	}
	return ""
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
