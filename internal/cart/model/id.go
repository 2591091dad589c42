package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ItemID is the canonical text form of a product id. Numbers are rendered in
// their shortest decimal form and strings are kept as given apart from
// surrounding spaces, so 7, 7.0, "7" and " 7 " match one another while "007"
// and "7" stay distinct.
type ItemID string

// NormalizeID converts an id of any supported representation to its canonical form.
func NormalizeID(v any) ItemID {
	switch id := v.(type) {
	case nil:
		return ""
	case ItemID:
		return NormalizeID(string(id))
	case string:
		return ItemID(strings.TrimSpace(id))
	case json.Number:
		return ItemID(canonicalNumber(id.String()))
	case int:
		return ItemID(strconv.Itoa(id))
	case int32:
		return ItemID(strconv.FormatInt(int64(id), 10))
	case int64:
		return ItemID(strconv.FormatInt(id, 10))
	case uint:
		return ItemID(strconv.FormatUint(uint64(id), 10))
	case uint32:
		return ItemID(strconv.FormatUint(uint64(id), 10))
	case uint64:
		return ItemID(strconv.FormatUint(id, 10))
	case float32:
		return ItemID(formatFloat(float64(id)))
	case float64:
		return ItemID(formatFloat(id))
	case fmt.Stringer:
		return ItemID(strings.TrimSpace(id.String()))
	default:
		return ItemID(strings.TrimSpace(fmt.Sprint(v)))
	}
}

func (id ItemID) String() string {
	return string(id)
}

// IsZero reports whether the id is empty.
func (id ItemID) IsZero() bool {
	return id == ""
}

// MarshalJSON writes integer ids as JSON numbers and everything else as strings.
func (id ItemID) MarshalJSON() ([]byte, error) {
	if isInteger(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts numbers, strings and null.
func (id *ItemID) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode item id: %w", err)
	}
	switch raw.(type) {
	case nil, string, json.Number:
		*id = NormalizeID(raw)
		return nil
	default:
		return fmt.Errorf("item id must be a number or string, got %s", string(data))
	}
}

// canonicalNumber renders JSON number text in its shortest decimal form.
func canonicalNumber(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if isSignedDigits(s) {
		return trimIntegerText(s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	return formatFloat(f)
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimIntegerText drops a leading '+' and leading zeros without going through
// float64, so long digit strings keep every digit.
func trimIntegerText(s string) string {
	neg := false
	switch s[0] {
	case '-':
		neg, s = true, s[1:]
	case '+':
		s = s[1:]
	}
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	if neg {
		return "-" + s
	}
	return s
}

func isSignedDigits(s string) bool {
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isInteger(s string) bool {
	if s == "" || !isSignedDigits(s) || s[0] == '+' {
		return false
	}
	return trimIntegerText(s) == s
}
