package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Numeric is a number kept exactly as the user typed it. Stock costs, selling
// prices and quantities are stored as text; they are only interpreted when a
// report is computed.
type Numeric string

// NumericFromFloat formats v without trailing zeros.
func NumericFromFloat(v float64) Numeric {
	return Numeric(strconv.FormatFloat(v, 'f', -1, 64))
}

// IsBlank reports whether no value was entered.
func (n Numeric) IsBlank() bool { return strings.TrimSpace(string(n)) == "" }

// Float reads the leading decimal number of n ("12.5 kg" reads as 12.5).
func (n Numeric) Float() (float64, bool) {
	return leadingFloat(string(n))
}

// Int reads the leading base-10 integer of n ("3.9" reads as 3). Values past
// the int range saturate.
func (n Numeric) Int() (int, bool) {
	return leadingInt(string(n))
}

// UnmarshalJSON accepts both JSON strings and JSON numbers.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*n = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric(strings.TrimSpace(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("numeric value: %w", err)
	}
	*n = Numeric(num.String())
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func leadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && isDigit(s[end]) {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isDigit(s[end]) {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		j := end + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == start {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}
