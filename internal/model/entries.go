package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Certification accepts either a bare string ("CKA") or an object
// {"name": ..., "issuer": ..., "year": ..., "url": ...}. Year may be a
// JSON string or number.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Year   string `json:"year,omitempty"`
	URL    string `json:"url,omitempty"`
}

func (c *Certification) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Certification{Name: s}
		return nil
	}

	var raw struct {
		Name   string          `json:"name"`
		Issuer string          `json:"issuer"`
		Year   json.RawMessage `json:"year"`
		URL    string          `json:"url"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("certification: %w", err)
	}
	year, err := flexibleString(raw.Year)
	if err != nil {
		return fmt.Errorf("certification year: %w", err)
	}
	*c = Certification{Name: raw.Name, Issuer: raw.Issuer, Year: year, URL: raw.URL}
	return nil
}

// Language accepts either "English" or {"name": "English", "proficiency": "Native"}.
type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
}

func (l *Language) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = Language{Name: s}
		return nil
	}

	type plain Language
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("language: %w", err)
	}
	*l = Language(p)
	return nil
}

// flexibleString decodes null, a string or a number into a string.
func flexibleString(b json.RawMessage) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return "", err
		}
		if i, err := n.Int64(); err == nil {
			return strconv.FormatInt(i, 10), nil
		}
		return n.String(), nil
	}
}
