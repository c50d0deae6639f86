// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Check is a single named boolean verification sub-result.
type Check struct {
	Name   string
	Passed bool
}

// CheckList holds verification checks in evaluation order. Go maps don't
// preserve insertion order, and the export engine renders checks in the
// order they were evaluated, so the JSON object codec is hand-rolled.
type CheckList []Check

// Get returns the value for a named check and whether it exists.
func (cl CheckList) Get(name string) (bool, bool) {
	for _, c := range cl {
		if c.Name == name {
			return c.Passed, true
		}
	}
	return false, false
}

// AllPassed reports whether every check in the list passed.
// An empty list counts as passed.
func (cl CheckList) AllPassed() bool {
	for _, c := range cl {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Failed returns the names of failed checks, in list order.
func (cl CheckList) Failed() []string {
	var names []string
	for _, c := range cl {
		if !c.Passed {
			names = append(names, c.Name)
		}
	}
	return names
}

// MarshalJSON encodes the list as a JSON object, preserving order.
func (cl CheckList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range cl {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		if c.Passed {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the list, preserving the
// order keys appear in the document.
func (cl *CheckList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("checks: expected JSON object, got %v", tok)
	}

	out := CheckList{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("checks: non-string key %v", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		val, ok := valTok.(bool)
		if !ok {
			return fmt.Errorf("checks: value for %q is not a boolean", key)
		}
		out = append(out, Check{Name: key, Passed: val})
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return err
	}
	*cl = out
	return nil
}
