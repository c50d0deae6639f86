// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"testing"
)

func TestCheckListMarshalOrder(t *testing.T) {
	cl := CheckList{
		{Name: "signature_valid", Passed: true},
		{Name: "content_match", Passed: false},
		{Name: "before_deadline", Passed: true},
	}

	data, err := json.Marshal(cl)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"signature_valid":true,"content_match":false,"before_deadline":true}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestCheckListUnmarshalPreservesOrder(t *testing.T) {
	input := `{"timestamp_valid":true,"signature_valid":false,"content_match":true}`

	var cl CheckList
	if err := json.Unmarshal([]byte(input), &cl); err != nil {
		t.Fatal(err)
	}

	if len(cl) != 3 {
		t.Fatalf("expected 3 checks, got %d", len(cl))
	}

	wantOrder := []string{"timestamp_valid", "signature_valid", "content_match"}
	for i, name := range wantOrder {
		if cl[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, cl[i].Name)
		}
	}
	if cl[1].Passed {
		t.Error("signature_valid should be false")
	}
}

func TestCheckListRejectsNonBoolean(t *testing.T) {
	var cl CheckList
	if err := json.Unmarshal([]byte(`{"signature_valid":"yes"}`), &cl); err == nil {
		t.Error("expected error for non-boolean check value")
	}
}

func TestCheckListEmpty(t *testing.T) {
	var cl CheckList
	if err := json.Unmarshal([]byte(`{}`), &cl); err != nil {
		t.Fatal(err)
	}
	if len(cl) != 0 {
		t.Errorf("expected empty list, got %d entries", len(cl))
	}

	data, err := json.Marshal(cl)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}" {
		t.Errorf("expected {}, got %s", data)
	}
}

func TestCheckListHelpers(t *testing.T) {
	cl := CheckList{
		{Name: "signature_valid", Passed: true},
		{Name: "content_match", Passed: false},
		{Name: "before_deadline", Passed: false},
	}

	if cl.AllPassed() {
		t.Error("AllPassed should be false")
	}

	failed := cl.Failed()
	if len(failed) != 2 || failed[0] != "content_match" || failed[1] != "before_deadline" {
		t.Errorf("unexpected failed list: %v", failed)
	}

	if v, ok := cl.Get("signature_valid"); !ok || !v {
		t.Error("Get(signature_valid) should return true, true")
	}
	if _, ok := cl.Get("missing"); ok {
		t.Error("Get(missing) should report not found")
	}

	if !(CheckList{}).AllPassed() {
		t.Error("empty list counts as all passed")
	}
}
