// SPDX-License-Identifier: MPL-2.0

package nodemod

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDepType_Ordering(t *testing.T) {
	t.Parallel()
	ordered := []DepType{DepOptional, DepDevOptional, DepDev, DepProd, DepRoot}
	for i := range ordered {
		for j := range ordered {
			got := ordered[i].Greater(ordered[j])
			if got != (i > j) {
				t.Errorf("%s.Greater(%s) = %v, want %v", ordered[i], ordered[j], got, i > j)
			}
		}
	}
}

func TestChildDepType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		parent DepType
		edge   DepType
		want   DepType
	}{
		{DepRoot, DepProd, DepProd},
		{DepRoot, DepOptional, DepOptional},
		{DepRoot, DepDev, DepDev},
		{DepProd, DepProd, DepProd},
		{DepProd, DepOptional, DepOptional},
		{DepDev, DepProd, DepDev},
		{DepDev, DepOptional, DepDevOptional},
		{DepDevOptional, DepProd, DepDevOptional},
		{DepDevOptional, DepOptional, DepDevOptional},
		{DepOptional, DepProd, DepOptional},
		{DepOptional, DepOptional, DepOptional},
	}

	for _, tt := range tests {
		t.Run(tt.parent.String()+"/"+tt.edge.String(), func(t *testing.T) {
			t.Parallel()
			if got := ChildDepType(tt.parent, tt.edge); got != tt.want {
				t.Errorf("ChildDepType(%s, %s) = %s, want %s", tt.parent, tt.edge, got, tt.want)
			}
		})
	}
}

func TestChildDepType_NeverStrongerThanParent(t *testing.T) {
	t.Parallel()
	for _, parent := range []DepType{DepOptional, DepDevOptional, DepDev, DepProd} {
		for _, edge := range []DepType{DepOptional, DepDev, DepProd} {
			if got := ChildDepType(parent, edge); got.Greater(parent) {
				t.Errorf("ChildDepType(%s, %s) = %s is stronger than its parent", parent, edge, got)
			}
		}
	}
}

func TestChildDepType_RootEdgePanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a root edge")
		}
	}()
	ChildDepType(DepProd, DepRoot)
}

func TestParseDepType(t *testing.T) {
	t.Parallel()
	for _, d := range []DepType{DepOptional, DepDevOptional, DepDev, DepProd, DepRoot} {
		got, err := ParseDepType(d.String())
		if err != nil {
			t.Fatalf("ParseDepType(%q) unexpected error: %v", d.String(), err)
		}
		if got != d {
			t.Errorf("ParseDepType(%q) = %s, want %s", d.String(), got, d)
		}
	}

	_, err := ParseDepType("peer")
	if !errors.Is(err, ErrInvalidDepType) {
		t.Errorf("expected ErrInvalidDepType, got %v", err)
	}
	var typeErr *InvalidDepTypeError
	if !errors.As(err, &typeErr) || typeErr.Value != "peer" {
		t.Errorf("expected *InvalidDepTypeError with value peer, got %#v", err)
	}
}

func TestDepType_JSON(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(struct {
		Type DepType `json:"type"`
	}{DepDevOptional})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"type":"dev-optional"}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var decoded struct {
		Type DepType `json:"type"`
	}
	if err := json.Unmarshal([]byte(`{"type":"prod"}`), &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Type != DepProd {
		t.Errorf("expected prod, got %s", decoded.Type)
	}
}
