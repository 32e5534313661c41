package storage

import (
	"errors"
	"testing"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.Get("profile"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on unset key error = %v, want ErrNotFound", err)
	}

	if err := s.Set("profile", []byte(`{"name":"a"}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := s.Get("profile")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `{"name":"a"}` {
		t.Errorf("Get() = %s", got)
	}

	// returned slice is a copy
	got[0] = 'X'
	again, _ := s.Get("profile")
	if string(again) != `{"name":"a"}` {
		t.Errorf("stored blob mutated through returned slice: %s", again)
	}
}

func TestMemoryStore_FailWrites(t *testing.T) {
	s := NewMemoryStore()
	s.Set("k", []byte("v1"))
	s.FailWrites = true

	if err := s.Set("k", []byte("v2")); err == nil {
		t.Fatal("Set() error = nil, want failure")
	}
	got, _ := s.Get("k")
	if string(got) != "v1" {
		t.Errorf("failed write changed stored value: %s", got)
	}
}
