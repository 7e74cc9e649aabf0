package util

import (
	"strconv"
	"testing"
	"time"
)

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestNewIDMonotonic(t *testing.T) {
	prev, _ := strconv.ParseInt(NewID(), 10, 64)
	for i := 0; i < 100; i++ {
		next, err := strconv.ParseInt(NewID(), 10, 64)
		if err != nil {
			t.Fatalf("id is not numeric: %v", err)
		}
		if next <= prev {
			t.Fatalf("ids not increasing: %d then %d", prev, next)
		}
		prev = next
	}
}

func TestNewIDIsMillisecondTimestamp(t *testing.T) {
	before := time.Now().UnixMilli()
	id, err := strconv.ParseInt(NewID(), 10, 64)
	if err != nil {
		t.Fatalf("id is not numeric: %v", err)
	}
	after := time.Now().UnixMilli() + 1100 // allow for monotonic bumps in other tests
	if id < before || id > after {
		t.Errorf("id %d outside [%d, %d]", id, before, after)
	}
}
