package risk

import (
	"errors"
	"testing"
)

func TestPositionLimitCheck(t *testing.T) {
	lim := PositionLimit{Limit: 2}

	if err := lim.Check(0, 1); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if err := lim.Check(1, 1); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if err := lim.Check(2, 1); !errors.Is(err, ErrPositionLimit) {
		t.Fatalf("expected long limit exceed, got %v", err)
	}
	if err := lim.Check(-2, -1); !errors.Is(err, ErrPositionLimit) {
		t.Fatalf("expected short limit exceed, got %v", err)
	}
	// 向零方向的成交总是允许
	if err := lim.Check(2, -1); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if err := lim.Check(-2, 1); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if err := lim.Check(2, 0); err != nil {
		t.Fatalf("no-op at the bound should pass: %v", err)
	}
}
