package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{err: Validation("bad bvn"), want: KindValidation},
		{err: NotFound("no subscription"), want: KindNotFound},
		{err: Conflict("already subscribed"), want: KindConflict},
		{err: InvalidState("cannot delete active"), want: KindInvalidState},
		{err: Business("bank verification mismatch"), want: KindBusiness},
		{err: errors.New("plain"), want: KindInternal},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Fatalf("KindOf(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := InvalidState("cannot delete an active subscription")
	wrapped := fmt.Errorf("delete subscription 42: %w", inner)

	if !Is(wrapped, KindInvalidState) {
		t.Fatalf("expected wrapped error to keep KindInvalidState")
	}
}

func TestErrorMessage(t *testing.T) {
	e := Wrap(KindInternal, "", errors.New("dial tcp: refused"))
	if e.Error() != "dial tcp: refused" {
		t.Fatalf("expected cause message, got %q", e.Error())
	}

	e = Business("BVN and account do not match")
	if e.Error() != "BVN and account do not match" {
		t.Fatalf("unexpected message %q", e.Error())
	}
}
