package ptr

import "testing"

func TestDeref(t *testing.T) {
	t.Parallel()
	if got := Deref(Bool(false), true); got != false {
		t.Errorf("Deref(&false, true) = %v, want false", got)
	}
	if got := Deref[bool](nil, true); got != true {
		t.Errorf("Deref(nil, true) = %v, want true", got)
	}
	if got := Deref(Int(3), 0); got != 3 {
		t.Errorf("Deref(&3, 0) = %v, want 3", got)
	}
}
