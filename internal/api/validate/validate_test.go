package validate

import "testing"

func TestRequired(t *testing.T) {
	if ef := Required("name", "Priya"); ef != nil {
		t.Fatalf("unexpected error: %+v", ef)
	}
	if ef := Required("name", "   "); ef == nil || ef.Field != "name" {
		t.Fatalf("whitespace should fail, got %+v", ef)
	}
	if ef := Required("name", ""); ef == nil {
		t.Fatal("empty should fail")
	}
}

func TestMinInt(t *testing.T) {
	if ef := MinInt("household_size", 1, 1); ef != nil {
		t.Fatalf("boundary value should pass, got %+v", ef)
	}
	if ef := MinInt("household_size", 0, 1); ef == nil {
		t.Fatal("below minimum should fail")
	}
}

func TestIntRange(t *testing.T) {
	for _, v := range []int64{1, 6, 12} {
		if ef := IntRange("month", v, 1, 12); ef != nil {
			t.Fatalf("%d should pass, got %+v", v, ef)
		}
	}
	for _, v := range []int64{0, 13} {
		if ef := IntRange("month", v, 1, 12); ef == nil {
			t.Fatalf("%d should fail", v)
		}
	}
}

func TestOneOf(t *testing.T) {
	if ef := OneOf("kind", "expense", "expense", "income"); ef != nil {
		t.Fatalf("unexpected error: %+v", ef)
	}
	if ef := OneOf("kind", "transfer", "expense", "income"); ef == nil {
		t.Fatal("unlisted value should fail")
	}
}

func TestErrsError(t *testing.T) {
	errs := Errs{
		{Field: "kind", Msg: "required"},
		{Field: "amount", Msg: "not a number"},
	}
	want := "kind: required; amount: not a number"
	if got := errs.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
