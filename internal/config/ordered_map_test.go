package config

import "testing"

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	m := NewOrderedMap()
	m.Set("b", "2")
	m.Set("a", "1")
	m.Set("b", "20")

	got := m.Keys()
	want := []string{"b", "a"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	if v, _ := m.Get("b"); v != "20" {
		t.Fatalf("Get(b) = %q, want %q (overwrite should not reorder)", v, "20")
	}
}

func TestMergeBaseFirstThenNewKeysAppended(t *testing.T) {
	base := NewOrderedMap()
	base.Set("a", "1")
	base.Set("b", "2")

	other := NewOrderedMap()
	other.Set("b", "20")
	other.Set("c", "3")

	merged := Merge(base, other)

	want := []string{"a", "b", "c"}
	got := merged.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if v, _ := merged.Get("b"); v != "20" {
		t.Fatalf("Get(b) = %q, want other's value %q", v, "20")
	}
	if _, ok := base.Get("c"); ok {
		t.Fatal("Merge must not mutate base")
	}
}

func TestMergeWithNilOther(t *testing.T) {
	base := NewOrderedMap()
	base.Set("a", "1")

	merged := Merge(base, nil)
	if v, _ := merged.Get("a"); v != "1" {
		t.Fatalf("Merge(base, nil) lost base entry: %q", v)
	}
}
