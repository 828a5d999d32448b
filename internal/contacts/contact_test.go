package contacts

import (
	"reflect"
	"testing"
)

func TestVersion(t *testing.T) {
	a := testContacts()
	b := testContacts() // different slice, same content

	if Version(a) != Version(b) {
		t.Error("equal content should have equal versions")
	}

	b[1].Username = "Robert"
	if Version(a) == Version(b) {
		t.Error("changed username should change the version")
	}

	// Field boundaries are part of the hash
	x := []Contact{{ID: "ab", Username: "c"}}
	y := []Contact{{ID: "a", Username: "bc"}}
	if Version(x) == Version(y) {
		t.Error("shifting bytes between fields should change the version")
	}

	if Version(nil) != Version([]Contact{}) {
		t.Error("nil and empty should share a version")
	}
}

func TestList_SetContacts(t *testing.T) {
	l := NewList(nil)

	if l.SetContacts(nil) {
		t.Error("nil contacts on an empty list is not a change")
	}
	if !l.SetContacts(testContacts()) {
		t.Error("first real contacts should be a change")
	}
	if l.SetContacts(testContacts()) {
		t.Error("same content in a new slice should not be a change")
	}
	if !l.SetContacts(nil) {
		t.Error("clearing contacts should be a change")
	}
	if l.Contacts() == nil {
		t.Error("nil should be stored as empty")
	}
}

func TestFilter(t *testing.T) {
	cs := append(testContacts(), Contact{ID: "c", Username: "Carol"})

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"a", "b", "c"}},
		{"  ", []string{"a", "b", "c"}},
		{"al", []string{"a"}},
		{"O", []string{"b", "c"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got []string
			for _, c := range Filter(cs, tt.query) {
				got = append(got, c.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestCounts(t *testing.T) {
	c := Counts{"a": 2, "b": 3}

	if c.Get("missing") != 0 {
		t.Error("missing key should read as zero")
	}
	if c.Total() != 5 {
		t.Errorf("Total() = %d, want 5", c.Total())
	}

	clone := c.Clone()
	clone["a"] = 100
	if c["a"] != 2 {
		t.Error("Clone should be independent")
	}

	var nilCounts Counts
	if nilCounts.Get("x") != 0 || len(nilCounts.Clone()) != 0 {
		t.Error("nil Counts should behave as empty")
	}
}

func TestIncreases(t *testing.T) {
	before := Counts{"a": 1, "b": 2}
	after := Counts{"a": 3, "b": 2, "c": 1, "d": 0}

	got := Increases(before, after)
	want := []string{"a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Increases() = %v, want %v", got, want)
	}

	if len(Increases(after, before)) != 0 {
		t.Error("decreases should not be reported")
	}
}
