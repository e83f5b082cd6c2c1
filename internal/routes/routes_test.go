package routes

import "testing"

func TestPolicy_OrderAndPaths(t *testing.T) {
	got := Policy()
	if len(got) != 7 {
		t.Fatalf("expected 7 policy routes, got %d", len(got))
	}
	if got[0].Label != "Crisis Overview" || got[0].Path != "/policy/crisis-overview" {
		t.Errorf("first route = %+v", got[0])
	}
	if got[6].Path != "/policy/faqs" {
		t.Errorf("last route = %+v", got[6])
	}
	for _, c := range got {
		if c.Label == "" || c.Path == "" {
			t.Errorf("route with empty label or path: %+v", c)
		}
	}
}

func TestPolicy_ReturnsCopy(t *testing.T) {
	a := Policy()
	a[0].Label = "changed"
	if Policy()[0].Label != "Crisis Overview" {
		t.Error("Policy should return an independent copy")
	}
}

func TestCloneAndCount(t *testing.T) {
	cfgs := []Config{
		{Label: "a", Path: "/a", Children: []Config{{Label: "a1", Path: "/a/1"}}},
		{Label: "b", Path: "/b"},
	}
	c := Clone(cfgs)
	c[0].Children[0].Label = "changed"
	if cfgs[0].Children[0].Label != "a1" {
		t.Error("Clone should copy children")
	}
	if n := Count(cfgs); n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}
