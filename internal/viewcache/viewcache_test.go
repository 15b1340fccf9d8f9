package viewcache

import "testing"

func TestCache(t *testing.T) {
	t.Parallel()

	c := New()

	const path = "/dashboard/invoices"

	if _, ok := c.Get(path); ok {
		t.Fatalf("Get(%q) on empty cache = ok, want miss", path)
	}

	want := []byte(`{"data":{"invoices":[]}}`)
	c.Set(path, want)

	got, ok := c.Get(path)
	if !ok {
		t.Fatalf("Get(%q) = miss, want hit", path)
	}

	if string(got) != string(want) {
		t.Errorf("Get(%q) = %s, want %s", path, got, want)
	}

	paged := path + "?page_id=1&page_size=10"
	c.Set(paged, want)

	c.Invalidate(path)

	if _, ok := c.Get(path); ok {
		t.Errorf("Get(%q) after Invalidate = hit, want miss", path)
	}

	if _, ok := c.Get(paged); ok {
		t.Errorf("Get(%q) after Invalidate = hit, want miss", paged)
	}

	// Invalidating an absent path is a no-op.
	c.Invalidate("/dashboard/customers")
}
