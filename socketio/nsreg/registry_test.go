package nsreg

import "testing"

func TestAddExistsSearchDelete(t *testing.T) {
	r := New()

	if err := r.Add("/", "abc"); err != nil {
		t.Fatalf("Add default: %v", err)
	}
	if !r.Exists("/") {
		t.Fatal("Exists(/) = false, want true")
	}
	if !r.Exists("") {
		t.Fatal("Exists(\"\") = false, want true (default namespace is interchangeable)")
	}

	if err := r.Add("/chat", "xyz"); err != nil {
		t.Fatalf("Add /chat: %v", err)
	}

	if sid, ok := r.SearchSid("/chat"); !ok || sid != "xyz" {
		t.Fatalf("SearchSid(/chat) = %q, %v; want xyz, true", sid, ok)
	}

	if err := r.Add("/chat", "other"); err != ErrExists {
		t.Fatalf("Add duplicate err = %v, want ErrExists", err)
	}

	if r.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", r.Count())
	}

	if err := r.Delete("/chat"); err != nil {
		t.Fatalf("Delete(/chat): %v", err)
	}
	if err := r.Delete("/chat"); err != ErrNotFound {
		t.Fatalf("Delete again err = %v, want ErrNotFound", err)
	}
	if r.Count() != 1 {
		t.Fatalf("Count() after delete = %d, want 1", r.Count())
	}
}

func TestDestroy(t *testing.T) {
	r := New()
	r.Add("/", "a")
	r.Add("/chat", "b")
	r.Destroy()
	if r.Count() != 0 {
		t.Fatalf("Count() after Destroy = %d, want 0", r.Count())
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	r := New()
	order := []string{"/", "/a", "/b", "/c"}
	for _, nsp := range order {
		if err := r.Add(nsp, "sid-"+nsp); err != nil {
			t.Fatalf("Add(%s): %v", nsp, err)
		}
	}
	for _, nsp := range order {
		if !r.Exists(nsp) {
			t.Fatalf("Exists(%s) = false", nsp)
		}
	}
	for i, nsp := range order {
		if got, want := r.entries[i].nsp, normalize(nsp); got != want {
			t.Fatalf("entries[%d].nsp = %q, want %q", i, got, want)
		}
	}
}
