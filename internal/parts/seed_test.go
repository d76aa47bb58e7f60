package parts

import "testing"

// The starter inventory is what a fresh install serves, so the listing
// endpoint must not come up empty when it is loaded as-is.
func TestDefaultInventoryServesListing(t *testing.T) {
	inv := DefaultInventory()
	if len(inv) != 4 {
		t.Fatalf("expected 4 starter parts, got %d", len(inv))
	}

	svc := NewService(NewInMemoryRepository(inv))
	items, err := svc.List("")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != len(inv) {
		t.Fatalf("expected %d parts, got %d", len(inv), len(items))
	}

	seen := map[string]bool{}
	for _, p := range inv {
		if p.Name == "" || p.Price == "" || p.Brand == "" || p.Category == "" {
			t.Fatalf("incomplete starter part %+v", p)
		}
		if p.Condition != "New" {
			t.Fatalf("starter part %q condition %q, want New", p.Name, p.Condition)
		}
		if seen[p.Name] {
			t.Fatalf("duplicate starter part %q", p.Name)
		}
		seen[p.Name] = true
	}

	ignition, err := svc.List("Ignition")
	if err != nil {
		t.Fatal(err)
	}
	if len(ignition) != 1 || ignition[0].Name != "Iridium Spark Plugs" {
		t.Fatalf("unexpected Ignition parts %+v", ignition)
	}
}
