package teammate

import "testing"

func TestBoardCreateAssignsSequentialIDs(t *testing.T) {
	setupTestDir(t)
	b := NewBoard("team-a")

	first, err := b.Create("do thing one", "", nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := b.Create("do thing two", "", nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if first.ID != "1" || second.ID != "2" {
		t.Fatalf("ids = %q, %q, want 1, 2", first.ID, second.ID)
	}
	if first.Status != BoardPending {
		t.Fatalf("status = %v, want pending", first.Status)
	}
}

func TestBoardInProgressRequiresOwner(t *testing.T) {
	setupTestDir(t)
	b := NewBoard("team-a")

	item, _ := b.Create("needs owner", "", nil, nil)

	inProgress := BoardInProgress
	if _, err := b.Update(item.ID, UpdateOptions{Status: &inProgress}); err == nil {
		t.Fatal("expected error setting in_progress without an owner")
	}

	owner := "alice"
	if _, err := b.Update(item.ID, UpdateOptions{Owner: &owner}); err != nil {
		t.Fatalf("set owner: %v", err)
	}
	if _, err := b.Update(item.ID, UpdateOptions{Status: &inProgress}); err != nil {
		t.Fatalf("set in_progress after owner assigned: %v", err)
	}
}

// S7 — Cascading unblock.
func TestBoardCompletingItemRemovesItFromOthersBlockedBy(t *testing.T) {
	setupTestDir(t)
	b := NewBoard("team-a")

	a, _ := b.Create("A", "", nil, nil)
	_, _ = b.Create("B", "", nil, nil)
	c, err := b.Create("C", "", []string{a.ID}, nil)
	if err != nil {
		t.Fatalf("Create C: %v", err)
	}
	if len(c.BlockedBy) != 1 {
		t.Fatalf("C.BlockedBy = %v, want [%s]", c.BlockedBy, a.ID)
	}

	owner := "bob"
	if _, err := b.Update(a.ID, UpdateOptions{Owner: &owner}); err != nil {
		t.Fatalf("assign owner to A: %v", err)
	}
	completed := BoardCompleted
	if _, err := b.Update(a.ID, UpdateOptions{Status: &completed}); err != nil {
		t.Fatalf("complete A: %v", err)
	}

	got, err := b.Get(c.ID)
	if err != nil {
		t.Fatalf("Get C: %v", err)
	}
	if len(got.BlockedBy) != 0 {
		t.Fatalf("C.BlockedBy = %v, want empty", got.BlockedBy)
	}

	unclaimed, err := b.Unclaimed()
	if err != nil {
		t.Fatalf("Unclaimed: %v", err)
	}
	found := false
	for _, it := range unclaimed {
		if it.ID == c.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("C not eligible for claim after unblock, unclaimed = %+v", unclaimed)
	}
}

// Invariant 7 — two board instances over the same directory converge.
func TestTwoBoardsOverSameDirectoryConverge(t *testing.T) {
	setupTestDir(t)
	b1 := NewBoard("shared")
	b2 := NewBoard("shared")

	item, err := b1.Create("cross-instance visibility", "", nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := b2.Get(item.ID)
	if err != nil {
		t.Fatalf("b2.Get: %v", err)
	}
	if got.Subject != item.Subject {
		t.Fatalf("subject = %q, want %q", got.Subject, item.Subject)
	}

	owner := "carol"
	if _, err := b2.Update(item.ID, UpdateOptions{Owner: &owner}); err != nil {
		t.Fatalf("b2.Update: %v", err)
	}

	got2, err := b1.Get(item.ID)
	if err != nil {
		t.Fatalf("b1.Get after b2 update: %v", err)
	}
	if got2.Owner != owner {
		t.Fatalf("owner = %q, want %q", got2.Owner, owner)
	}
}

func TestBoardListAllSortsByPriorityThenID(t *testing.T) {
	setupTestDir(t)
	b := NewBoard("team-a")

	_, _ = b.Create("normal one", PriorityNormal, nil, nil)
	_, _ = b.Create("low one", PriorityLow, nil, nil)
	_, _ = b.Create("high one", PriorityHigh, nil, nil)

	items, err := b.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if items[0].Priority != PriorityHigh || items[1].Priority != PriorityNormal || items[2].Priority != PriorityLow {
		t.Fatalf("order = %v, %v, %v, want high, normal, low", items[0].Priority, items[1].Priority, items[2].Priority)
	}
}
