package teammate

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Board is the Task Board (C5): a durable, directory-backed registry of
// task items shared by every agent/teammate pointing at the same team
// directory. Every method re-reads from disk, so two Board instances over
// the same directory observe each other's writes on the next call —
// convergence with no explicit handoff.
type Board struct {
	teamName string
}

// NewBoard returns a Board bound to teamName's on-disk directory.
func NewBoard(teamName string) *Board {
	return &Board{teamName: teamName}
}

// Create adds a new pending item and assigns it the next unused ID.
func (b *Board) Create(subject string, priority Priority, blockedBy, dependsOn []string) (*BoardItem, error) {
	if err := ensureDir(boardDir(b.teamName)); err != nil {
		return nil, err
	}

	id, err := nextBoardID(b.teamName)
	if err != nil {
		return nil, fmt.Errorf("next board id: %w", err)
	}

	if priority == "" {
		priority = PriorityNormal
	}

	now := time.Now()
	item := &BoardItem{
		ID:        id,
		Subject:   subject,
		Status:    BoardPending,
		Priority:  priority,
		BlockedBy: blockedBy,
		DependsOn: dependsOn,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := writeJSON(boardItemPath(b.teamName, id), item); err != nil {
		return nil, fmt.Errorf("write board item: %w", err)
	}
	return item, nil
}

// Get loads a single item by ID.
func (b *Board) Get(id string) (*BoardItem, error) {
	var item BoardItem
	if err := readJSON(boardItemPath(b.teamName, id), &item); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("board item %q not found", id)
		}
		return nil, err
	}
	return &item, nil
}

// ListAll returns every item, sorted by priority (high > normal > low) then
// by ID ascending, matching the teacher's ListTasks ordering.
func (b *Board) ListAll() ([]*BoardItem, error) {
	dir := boardDir(b.teamName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var items []*BoardItem
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		var item BoardItem
		if err := readJSON(dir+"/"+e.Name(), &item); err != nil {
			continue
		}
		items = append(items, &item)
	}

	sort.Slice(items, func(i, j int) bool {
		pi, pj := priorityRank(items[i].Priority), priorityRank(items[j].Priority)
		if pi != pj {
			return pi < pj
		}
		return boardIDLess(items[i].ID, items[j].ID)
	})
	return items, nil
}

func priorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

func boardIDLess(a, b string) bool {
	var ai, bi int
	_, aerr := fmt.Sscanf(a, "%d", &ai)
	_, berr := fmt.Sscanf(b, "%d", &bi)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}

// UpdateOptions carries the optional fields update(...) may change; a nil
// pointer field means "leave unchanged".
type UpdateOptions struct {
	Status          *BoardStatus
	Owner           *string
	AddBlockedBy    []string
	RemoveBlockedBy []string
	AddDepends      []string
	RemoveDepends   []string
}

// Update mutates item id under a directory-wide lock, and performs the
// cascading unblock when a transition to completed occurs: every other
// item has id removed from its blocked_by.
func (b *Board) Update(id string, opts UpdateOptions) (*BoardItem, error) {
	if err := ensureDir(boardDir(b.teamName)); err != nil {
		return nil, err
	}

	fl := NewFileLock(boardLockPath(b.teamName))
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("lock board: %w", err)
	}
	defer fl.Unlock()

	item, err := b.Get(id)
	if err != nil {
		return nil, err
	}

	if opts.Owner != nil {
		item.Owner = *opts.Owner
	}
	if opts.Status != nil {
		if *opts.Status == BoardInProgress && item.Owner == "" {
			return nil, fmt.Errorf("cannot set board item %q in_progress: no owner assigned", id)
		}
		item.Status = *opts.Status
	}
	item.BlockedBy = applySet(item.BlockedBy, opts.AddBlockedBy, opts.RemoveBlockedBy)
	item.DependsOn = applySet(item.DependsOn, opts.AddDepends, opts.RemoveDepends)
	item.UpdatedAt = time.Now()

	if err := writeJSON(boardItemPath(b.teamName, id), item); err != nil {
		return nil, fmt.Errorf("write board item: %w", err)
	}

	if opts.Status != nil && *opts.Status == BoardCompleted {
		if err := b.unblockOthers(id); err != nil {
			return nil, err
		}
	}

	return item, nil
}

// unblockOthers removes completedID from every other item's blocked_by.
func (b *Board) unblockOthers(completedID string) error {
	items, err := b.ListAll()
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.ID == completedID {
			continue
		}
		filtered := applySet(it.BlockedBy, nil, []string{completedID})
		if len(filtered) == len(it.BlockedBy) {
			continue
		}
		it.BlockedBy = filtered
		it.UpdatedAt = time.Now()
		if err := writeJSON(boardItemPath(b.teamName, it.ID), it); err != nil {
			return fmt.Errorf("unblock %q: %w", it.ID, err)
		}
	}
	return nil
}

func applySet(base, add, remove []string) []string {
	set := make(map[string]struct{}, len(base))
	var order []string
	for _, v := range base {
		if _, ok := set[v]; !ok {
			set[v] = struct{}{}
			order = append(order, v)
		}
	}
	for _, v := range add {
		if _, ok := set[v]; !ok {
			set[v] = struct{}{}
			order = append(order, v)
		}
	}
	for _, v := range remove {
		delete(set, v)
	}
	out := order[:0]
	for _, v := range order {
		if _, ok := set[v]; ok {
			out = append(out, v)
		}
	}
	return out
}

// Unclaimed returns items that are pending, unowned, and unblocked, sorted
// the same way ListAll is — used by the idle loop (C9) to pick the lowest
// eligible ID.
func (b *Board) Unclaimed() ([]*BoardItem, error) {
	items, err := b.ListAll()
	if err != nil {
		return nil, err
	}
	var out []*BoardItem
	for _, it := range items {
		if it.Status == BoardPending && it.Owner == "" && len(it.BlockedBy) == 0 {
			out = append(out, it)
		}
	}
	return out, nil
}
