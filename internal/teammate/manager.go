package teammate

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Manager is the Teammate Manager (C8): the team registry, message
// routing, broadcast fan-out, spawn/shutdown, and cross-team lookup.
type Manager struct {
	mu    sync.RWMutex
	teams map[string]map[string]*Record // team name -> member name -> record
	order []string                       // team registration order, for _find_teammate's cross-team scan

	logger *log.Logger

	// spawnFn is run in a detached goroutine for a freshly spawned
	// teammate. NewManager installs a no-op; an idle loop (C9) runs only
	// when SetSpawnFunc installs a function that starts one.
	spawnFn func(rec *Record)
}

// NewManager returns a Manager with the default (no-op) spawn behavior,
// with its in-memory registry rehydrated from whatever teams/members
// already exist on disk. This lets a fresh Manager constructed by a new
// CLI process see teams and teammates a prior process created, the same
// way the Task Board re-reads from disk on every call.
func NewManager() *Manager {
	m := &Manager{
		teams:   make(map[string]map[string]*Record),
		logger:  log.New(os.Stderr, "[teammate] ", log.LstdFlags),
		spawnFn: func(*Record) {},
	}
	m.loadFromDisk()
	return m
}

// loadFromDisk scans the teams base directory for team config files and
// each team's members directory for member records, repopulating teams
// and order. Missing or unreadable entries are skipped rather than
// treated as fatal: a brand new install has no teams directory at all.
func (m *Manager) loadFromDisk() {
	base := teamsBaseDirFunc()
	entries, err := os.ReadDir(base)
	if err != nil {
		return
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		var cfg Team
		if err := readJSON(teamConfigPath(name), &cfg); err != nil {
			continue
		}

		members := make(map[string]*Record)
		if memberEntries, err := os.ReadDir(membersDir(name)); err == nil {
			for _, me := range memberEntries {
				if me.IsDir() {
					continue
				}
				memberName := strings.TrimSuffix(me.Name(), ".json")
				var rec Record
				if err := readJSON(memberRecordPath(name, memberName), &rec); err != nil {
					continue
				}
				members[memberName] = &rec
			}
		}

		m.teams[name] = members
		m.order = append(m.order, name)
	}
}

// SetSpawnFunc overrides how spawn_teammate launches a teammate's idle loop.
func (m *Manager) SetSpawnFunc(fn func(rec *Record)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spawnFn = fn
}

// CreateTeam registers team `name`. Idempotent: creating an existing team
// reports "already exists" rather than failing.
func (m *Manager) CreateTeam(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.teams[name]; ok {
		return "already exists", nil
	}

	if err := ensureDir(teamDir(name)); err != nil {
		return "", fmt.Errorf("create team dir: %w", err)
	}
	cfg := &Team{Name: name, CreatedAt: time.Now()}
	if err := writeJSON(teamConfigPath(name), cfg); err != nil {
		return "", fmt.Errorf("write team config: %w", err)
	}

	m.teams[name] = make(map[string]*Record)
	m.order = append(m.order, name)
	return "created", nil
}

// DeleteTeam injects a shutdown_request into every member's inbox, flips
// every member's status to shutdown, then removes the team's config and
// board/member records — but not the inbox files themselves. spec.md §3
// reserves inbox truncation/deletion for the recipient draining it, never
// the manager; a deleted team's inboxes persist on disk, still carrying
// their shutdown_request, until each teammate's own idle loop drains them.
func (m *Manager) DeleteTeam(name string) (string, error) {
	m.mu.Lock()
	members, ok := m.teams[name]
	if !ok {
		m.mu.Unlock()
		return "", fmt.Errorf("team %q not found", name)
	}

	recs := make([]*Record, 0, len(members))
	for _, r := range members {
		recs = append(recs, r)
	}
	delete(m.teams, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	for _, rec := range recs {
		ib := NewInbox(rec.TeamName, rec.Name)
		if err := ib.Append(InboxMessage{Type: MsgShutdownRequest, Content: "team deleted"}); err != nil {
			m.logger.Printf("shutdown_request to %s: %v", rec.Name, err)
		}
		rec.SetStatus(StatusShutdown)
	}

	os.Remove(teamConfigPath(name))
	os.RemoveAll(membersDir(name))
	os.RemoveAll(boardDir(name))
	return "deleted", nil
}

// SendMessage implements §4.5's send_message. When msgType is broadcast and
// recipient is empty, the message is appended to every member of teamName
// except sender (an empty sender disables the exclusion). Otherwise the
// target is resolved via findTeammate and the message appended to its
// inbox.
func (m *Manager) SendMessage(recipient, content string, msgType MessageType, sender, teamName string) (string, error) {
	if msgType == MsgBroadcast && recipient == "" {
		return m.broadcast(teamName, sender, content)
	}

	rec, ok := m.findTeammate(recipient, teamName)
	if !ok {
		return "", fmt.Errorf("teammate %q not found", recipient)
	}

	ib := NewInbox(rec.TeamName, rec.Name)
	if err := ib.Append(InboxMessage{Type: msgType, Content: content, Sender: sender}); err != nil {
		return "", fmt.Errorf("append message: %w", err)
	}
	return "sent", nil
}

func (m *Manager) broadcast(teamName, sender, content string) (string, error) {
	m.mu.RLock()
	members, ok := m.teams[teamName]
	if !ok {
		m.mu.RUnlock()
		return "", fmt.Errorf("team %q not found", teamName)
	}
	recs := make([]*Record, 0, len(members))
	for _, r := range members {
		if sender != "" && r.Name == sender {
			continue
		}
		recs = append(recs, r)
	}
	m.mu.RUnlock()

	for _, rec := range recs {
		ib := NewInbox(rec.TeamName, rec.Name)
		if err := ib.Append(InboxMessage{Type: MsgBroadcast, Content: content, Sender: sender}); err != nil {
			return "", fmt.Errorf("broadcast to %s: %w", rec.Name, err)
		}
	}
	return "broadcast", nil
}

// CheckInbox returns every pending message for name in write order, then
// truncates the inbox (drain-on-read).
func (m *Manager) CheckInbox(name, teamName string) ([]InboxMessage, error) {
	rec, ok := m.findTeammate(name, teamName)
	if !ok {
		return nil, fmt.Errorf("teammate %q not found", name)
	}
	ib := NewInbox(rec.TeamName, rec.Name)
	return ib.Drain()
}

// SpawnTeammate creates a C6 record under teamName, assigns it a fresh
// inbox, runs spawnFn for it in a detached goroutine, and returns the
// record descriptor. With the default no-op spawnFn no idle loop is
// started, and prompt is not stored or used.
func (m *Manager) SpawnTeammate(name, teamName, prompt string) (*Record, error) {
	m.mu.Lock()
	members, ok := m.teams[teamName]
	if !ok {
		m.mu.Unlock()
		return nil, fmt.Errorf("team %q not found", teamName)
	}
	if _, exists := members[name]; exists {
		m.mu.Unlock()
		return nil, fmt.Errorf("teammate %q already exists in team %q", name, teamName)
	}

	now := time.Now()
	rec := &Record{
		Name:      name,
		TeamName:  teamName,
		InboxPath: inboxPath(teamName, name),
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	members[name] = rec
	spawnFn := m.spawnFn
	m.mu.Unlock()

	if err := writeJSON(memberRecordPath(teamName, name), rec); err != nil {
		return nil, fmt.Errorf("write member record: %w", err)
	}
	if err := ensureDir(teamDir(teamName)); err != nil {
		return nil, err
	}

	go spawnFn(rec)

	_ = prompt // not stored on the record or passed to spawnFn
	return rec, nil
}

// GetTeamStatus returns a human-readable summary of teamName's members.
func (m *Manager) GetTeamStatus(teamName string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	members, ok := m.teams[teamName]
	if !ok {
		return "", fmt.Errorf("team %q not found", teamName)
	}

	if len(members) == 0 {
		return fmt.Sprintf("team %q has no members", teamName), nil
	}

	summary := fmt.Sprintf("team %q members:", teamName)
	for _, rec := range members {
		summary += fmt.Sprintf(" %s(%s)", rec.Name, rec.GetStatus())
	}
	return summary, nil
}

// findTeammate implements §4.5.a: scoped lookup when teamName is given,
// else a registration-order scan across every team. Returning false is not
// an error — callers decide how to react.
func (m *Manager) findTeammate(name, teamName string) (*Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if teamName != "" {
		members, ok := m.teams[teamName]
		if !ok {
			return nil, false
		}
		rec, ok := members[name]
		return rec, ok
	}

	for _, tn := range m.order {
		if rec, ok := m.teams[tn][name]; ok {
			return rec, true
		}
	}
	return nil, false
}
