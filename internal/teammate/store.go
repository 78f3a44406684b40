package teammate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ourines/codes-coord/internal/config"
)

// teamsBaseDirFunc returns the base directory under which all teams live.
// It's a variable so tests can override it, matching the teacher's
// teamsBaseDirFunc-in-agent/store.go pattern.
var teamsBaseDirFunc = func() string {
	return config.TeamsDir()
}

func teamDir(teamName string) string {
	return filepath.Join(teamsBaseDirFunc(), teamName)
}

func teamConfigPath(teamName string) string {
	return filepath.Join(teamDir(teamName), "config.json")
}

func boardDir(teamName string) string {
	return filepath.Join(teamDir(teamName), "board")
}

func boardItemPath(teamName, id string) string {
	return filepath.Join(boardDir(teamName), id+".json")
}

func boardLockPath(teamName string) string {
	return filepath.Join(boardDir(teamName), ".lock")
}

func membersDir(teamName string) string {
	return filepath.Join(teamDir(teamName), "members")
}

func memberRecordPath(teamName, name string) string {
	return filepath.Join(membersDir(teamName), name+".json")
}

func inboxPath(teamName, name string) string {
	return filepath.Join(teamDir(teamName), name+".jsonl")
}

func inboxLockPath(teamName, name string) string {
	return filepath.Join(teamDir(teamName), name+".jsonl.lock")
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// writeJSON atomically writes v as JSON to path: write to a .tmp sibling,
// then rename, so a crash mid-write never leaves a corrupt file in place.
func writeJSON(path string, v any) error {
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// nextBoardID scans the board directory and returns the next unused
// small-integer ID, rendered as a string.
func nextBoardID(teamName string) (string, error) {
	dir := boardDir(teamName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "1", nil
		}
		return "", err
	}

	maxID := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		var id int
		if _, err := fmt.Sscanf(e.Name(), "%d.json", &id); err == nil {
			if id > maxID {
				maxID = id
			}
		}
	}
	return fmt.Sprintf("%d", maxID+1), nil
}
