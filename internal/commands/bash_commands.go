package commands

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ourines/codes-coord/internal/config"
	"github.com/ourines/codes-coord/internal/output"
)

// RunBash runs command in a shell. With background set it detaches the
// process immediately, redirecting its combined output to a file under the
// config root and printing that file's path instead of waiting on it — the
// CLI has no long-lived process to hold a background.Manager record in, so
// the filesystem is the handoff instead.
func RunBash(command string, background bool) {
	if !background {
		out, err := exec.Command("sh", "-c", command).CombinedOutput()
		if err != nil {
			output.PrintError(fmt.Errorf("%w: %s", err, out))
			return
		}
		output.Print(struct {
			Output string `json:"output"`
		}{Output: string(out)}, func() {
			fmt.Print(string(out))
		})
		return
	}

	if err := config.EnsureRootDir(); err != nil {
		output.PrintError(err)
		return
	}

	id := "b-" + uuid.New().String()[:8]
	logPath := filepath.Join(config.RootDir(), id+".log")

	f, err := os.Create(logPath)
	if err != nil {
		output.PrintError(err)
		return
	}

	cmd := exec.Command("sh", "-c", command)
	cmd.Stdout = f
	cmd.Stderr = f
	if err := cmd.Start(); err != nil {
		f.Close()
		output.PrintError(err)
		return
	}
	go func() {
		cmd.Wait()
		f.Close()
	}()

	output.Print(struct {
		TaskID string `json:"taskId"`
		Log    string `json:"log"`
	}{TaskID: id, Log: logPath}, func() {
		fmt.Printf("%s started, log: %s\n", id, logPath)
	})
}
