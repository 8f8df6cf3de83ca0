package taskgrid

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"syscall"
	"time"
)

type SpawnOptions struct {
	PortOverride int
}

// SpawnBackgroundServer re-executes the binary as a detached `up
// --foreground` process and waits for it to publish its server state.
func SpawnBackgroundServer(ctx context.Context, root string, opt SpawnOptions) (pid int, addr string, err error) {
	_ = ctx

	if st, err := readServerState(root); err == nil && pidAlive(st.PID) {
		return st.PID, st.Addr, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return 0, "", err
	}

	args := []string{"up", "--foreground"}
	if opt.PortOverride != 0 {
		args = append(args, "--port", strconv.Itoa(opt.PortOverride))
	}

	cmd := exec.Command(exe, args...)
	cmd.Dir = root
	cmd.Env = os.Environ()

	logPath := filepath.Join(taskgridDir(root), "server.log")
	_ = ensureDir(filepath.Dir(logPath))
	if f, ferr := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); ferr == nil {
		cmd.Stdout = f
		cmd.Stderr = f
		// Child owns f after Start().
	}
	cmd.Stdin = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return 0, "", err
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		st, err := readServerState(root)
		if err == nil && st.PID != 0 && st.Addr != "" && pidAlive(st.PID) {
			return st.PID, st.Addr, nil
		}
		if !pidAlive(cmd.Process.Pid) {
			return cmd.Process.Pid, "", fmt.Errorf("server exited; see %s", logPath)
		}
		time.Sleep(50 * time.Millisecond)
	}

	return cmd.Process.Pid, "", fmt.Errorf("server did not start (no state file written); see %s", logPath)
}
