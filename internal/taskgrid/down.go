package taskgrid

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"
)

type DownOptions struct {
	Force bool
}

type DownResult struct {
	WasRunning bool
	PID        int
}

// Down stops a background dashboard server, escalating to SIGKILL when the
// process ignores SIGTERM.
func Down(ctx context.Context, root string, opt DownOptions) (*DownResult, error) {
	_ = ctx

	st, err := readServerState(root)
	if err != nil {
		if os.IsNotExist(err) {
			return &DownResult{WasRunning: false}, nil
		}
		return nil, err
	}
	if st.PID == 0 || !pidAlive(st.PID) {
		_ = clearServerState(root)
		return &DownResult{WasRunning: false}, nil
	}

	sig := syscall.SIGTERM
	if opt.Force {
		sig = syscall.SIGKILL
	}
	if err := syscall.Kill(st.PID, sig); err != nil {
		if err == syscall.ESRCH {
			_ = clearServerState(root)
			return &DownResult{WasRunning: true, PID: st.PID}, nil
		}
		return nil, fmt.Errorf("kill %d: %w", st.PID, err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if !pidAlive(st.PID) {
			_ = clearServerState(root)
			return &DownResult{WasRunning: true, PID: st.PID}, nil
		}
		time.Sleep(50 * time.Millisecond)
	}

	if !opt.Force {
		_ = syscall.Kill(st.PID, syscall.SIGKILL)
		time.Sleep(100 * time.Millisecond)
	}
	_ = clearServerState(root)
	return &DownResult{WasRunning: true, PID: st.PID}, nil
}
