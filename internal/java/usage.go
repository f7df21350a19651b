package java

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessInfo is a running java process
type ProcessInfo struct {
	PID     int32
	Command string // path of the executable
	CmdLine string
}

// ListJavaProcesses returns the running java processes other than this one.
// Processes started through a symlinked launcher are left out.
func ListJavaProcesses(ctx context.Context) ([]ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	self := int32(os.Getpid())
	javaFile := JavaFileName()
	result := make([]ProcessInfo, 0)
	for _, p := range procs {
		if p.Pid == self {
			continue
		}
		exe, err := p.ExeWithContext(ctx)
		if err != nil || !strings.HasSuffix(exe, javaFile) {
			continue
		}
		if info, err := os.Lstat(exe); err == nil && info.Mode()&os.ModeSymlink != 0 {
			continue
		}
		cmdline, err := p.CmdlineWithContext(ctx)
		if err != nil || cmdline == "" {
			cmdline = "unknown"
		}
		result = append(result, ProcessInfo{PID: p.Pid, Command: exe, CmdLine: cmdline})
	}
	return result, nil
}

// MarkUsage returns copies of installations with InUse and UsedBy filled.
// An installation is in use when its location is javaHome or lies below it,
// or when its executable path contains the command of a running process.
func MarkUsage(installations []Installation, procs []ProcessInfo, javaHome string) []Installation {
	home := resolveHome(javaHome)
	out := make([]Installation, 0, len(installations))
	for _, inst := range installations {
		inUse := home != "" && withinDir(inst.Location, home)
		var usedBy []string
		for _, p := range procs {
			if p.Command != "" && strings.Contains(inst.Executable, p.Command) {
				inUse = true
				usedBy = append(usedBy, p.CmdLine)
			}
		}
		out = append(out, inst.withUsage(inUse, usedBy))
	}
	return out
}

// resolveHome cleans javaHome and resolves symlinks so it compares against
// walked locations, which are resolved too
func resolveHome(javaHome string) string {
	if strings.TrimSpace(javaHome) == "" {
		return ""
	}
	home := filepath.Clean(javaHome)
	if resolved, err := filepath.EvalSymlinks(home); err == nil {
		home = resolved
	}
	return home
}

// withinDir reports whether path is dir or a descendant of it
func withinDir(path, dir string) bool {
	path = filepath.Clean(path)
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator))
}
