package java

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"jfind/internal/env"
)

// ErrNotExecutable is returned for candidates the current user cannot run
var ErrNotExecutable = errors.New("not executable")

// Default search roots per operating system
const (
	WindowsInstallPath = `C:\Program Files\Java\`
	LinuxInstallPath   = "/usr/lib/jvm"
	MacOSInstallPath   = "/System/Volumes/Data/Library/Java/JavaVirtualMachines/"
)

const (
	DefaultTimeout = 5 * time.Second
	DefaultWorkers = 1
)

// Runner runs the version query of a java executable and returns its
// combined output with lines joined by LineSeparator
type Runner interface {
	Run(ctx context.Context, executable string) (string, error)
}

// ExecRunner runs "java -version" as a subprocess. A positive Timeout kills
// invocations that hang.
type ExecRunner struct {
	Timeout time.Duration
}

// Run implements Runner
func (r ExecRunner) Run(ctx context.Context, executable string) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, executable, "-version")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("failed to run %s -version: %w", executable, err)
	}
	return JoinLines(string(output)), nil
}

// JoinLines normalizes line endings and joins the lines of text with LineSeparator
func JoinLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	return strings.Join(strings.Split(text, "\n"), LineSeparator)
}

// Detector finds and classifies Java installations
type Detector struct {
	runner   Runner
	workers  int
	timeout  time.Duration
	host     SysInfo
	javaFile string
	canExec  func(string) bool
	logger   *log.Logger
}

// Option configures a Detector
type Option func(*Detector)

// WithRunner replaces the subprocess runner
func WithRunner(r Runner) Option { return func(d *Detector) { d.runner = r } }

// WithWorkers sets the number of classification workers
func WithWorkers(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithTimeout bounds the wait for submitted jobs after the walk completes
func WithTimeout(t time.Duration) Option {
	return func(d *Detector) {
		if t > 0 {
			d.timeout = t
		}
	}
}

// WithSysInfo sets the host platform used as classification fallback
func WithSysInfo(s SysInfo) Option { return func(d *Detector) { d.host = s } }

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option { return func(d *Detector) { d.logger = l } }

// WithExecCheck replaces the executability check run before each candidate
func WithExecCheck(fn func(string) bool) Option { return func(d *Detector) { d.canExec = fn } }

// WithJavaFile sets the launcher file name searched for
func WithJavaFile(name string) Option { return func(d *Detector) { d.javaFile = name } }

// NewDetector creates a new Java detector
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		runner:   ExecRunner{Timeout: DefaultTimeout},
		workers:  DefaultWorkers,
		timeout:  DefaultTimeout,
		javaFile: JavaFileName(),
		canExec:  env.IsExecutable,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}
	if d.host == (SysInfo{}) {
		d.host = DetectSysInfo()
	}
	return d
}

// SysInfo returns the host platform the detector classifies against
func (d *Detector) SysInfo() SysInfo { return d.host }

// DefaultSearchPath returns the conventional install root of the host, or ""
func DefaultSearchPath() string {
	switch DetectSysInfo().OperatingSystem {
	case OSWindows:
		return WindowsInstallPath
	case OSMacOS:
		return MacOSInstallPath
	case OSLinux, OSAlpineLinux:
		return LinuxInstallPath
	default:
		return ""
	}
}

// IsValidSearchPath checks if a path is a valid directory to search for Java installations
func IsValidSearchPath(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsValidJavaPath checks if a path is a Java installation root
func (d *Detector) IsValidJavaPath(path string) bool {
	info, err := os.Stat(filepath.Join(path, "bin", d.javaFile))
	return err == nil && !info.IsDir()
}

// FindExecutables walks root and calls fn for every java launcher found.
// Symlinked files and directories are skipped, unreadable directories are
// pruned.
func FindExecutables(ctx context.Context, root, javaFile string, fn func(path string) error) error {
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if entry == nil {
				return err
			}
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.Type()&fs.ModeSymlink != 0 || entry.IsDir() {
			return nil
		}
		if strings.EqualFold(entry.Name(), javaFile) {
			return fn(path)
		}
		return nil
	})
}

// Inspect classifies the installation rooted at javaHome
func (d *Detector) Inspect(ctx context.Context, javaHome string) (Installation, error) {
	inst, err := d.classify(ctx, filepath.Join(javaHome, "bin", d.javaFile))
	if err != nil {
		return Installation{}, fmt.Errorf("failed to classify %s: %w", javaHome, err)
	}
	return inst, nil
}

func (d *Detector) classify(ctx context.Context, executable string) (Installation, error) {
	if !d.canExec(executable) {
		return Installation{}, ErrNotExecutable
	}
	output, err := d.runner.Run(ctx, executable)
	if err != nil {
		return Installation{}, err
	}
	return Classify(output, executable, d.host)
}

// Discover walks every root and classifies each java launcher found. The walk
// feeds a pool of workers; once it is done the detector waits at most its
// timeout for the pool to drain and returns whatever completed. Candidates that
// cannot be run or classified are dropped. Results are deduplicated and sorted
// by location.
func (d *Detector) Discover(parent context.Context, roots []string) ([]Installation, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var (
		mu        sync.Mutex
		found     = make(map[string]Installation)
		submitted atomic.Int64
		completed atomic.Int64
	)

	jobs := make(chan string, 64)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < d.workers; i++ {
		g.Go(func() error {
			for executable := range jobs {
				if gctx.Err() != nil {
					return nil
				}
				inst, err := d.classify(gctx, executable)
				completed.Add(1)
				if err != nil {
					d.logger.Debug("skipping candidate", "path", executable, "err", err)
					continue
				}
				if inst.Conflict != "" {
					d.logger.Warn("vendor marker contradicts classification",
						"path", executable, "distribution", inst.APIName, "marker", inst.Conflict)
				}
				d.logger.Debug("classified", "path", executable, "distribution", inst.APIName, "version", inst.Version)

				mu.Lock()
				found[inst.Key()] = inst
				mu.Unlock()
			}
			return nil
		})
	}

	for _, root := range roots {
		err := FindExecutables(gctx, root, d.javaFile, func(path string) error {
			select {
			case jobs <- path:
				submitted.Add(1)
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			d.logger.Debug("walk failed", "root", root, "err", err)
		}
	}
	close(jobs)

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	timer := time.NewTimer(d.timeout)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		d.logger.Warn("timed out waiting for classification",
			"completed", completed.Load(), "submitted", submitted.Load())
		cancel()
	case <-parent.Done():
	}
	err := parent.Err()

	mu.Lock()
	result := make([]Installation, 0, len(found))
	for _, inst := range found {
		result = append(result, inst)
	}
	mu.Unlock()

	SortInstallations(result)
	return result, err
}

// SortInstallations orders installations by location then executable
func SortInstallations(list []Installation) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Location != list[j].Location {
			return list[i].Location < list[j].Location
		}
		return list[i].Executable < list[j].Executable
	})
}
