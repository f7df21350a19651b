package java

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"jfind/internal/distro"
)

const temurinBanner = "openjdk version \"21.0.1\" 2023-10-17|" +
	"OpenJDK Runtime Environment Temurin-21.0.1+12 (build 21.0.1+12-LTS)|" +
	"OpenJDK 64-Bit Server VM Temurin-21.0.1+12 (build 21.0.1+12-LTS, mixed mode, sharing)"

const correttoBanner = "openjdk version \"17.0.9\" 2023-10-17 LTS|" +
	"OpenJDK Runtime Environment Corretto-17.0.9.8.1 (build 17.0.9+8-LTS)"

// fakeRunner answers version queries from a table keyed by the install
// directory name. Paths containing "slow" block until the context ends.
type fakeRunner struct {
	mu      sync.Mutex
	outputs map[string]string
	calls   []string
}

func (f *fakeRunner) Run(ctx context.Context, executable string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, executable)
	f.mu.Unlock()

	if strings.Contains(executable, "slow") {
		<-ctx.Done()
		return "", ctx.Err()
	}
	name := filepath.Base(InstallRoot(executable))
	out, ok := f.outputs[name]
	if !ok {
		return "", errors.New("exit status 1")
	}
	return out, nil
}

func newTestDetector(runner Runner, opts ...Option) *Detector {
	base := []Option{
		WithRunner(runner),
		WithSysInfo(testHost),
		WithJavaFile("java"),
		WithExecCheck(func(path string) bool { return !strings.Contains(path, "noexec") }),
	}
	return NewDetector(append(base, opts...)...)
}

// tempDir resolves symlinks so walked paths compare equal on macOS
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func makeInstall(t *testing.T, base, name string) string {
	t.Helper()
	return writeFile(t, filepath.Join(base, name, "bin", "java"), "#!/bin/sh\n")
}

func TestFindExecutables(t *testing.T) {
	t.Parallel()

	base := tempDir(t)
	a := makeInstall(t, base, "jdk-a")
	b := writeFile(t, filepath.Join(base, "jdk-b", "jre", "bin", "java"), "")
	writeFile(t, filepath.Join(base, "jdk-a", "bin", "javac"), "")
	if err := os.MkdirAll(filepath.Join(base, "java"), 0o755); err != nil {
		t.Fatal(err)
	}
	linked := filepath.Join(base, "jdk-link", "bin")
	if err := os.MkdirAll(linked, 0o755); err != nil {
		t.Fatal(err)
	}
	symlinked := os.Symlink(a, filepath.Join(linked, "java")) == nil

	var found []string
	err := FindExecutables(context.Background(), base, "java", func(path string) error {
		found = append(found, path)
		return nil
	})
	if err != nil {
		t.Fatalf("FindExecutables() error = %v", err)
	}

	want := map[string]bool{a: true, b: true}
	if len(found) != len(want) {
		t.Fatalf("found %v, want %d launchers (symlink created: %v)", found, len(want), symlinked)
	}
	for _, f := range found {
		if !want[f] {
			t.Errorf("unexpected launcher %s", f)
		}
	}
}

func TestFindExecutablesMissingRoot(t *testing.T) {
	t.Parallel()

	err := FindExecutables(context.Background(), filepath.Join(tempDir(t), "missing"), "java", func(string) error { return nil })
	if err == nil {
		t.Error("expected an error for a missing root")
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	base := tempDir(t)
	makeInstall(t, base, "temurin-21")
	makeInstall(t, base, "corretto-17")
	makeInstall(t, base, "noexec-jdk")
	makeInstall(t, base, "broken-jdk")

	runner := &fakeRunner{outputs: map[string]string{
		"temurin-21":  temurinBanner,
		"corretto-17": correttoBanner,
		"noexec-jdk":  temurinBanner,
	}}
	d := newTestDetector(runner, WithWorkers(2))

	// the nested root overlaps the first one
	got, err := d.Discover(context.Background(), []string{base, filepath.Join(base, "temurin-21")})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Discover() returned %d installations, want 2: %+v", len(got), got)
	}

	if got[0].Distribution != distro.Corretto || got[1].Distribution != distro.Temurin {
		t.Errorf("got %v and %v, want Corretto then Temurin", got[0].Distribution, got[1].Distribution)
	}

	for _, call := range runner.calls {
		if strings.Contains(call, "noexec") {
			t.Error("non-executable candidate must not be run")
		}
	}
}

func TestDiscoverTimeoutReturnsPartial(t *testing.T) {
	t.Parallel()

	base := tempDir(t)
	makeInstall(t, base, "a-temurin")
	makeInstall(t, base, "z-slow")

	runner := &fakeRunner{outputs: map[string]string{"a-temurin": temurinBanner}}
	d := newTestDetector(runner, WithTimeout(200*time.Millisecond))

	start := time.Now()
	got, err := d.Discover(context.Background(), []string{base})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Discover() did not honor its timeout")
	}
	if len(got) != 1 || got[0].Distribution != distro.Temurin {
		t.Errorf("Discover() = %+v, want the completed Temurin only", got)
	}
}

func TestDiscoverCancelled(t *testing.T) {
	t.Parallel()

	base := tempDir(t)
	makeInstall(t, base, "slow-jdk")

	ctx, cancel := context.WithCancel(context.Background())
	d := newTestDetector(&fakeRunner{}, WithTimeout(time.Minute))
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	got, err := d.Discover(ctx, []string{base})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Discover() error = %v, want context.Canceled", err)
	}
	if len(got) != 0 {
		t.Errorf("Discover() = %+v, want nothing", got)
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()

	base := tempDir(t)
	makeInstall(t, base, "corretto-17")
	d := newTestDetector(&fakeRunner{outputs: map[string]string{"corretto-17": correttoBanner}})

	got, err := d.Inspect(context.Background(), filepath.Join(base, "corretto-17"))
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if got.Distribution != distro.Corretto {
		t.Errorf("Distribution = %v, want Corretto", got.Distribution)
	}

	if _, err := d.Inspect(context.Background(), filepath.Join(base, "noexec")); !errors.Is(err, ErrNotExecutable) {
		t.Errorf("Inspect() error = %v, want ErrNotExecutable", err)
	}
}

func TestJoinLines(t *testing.T) {
	t.Parallel()

	got := JoinLines("line one\r\nline two\nline three\n")
	if got != "line one|line two|line three" {
		t.Errorf("JoinLines() = %q", got)
	}
}
