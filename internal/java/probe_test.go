package java

import (
	"path/filepath"
	"testing"
)

func TestHasBundledFX(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
		want  bool
	}{
		{"none", []string{"bin/java"}, false},
		{"legacy jar", []string{"jre/lib/ext/jfxrt.jar"}, true},
		{"legacy jar upper case", []string{"jre/lib/ext/JFXRT.JAR"}, true},
		{"jmods", []string{"jmods/java.base.jmod", "jmods/javafx.controls.jmod"}, true},
		{"jmods without fx", []string{"jmods/java.base.jmod"}, false},
		{"legacy jar and plain jmods", []string{"jre/lib/ext/jfxrt.jar", "jmods/java.base.jmod"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := t.TempDir()
			for _, f := range tt.files {
				writeFile(t, filepath.Join(root, filepath.FromSlash(f)), "")
			}
			if got := HasBundledFX(root); got != tt.want {
				t.Errorf("HasBundledFX() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadSupplementalNotes(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if _, ok := ReadSupplementalNotes(root); ok {
		t.Error("missing readme reported as present")
	}

	writeFile(t, filepath.Join(root, ReadmeFile), "Liberica Native Image Kit\nversion 22.3\n")
	lines, ok := ReadSupplementalNotes(root)
	if !ok || len(lines) != 2 || lines[0] != "Liberica Native Image Kit" {
		t.Errorf("ReadSupplementalNotes() = %v, %v", lines, ok)
	}
}

func TestReadRelease(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if got := ReadRelease(root); len(got) != 0 {
		t.Errorf("ReadRelease() without file = %v, want empty", got)
	}

	writeFile(t, filepath.Join(root, ReleaseFile), `IMPLEMENTOR="Azul Systems, Inc."
IMPLEMENTOR_VERSION="Zulu21.30+19-CA"
JAVA_VERSION="21.0.1"
OS_ARCH="aarch64"
OS_NAME="Darwin"
MODULES="java.base java.logging javafx.base"
SOURCE=".:git:1b2b6a5b8b6b"
this line is not a property
`)
	got := ReadRelease(root)
	want := map[string]string{
		KeyImplementor:        "Azul Systems, Inc.",
		KeyImplementorVersion: "Zulu21.30+19-CA",
		KeyJavaVersion:        "21.0.1",
		KeyOSArch:             "aarch64",
		KeyOSName:             "Darwin",
		KeyModules:            "java.base java.logging javafx.base",
	}
	if len(got) != len(want) {
		t.Errorf("ReadRelease() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ReadRelease()[%s] = %q, want %q", k, got[k], v)
		}
	}

	got[KeyImplementor] = "changed"
	if ReadRelease(root)[KeyImplementor] != "Azul Systems, Inc." {
		t.Error("ReadRelease must return a fresh map on every call")
	}
}

func TestReadReleaseEmptyFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ReleaseFile), "")
	if got := ReadRelease(root); len(got) != 0 {
		t.Errorf("ReadRelease() = %v, want empty", got)
	}
}
