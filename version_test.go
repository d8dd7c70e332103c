package taglib

import (
	"runtime"
	"testing"
)

func TestGetVersionInfo(t *testing.T) {
	useFakeLibrary(t)

	info := GetVersionInfo()
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if info.Native != "nativetest" {
		t.Errorf("Native = %q, want %q", info.Native, "nativetest")
	}
	if info.GitCommit == "" {
		t.Error("GitCommit is empty")
	}
}

func TestGetVersionInfo_NoNative(t *testing.T) {
	restore := setLibrary(nil)
	defer restore()

	if got := GetVersionInfo().Native; got != "none" {
		t.Errorf("Native = %q, want %q", got, "none")
	}
}
