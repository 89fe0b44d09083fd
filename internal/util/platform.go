package util

import "runtime"

// HostOS returns the lowercase name of the running operating system as used in
// build directory names (linux, darwin, windows).
func HostOS() string {
	return runtime.GOOS
}

// HostMachine returns MachineName for the running host.
func HostMachine() string {
	return MachineName(runtime.GOOS, runtime.GOARCH)
}

// MachineName converts a Go architecture into the machine name the native
// build uses for its output directories: x64 on Windows, x86_64 elsewhere.
func MachineName(goos, goarch string) string {
	switch goarch {
	case "amd64":
		if goos == "windows" {
			return "x64"
		}
		return "x86_64"
	case "arm64":
		switch goos {
		case "windows":
			return "ARM64"
		case "linux":
			return "aarch64"
		}
		return "arm64"
	case "386":
		if goos == "windows" {
			return "x86"
		}
		return "i686"
	}
	return goarch
}

// ExeSuffix returns the executable file suffix for goos.
func ExeSuffix(goos string) string {
	if goos == "windows" {
		return ".exe"
	}
	return ""
}

// LibraryPathVar returns the environment variable the dynamic loader searches
// for shared libraries on goos.
func LibraryPathVar(goos string) string {
	switch goos {
	case "windows":
		return "PATH"
	case "darwin":
		return "DYLD_LIBRARY_PATH"
	}
	return "LD_LIBRARY_PATH"
}
