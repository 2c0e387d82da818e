package probe

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
)

// FakeRunner is an in-memory Runner for tests. It resolves binaries from
// Binaries, commands from Commands (keyed by command name plus arguments),
// and files from Files. Lookups that have no entry behave like an absent
// tool or missing file.
type FakeRunner struct {
	// Binaries maps binary names to their fake resolved paths.
	Binaries map[string]string

	// Commands maps "command arg1 arg2" strings to canned responses.
	Commands map[string]FakeResponse

	// Files maps paths to file contents.
	Files map[string]string

	// Calls records every command line executed, in order.
	Calls []string
}

// FakeResponse is a canned command outcome.
type FakeResponse struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Run implements Runner using the canned Commands table.
func (f *FakeRunner) Run(_ context.Context, cfg Config) (*Result, error) {
	key := strings.TrimSpace(cfg.Command + " " + strings.Join(cfg.Args, " "))
	f.Calls = append(f.Calls, key)

	resp, ok := f.Commands[key]
	if !ok {
		return &Result{}, fmt.Errorf("%s: %w", cfg.Command, ErrToolAbsent)
	}
	if resp.Err != nil {
		return &Result{}, resp.Err
	}
	return &Result{
		Stdout:   []byte(resp.Stdout),
		Stderr:   []byte(resp.Stderr),
		ExitCode: resp.ExitCode,
	}, nil
}

// LookPath implements Runner using the Binaries table.
func (f *FakeRunner) LookPath(name string) (string, error) {
	if p, ok := f.Binaries[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%s: %w", name, ErrToolAbsent)
}

// ReadFile implements Runner using the Files table.
func (f *FakeRunner) ReadFile(p string) ([]byte, error) {
	if content, ok := f.Files[p]; ok {
		return []byte(content), nil
	}
	return nil, fmt.Errorf("open %s: no such file or directory", p)
}

// FileExists implements Runner using the Files table.
func (f *FakeRunner) FileExists(p string) bool {
	_, ok := f.Files[p]
	return ok
}

// Glob implements Runner by matching the pattern against Files keys.
func (f *FakeRunner) Glob(pattern string) ([]string, error) {
	var matches []string
	for p := range f.Files {
		ok, err := path.Match(pattern, p)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, p)
		}
	}
	sort.Strings(matches)
	return matches, nil
}
