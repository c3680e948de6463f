// Package integration drives the todo binary and the public todos package
// end to end.
package integration

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// todoBin is the path to the built todo binary.
	todoBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetTodoBin sets the path to the todo binary (called from TestMain).
func SetTodoBin(path string) {
	todoBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated environment with its own config and data directory.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
}

// NewTestEnv creates an isolated environment whose config.yaml selects backend.
func NewTestEnv(t *testing.T, backend string) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build todo: %v", buildErr)
	}
	if todoBin == "" {
		t.Fatal("todo binary not built (todoBin is empty)")
	}

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "backend: " + backend + "\ndata_dir: " + dataDir + "\nlog_level: info\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  configDir,
		DataDir: dataDir,
	}
}

// CmdResult holds the result of a todo command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunTodo executes the todo CLI with the given arguments.
func (e *TestEnv) RunTodo(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config}, args...)
	cmd := exec.Command(todoBin, allArgs...)
	cmd.Env = append(os.Environ(), "TODOS_BACKEND=", "TODOS_LOG_LEVEL=", "TODOS_DATA_DIR=")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			e.t.Fatalf("failed to run todo: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunTodo executes the todo CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRunTodo(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunTodo(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("todo %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// Todo mirrors the caller form of a record.
type Todo struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	DueAt float64 `json:"dueAt"`
	Done  bool    `json:"done"`
}

// ListResult is the --json output of list, delete, and clear.
type ListResult struct {
	Todos      []Todo `json:"todos"`
	Eliminated string `json:"eliminated,omitempty"`
}

// UpsertResult is the --json output of upsert.
type UpsertResult struct {
	ID     int64  `json:"id"`
	Todos  []Todo `json:"todos"`
	Upsert string `json:"upsert"`
}

// IDs returns the ids of todos in order.
func IDs(todos []Todo) []int64 {
	ids := make([]int64, 0, len(todos))
	for _, t := range todos {
		ids = append(ids, t.ID)
	}
	return ids
}
