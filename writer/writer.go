// Package writer writes generated files into an output directory.
//
// Writing happens in two steps. Plan compares each generated file with what
// is on disk and classifies it; Commit writes every file that differs. Each
// file is replaced atomically, and a failed Commit restores the files it had
// already written:
//
//	changes, err := writer.Plan("gen", files)
//	if err != nil {
//		return err
//	}
//	if err := writer.Commit(changes); err != nil {
//		return err
//	}
//
// Stale lists the files a Commit would touch, which is how a verify run
// detects generated code that is out of date.
package writer

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/randalmurphal/codegen"
)

// FileMode is the permission of newly created files.
const FileMode os.FileMode = 0o644

// DirMode is the permission of newly created directories.
const DirMode os.FileMode = 0o755

// Sentinel errors for writing generated files.
var (
	// ErrUnsafePath indicates a file name that is absolute or escapes the
	// output directory.
	ErrUnsafePath = errors.New("unsafe output path")

	// ErrNotFile indicates an output path occupied by something other than a
	// regular file.
	ErrNotFile = errors.New("output path is not a regular file")
)

// Action classifies a planned change.
type Action int

const (
	// Create writes a file that does not exist yet.
	Create Action = iota

	// Update replaces a file whose content differs.
	Update

	// Unchanged leaves a file whose content already matches.
	Unchanged
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case Create:
		return "create"
	case Update:
		return "update"
	case Unchanged:
		return "unchanged"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Change is one planned file write.
type Change struct {
	// Name is the generated file name.
	Name string

	// Path is the resolved path under the output directory.
	Path string

	Action  Action
	Content []byte

	// Previous is the content on disk when the change was planned.
	// Nil for Create.
	Previous []byte
}

// Plan resolves files under dir and compares them with the files on disk.
// Changes are returned in the order of files.
func Plan(dir string, files []codegen.OutputFile) ([]Change, error) {
	changes := make([]Change, 0, len(files))
	for _, f := range files {
		path, err := resolve(dir, f.Name)
		if err != nil {
			return nil, err
		}

		change := Change{Name: f.Name, Path: path, Content: []byte(f.Text)}

		info, err := os.Stat(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			change.Action = Create
		case err != nil:
			return nil, fmt.Errorf("stat %s: %w", path, err)
		case !info.Mode().IsRegular():
			return nil, fmt.Errorf("%w: %s", ErrNotFile, path)
		default:
			previous, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			change.Previous = previous
			change.Action = Update
			if bytes.Equal(previous, change.Content) {
				change.Action = Unchanged
			}
		}

		changes = append(changes, change)
	}
	return changes, nil
}

// Stale returns the changes that a Commit would write.
func Stale(changes []Change) []Change {
	var stale []Change
	for _, c := range changes {
		if c.Action != Unchanged {
			stale = append(stale, c)
		}
	}
	return stale
}

// Commit writes every Create and Update change. If any write fails, files
// already written are restored to their previous content, created files are
// removed, and the error is returned.
func Commit(changes []Change) error {
	var (
		written []Change
		dirs    []string
	)

	for _, c := range changes {
		if c.Action == Unchanged {
			continue
		}

		created, err := mkdirAll(filepath.Dir(c.Path))
		dirs = append(dirs, created...)
		if err != nil {
			rollback(written, dirs)
			return fmt.Errorf("create directory for %s: %w", c.Name, err)
		}

		if err := atomic.WriteFile(c.Path, bytes.NewReader(c.Content)); err != nil {
			rollback(written, dirs)
			return fmt.Errorf("write %s: %w", c.Name, err)
		}
		written = append(written, c)

		if c.Action == Create {
			if err := os.Chmod(c.Path, FileMode); err != nil {
				rollback(written, dirs)
				return fmt.Errorf("chmod %s: %w", c.Name, err)
			}
		}

		slog.Debug("wrote generated file", "name", c.Name, "action", c.Action.String(), "bytes", len(c.Content))
	}
	return nil
}

// rollback undoes written changes in reverse order, then removes the
// directories Commit created. Failures are logged and otherwise ignored.
func rollback(written []Change, dirs []string) {
	for i := len(written) - 1; i >= 0; i-- {
		c := written[i]
		var err error
		if c.Action == Create {
			err = os.Remove(c.Path)
		} else {
			err = atomic.WriteFile(c.Path, bytes.NewReader(c.Previous))
		}
		if err != nil {
			slog.Warn("rollback failed", "path", c.Path, "error", err)
		}
	}
	for i := len(dirs) - 1; i >= 0; i-- {
		if err := os.Remove(dirs[i]); err != nil {
			slog.Warn("rollback failed", "path", dirs[i], "error", err)
		}
	}
}

// mkdirAll creates dir and its missing parents, returning the directories
// it created from the outermost in.
func mkdirAll(dir string) ([]string, error) {
	var missing []string
	for d := dir; ; d = filepath.Dir(d) {
		if _, err := os.Stat(d); err == nil {
			break
		}
		missing = append(missing, d)
		if filepath.Dir(d) == d {
			break
		}
	}

	var created []string
	for i := len(missing) - 1; i >= 0; i-- {
		err := os.Mkdir(missing[i], DirMode)
		switch {
		case err == nil:
			created = append(created, missing[i])
		case !errors.Is(err, os.ErrExist):
			return created, err
		}
	}
	return created, nil
}

// resolve joins name to dir, rejecting names that leave dir.
func resolve(dir, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: empty name", ErrUnsafePath)
	}
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return filepath.Join(dir, local), nil
}
