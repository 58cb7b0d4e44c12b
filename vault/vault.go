package vault

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Folders every vault is expected to contain. The dot folder holds
// internal state (conversation database) and is never indexed.
var Folders = []string{
	"journals",
	"topics",
	"people",
	"projects",
	"decisions",
	"ideas",
	".mycelia",
}

// Directories skipped when walking the vault.
var skipDirs = map[string]bool{
	".mycelia":     true,
	".recycle":     true,
	".trash":       true,
	".git":         true,
	"node_modules": true,
	"logseq":       true,
}

// readPoolSize bounds how many notes are read concurrently during a
// bulk read. Large vaults (2000+ notes) stay well under the open-file
// limit at this size.
const readPoolSize = 50

// Vault provides access to the markdown notes under a root directory.
// All note paths are vault-relative and slash-separated.
type Vault struct {
	root   string
	logger *slog.Logger
}

// Option configures a Vault.
type Option func(*Vault) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(v *Vault) error {
		if logger == nil {
			logger = slog.Default()
		}
		v.logger = logger
		return nil
	}
}

// New creates a Vault rooted at the given directory.
func New(root string, opts ...Option) (*Vault, error) {
	if root == "" {
		return nil, ErrRootRequired
	}

	v := &Vault{
		root:   root,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// Root returns the vault root directory.
func (v *Vault) Root() string {
	return v.root
}

// EnsureStructure creates the standard vault folders. A folder that
// cannot be created is logged and skipped.
func (v *Vault) EnsureStructure() error {
	if _, err := os.Stat(v.root); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		if err := os.MkdirAll(v.root, 0o755); err != nil {
			return err
		}
	}

	for _, folder := range Folders {
		dir := filepath.Join(v.root, folder)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			v.logger.Warn("skipping vault folder", "folder", folder, "err", err)
		}
	}
	return nil
}

// ListNotes recursively lists all markdown notes in the vault,
// excluding internal and hidden directories. Returned paths are
// vault-relative with forward slashes. Directories that cannot be
// read are skipped, not fatal.
func (v *Vault) ListNotes(ctx context.Context) ([]string, error) {
	var notes []string

	err := filepath.WalkDir(v.root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			// Unreadable entries (permissions, dangling symlinks) are skipped.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == v.root {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || skipDirs[name] {
				return fs.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		rel, relErr := filepath.Rel(v.root, path)
		if relErr != nil {
			return nil
		}
		notes = append(notes, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return notes, nil
}

// ReadNote reads a single note by its vault-relative path.
// Returns ErrNoteNotFound when no note exists at that path.
func (v *Vault) ReadNote(path string) (string, error) {
	data, err := os.ReadFile(filepath.Join(v.root, filepath.FromSlash(path)))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoteNotFound
		}
		return "", err
	}
	return string(data), nil
}

// ReadAllNotes reads every markdown note and returns a map of path to
// content. Notes are read concurrently through a bounded worker pool.
// Notes that cannot be read, or are empty, are omitted from the map
// rather than failing the call.
func (v *Vault) ReadAllNotes(ctx context.Context) (map[string]string, error) {
	files, err := v.ListNotes(ctx)
	if err != nil {
		return nil, err
	}

	notes := make(map[string]string, len(files))
	if len(files) == 0 {
		return notes, nil
	}

	pool, err := ants.NewPool(readPoolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, file := range files {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			content, readErr := v.ReadNote(file)
			if readErr != nil {
				v.logger.Debug("skipping unreadable note", "path", file, "err", readErr)
				return
			}
			if content == "" {
				return
			}
			mu.Lock()
			notes[file] = content
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
		}
	}

	wg.Wait()
	return notes, nil
}

// WriteNote writes a note into a folder. When the note already exists
// the content is appended after a blank line; use OverwriteNote to
// replace a note wholesale. Returns the vault-relative path written.
func (v *Vault) WriteNote(folder, filename, content string) (string, error) {
	dir := filepath.Join(v.root, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	rel := folder + "/" + filename
	target := filepath.Join(dir, filename)

	existing, err := os.ReadFile(target)
	switch {
	case err == nil:
		combined := string(existing) + "\n\n" + content
		if err := os.WriteFile(target, []byte(combined), 0o644); err != nil {
			return "", err
		}
	case os.IsNotExist(err):
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			return "", err
		}
	default:
		return "", err
	}

	return rel, nil
}

// OverwriteNote replaces a note's content by its vault-relative path.
func (v *Vault) OverwriteNote(path, content string) error {
	target := filepath.Join(v.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, []byte(content), 0o644)
}
