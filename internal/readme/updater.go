// Package readme rewrites the "tested versions" banner in README.md.
//
// The banner is a fixed four-line block: the heading, the npm version, the
// binary version and a link to CHANGELOG.md. Everything outside the block is
// preserved byte for byte.
package readme

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
)

// DefaultPath is the README file name used when none is configured.
const DefaultPath = "README.md"

// Outcome reports what Update did. Only OutcomeUpdated and OutcomeWouldUpdate
// count as success.
type Outcome int

const (
	// OutcomeUpdated means the file was rewritten.
	OutcomeUpdated Outcome = iota
	// OutcomeWouldUpdate means a dry run found a change to make.
	OutcomeWouldUpdate
	// OutcomeUnchanged means the block already carries the requested versions.
	OutcomeUnchanged
	// OutcomeFileMissing means the README does not exist.
	OutcomeFileMissing
	// OutcomeBlockNotFound means neither pattern matched.
	OutcomeBlockNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeWouldUpdate:
		return "would update"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeFileMissing:
		return "file missing"
	case OutcomeBlockNotFound:
		return "block not found"
	default:
		return "unknown"
	}
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o == OutcomeUpdated || o == OutcomeWouldUpdate
}

// Request describes one README update.
type Request struct {
	JSVersion     string
	BinaryVersion string
	// Path is the README file. Empty means DefaultPath.
	Path   string
	DryRun bool
}

// Result is the outcome of an update.
type Result struct {
	Path    string
	Outcome Outcome
	// Block is the rendered version block.
	Block string
	// Fallback is true when the loose pattern located the block.
	Fallback bool
}

// Updater rewrites the README version block.
type Updater struct {
	fs     billy.Filesystem
	logger *zap.SugaredLogger
	// osPaths is set while fs is the OS filesystem, whose chroot
	// rejects relative paths that leave the working directory.
	osPaths bool
}

// Option configures an Updater.
type Option func(*Updater)

// WithFilesystem sets the filesystem the README is read from and written to.
func WithFilesystem(fsys billy.Filesystem) Option {
	return func(u *Updater) {
		u.fs = fsys
		u.osPaths = false
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(u *Updater) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// NewUpdater creates an Updater working on the OS filesystem by default.
func NewUpdater(opts ...Option) *Updater {
	u := &Updater{
		fs:      osfs.New(""),
		logger:  zap.NewNop().Sugar(),
		osPaths: true,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Update replaces the version block with one carrying the requested versions.
//
// A missing file, a missing block and an already up-to-date block are
// reported through Result.Outcome, not as errors. Errors are returned only
// for failed I/O or a cancelled context.
func (u *Updater) Update(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := req.Path
	if path == "" {
		path = DefaultPath
	}
	result := &Result{Path: path, Block: Block(req.JSVersion, req.BinaryVersion)}

	fsPath, err := u.fsPath(path)
	if err != nil {
		return nil, err
	}
	info, err := u.fs.Stat(fsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.Outcome = OutcomeFileMissing
			return result, nil
		}
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	data, err := util.ReadFile(u.fs, fsPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	content := string(data)

	updated, m, ok := Replace(content, req.JSVersion, req.BinaryVersion)
	if !ok {
		u.logger.Debugw("version block not found with either pattern", "path", path)
		result.Outcome = OutcomeBlockNotFound
		return result, nil
	}
	if m.Fallback {
		u.logger.Warnf("could not find the version block in %s using the primary pattern, used fallback", path)
	}
	result.Fallback = m.Fallback

	if updated == content {
		u.logger.Debugw("readme already up to date", "path", path)
		result.Outcome = OutcomeUnchanged
		return result, nil
	}

	if req.DryRun {
		result.Outcome = OutcomeWouldUpdate
		return result, nil
	}

	if err := util.WriteFile(u.fs, fsPath, []byte(updated), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	u.logger.Debugw("readme updated", "path", path, "js", req.JSVersion, "binary", req.BinaryVersion)
	result.Outcome = OutcomeUpdated
	return result, nil
}

// fsPath maps path onto the updater's filesystem.
func (u *Updater) fsPath(path string) (string, error) {
	if !u.osPaths {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return abs, nil
}
