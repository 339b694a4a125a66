package changelog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ariel-frischer/docsync/internal/testlog"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
)

// DefaultPath is the CHANGELOG file name used when none is configured.
const DefaultPath = "CHANGELOG.md"

// Request describes one changelog update.
type Request struct {
	JSVersion     string
	BinaryVersion string
	// Path is the CHANGELOG file. Empty means DefaultPath.
	Path string
	// LogPath is the test runner output. Empty means testlog.DefaultPath.
	LogPath string
	// DryRun computes the new content without writing it.
	DryRun bool
}

// Result is the outcome of an update.
type Result struct {
	Path    string
	Action  Action
	Row     Row
	Report  testlog.Report
	Content string
	Written bool
}

// Updater upserts version rows into a CHANGELOG.
type Updater struct {
	fs       billy.Filesystem
	now      func() time.Time
	scanRows int
	logger   *zap.SugaredLogger
	// osPaths is set while fs is the OS filesystem, whose chroot
	// rejects relative paths that leave the working directory.
	osPaths bool
}

// Option configures an Updater.
type Option func(*Updater)

// WithFilesystem sets the filesystem both the CHANGELOG and the test log are read from.
func WithFilesystem(fsys billy.Filesystem) Option {
	return func(u *Updater) {
		u.fs = fsys
		u.osPaths = false
	}
}

// WithClock sets the time source for the date column.
func WithClock(now func() time.Time) Option {
	return func(u *Updater) {
		u.now = now
	}
}

// WithScanRows sets how many data rows are searched for an existing version.
func WithScanRows(n int) Option {
	return func(u *Updater) {
		if n > 0 {
			u.scanRows = n
		}
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
		fs:       osfs.New(""),
		now:      time.Now,
		scanRows: DefaultScanRows,
		logger:   zap.NewNop().Sugar(),
		osPaths:  true,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Update derives the platform statuses for the request's versions and writes
// the resulting row into the CHANGELOG. A missing test log is not an error:
// every platform is then recorded as failed.
func (u *Updater) Update(ctx context.Context, req Request) (*Result, error) {
	if req.JSVersion == "" || req.BinaryVersion == "" {
		return nil, fmt.Errorf("both js and binary versions are required")
	}
	path := req.Path
	if path == "" {
		path = DefaultPath
	}
	logPath := req.LogPath
	if logPath == "" {
		logPath = testlog.DefaultPath
	}

	logOpts := []testlog.Option{testlog.WithLogger(u.logger)}
	if !u.osPaths {
		logOpts = append(logOpts, testlog.WithFilesystem(u.fs))
	}
	log, err := testlog.Load(ctx, logPath, logOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading test log: %w", err)
	}

	report := log.Report(req.JSVersion, req.BinaryVersion)
	row := NewRow(req.JSVersion, u.now().Format(DateLayout), report.Statuses())

	content, mode, err := u.read(path)
	if err != nil {
		return nil, err
	}

	doc := Parse(content)
	action := doc.Upsert(row, u.scanRows)
	u.logger.Debugw("changelog row upserted",
		"path", path, "version", req.JSVersion, "action", action, "row", row.String())

	result := &Result{
		Path:    path,
		Action:  action,
		Row:     row,
		Report:  report,
		Content: doc.String(),
	}

	if req.DryRun {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fsPath, err := u.fsPath(path)
	if err != nil {
		return nil, err
	}
	if err := util.WriteFile(u.fs, fsPath, []byte(result.Content), mode); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	result.Written = true
	return result, nil
}

// Load parses the CHANGELOG at path.
func (u *Updater) Load(path string) (*Document, error) {
	fsPath, err := u.fsPath(path)
	if err != nil {
		return nil, err
	}
	data, err := util.ReadFile(u.fs, fsPath)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	return Parse(string(data)), nil
}

// read returns the current content and permission bits of path.
// A missing file reads as empty with mode 0644.
func (u *Updater) read(path string) (string, os.FileMode, error) {
	fsPath, err := u.fsPath(path)
	if err != nil {
		return "", 0, err
	}
	info, err := u.fs.Stat(fsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", 0o644, nil
		}
		return "", 0, fmt.Errorf("checking %s: %w", path, err)
	}

	data, err := util.ReadFile(u.fs, fsPath)
	if err != nil {
		return "", 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), info.Mode().Perm(), nil
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
