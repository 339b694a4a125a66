// Package testlog derives per-platform test outcomes from the combined output
// of the patch test suite. The suite prints a RESULT_IGNORED marker when a
// binary is not published for a platform and vitest prints a FAIL line for
// each failing describe block; everything else counts as a pass.
package testlog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/docsync/internal/platform"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
)

// DefaultPath is where the test runner writes its combined output.
const DefaultPath = "combined_test_output.log"

const suiteFailPrefix = "FAIL  patch-cli-claude-code.test.js > Claude Code Vietnamese Patch Test > "

// JSFailureMarker is printed when the npm package patch test fails.
const JSFailureMarker = suiteFailPrefix + "JS Patch Test"

// BinaryFailureMarker returns the FAIL line printed for a binary platform.
func BinaryFailureMarker(logID string) string {
	return suiteFailPrefix + "Binary Patch Test on " + logID
}

// IgnoredMarker returns the line printed when a version/platform pair was skipped.
func IgnoredMarker(version, logID string) string {
	return fmt.Sprintf("RESULT_IGNORED: %s:%s", version, logID)
}

// Log is the loaded test output. A Log for a file that does not exist is
// valid and reports every platform as failed.
type Log struct {
	Path    string
	Missing bool

	text    string
	fs      billy.Filesystem
	logger  *zap.SugaredLogger
	osPaths bool
}

// Option configures a Log.
type Option func(*Log)

// WithFilesystem sets the filesystem the log is read from.
func WithFilesystem(fsys billy.Filesystem) Option {
	return func(l *Log) {
		if fsys != nil {
			l.fs = fsys
			l.osPaths = false
		}
	}
}

// WithLogger sets the logger used to trace status decisions.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(l *Log) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Load reads the log at path. A missing file is not an error.
func Load(ctx context.Context, path string, opts ...Option) (*Log, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := newLog(path, opts)

	fsPath := path
	if l.osPaths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving test log %s: %w", path, err)
		}
		fsPath = abs
	}

	data, err := util.ReadFile(l.fs, fsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.Missing = true
			l.logger.Debugw("test log not found, all platforms count as failed", "path", path)
			return l, nil
		}
		return nil, fmt.Errorf("reading test log %s: %w", path, err)
	}

	// Markers are ASCII; invalid byte sequences are dropped.
	l.text = strings.ToValidUTF8(string(data), "")
	return l, nil
}

// FromString builds a Log from in-memory output.
func FromString(text string, opts ...Option) *Log {
	l := newLog("", opts)
	l.text = text
	return l
}

func newLog(path string, opts []Option) *Log {
	l := &Log{Path: path, fs: osfs.New(""), logger: zap.NewNop().Sugar(), osPaths: true}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Status derives the outcome for one platform and version.
// An ignore marker wins over a failure marker.
func (l *Log) Status(p platform.Platform, version string) Status {
	if l.Missing {
		return Failed
	}

	if strings.Contains(l.text, IgnoredMarker(version, p.LogID)) {
		l.logger.Debugw("ignore marker found", "platform", p.Column, "version", version)
		return Ignored
	}

	if strings.Contains(l.text, BinaryFailureMarker(p.LogID)) {
		l.logger.Debugw("failure marker found", "platform", p.Column, "version", version)
		return Failed
	}
	if !p.Binary && strings.Contains(l.text, JSFailureMarker) {
		l.logger.Debugw("js failure marker found", "version", version)
		return Failed
	}

	return Passed
}

// PlatformStatus is the derived outcome for a single platform.
type PlatformStatus struct {
	Platform string `json:"platform" yaml:"platform"`
	LogID    string `json:"log_id" yaml:"log_id"`
	Version  string `json:"version" yaml:"version"`
	Status   Status `json:"status" yaml:"status"`
}

// Report holds the outcome of every platform for one JS/binary version pair.
type Report struct {
	JSVersion     string           `json:"js_version" yaml:"js_version"`
	BinaryVersion string           `json:"binary_version" yaml:"binary_version"`
	LogPath       string           `json:"log_path,omitempty" yaml:"log_path,omitempty"`
	LogMissing    bool             `json:"log_missing" yaml:"log_missing"`
	Platforms     []PlatformStatus `json:"platforms" yaml:"platforms"`
}

// Report derives the status of every platform in table column order.
func (l *Log) Report(jsVersion, binaryVersion string) Report {
	r := Report{
		JSVersion:     jsVersion,
		BinaryVersion: binaryVersion,
		LogPath:       l.Path,
		LogMissing:    l.Missing,
	}
	for _, p := range platform.All() {
		v := p.VersionFor(jsVersion, binaryVersion)
		r.Platforms = append(r.Platforms, PlatformStatus{
			Platform: p.Column,
			LogID:    p.LogID,
			Version:  v,
			Status:   l.Status(p, v),
		})
	}
	return r
}

// Statuses returns the status symbols in table column order.
func (r Report) Statuses() []Status {
	out := make([]Status, len(r.Platforms))
	for i, ps := range r.Platforms {
		out[i] = ps.Status
	}
	return out
}
