package pack

import (
	"fmt"
	"strings"
)

// FileRole determines the install-time treatment of a packaged file.
type FileRole int

const (
	RoleRegular FileRole = iota
	RoleExecutable
	RoleConfig
	RoleDoc
)

// flags returns the per-file flag bits written into the file flags tag.
func (r FileRole) flags() int32 {
	switch r {
	case RoleConfig:
		return fileFlagConfig
	case RoleDoc:
		return fileFlagDoc
	}
	return fileFlagNone
}

const modeDir = 0o40000

// FileEntry is one file or directory of the package. Content and metadata
// are already resolved into memory; the encoder never touches the
// filesystem.
type FileEntry struct {
	// Source is the origin path, kept for error context only.
	Source string
	// Target is the absolute install path.
	Target string
	Role   FileRole
	// Mode holds the unix mode bits including the file type.
	Mode  uint32
	Mtime int64
	Owner string
	Group string
	Body  []byte
}

// IsDir reports whether the entry describes a directory.
func (f *FileEntry) IsDir() bool {
	return f.Mode&modeDir != 0
}

// ChangelogEntry is one package changelog record with day granularity.
type ChangelogEntry struct {
	Author string
	Text   string
	// Time is seconds since epoch at UTC midnight of the entry date.
	Time int64
}

// Descriptor is the fully resolved description of one package build.
type Descriptor struct {
	Name        string
	Version     string
	Release     string
	Epoch       int32
	Arch        string
	License     string
	Summary     string
	Description string

	Compression Compression
	Format      Format

	Files     []FileEntry
	Changelog []ChangelogEntry

	Requires    []Constraint
	Provides    []Constraint
	Conflicts   []Constraint
	Obsoletes   []Constraint
	Recommends  []Constraint
	Suggests    []Constraint
	Supplements []Constraint
	Enhances    []Constraint

	// Scriptlet bodies, run by the installer with /bin/sh. An empty body
	// means the according tag is not emitted.
	PreInstall    string
	PostInstall   string
	PreUninstall  string
	PostUninstall string
}

// Filename returns the conventional package file name
// <name>-<version>-<release>.<arch>.rpm.
func (d *Descriptor) Filename() string {
	return fmt.Sprintf("%s-%s-%s.%s.rpm", d.Name, d.Version, d.Release, d.Arch)
}

// validate checks the descriptor invariants that do not depend on any
// build stage output.
func (d *Descriptor) validate() error {
	if d.Name == "" {
		return fmt.Errorf("package name must not be empty")
	}
	if strings.ContainsAny(d.Name, `/\`) {
		return fmt.Errorf("package name %q must not contain path separators", d.Name)
	}
	if d.Version == "" {
		return fmt.Errorf("package version must not be empty")
	}
	if d.Release == "" {
		return fmt.Errorf("package release must not be empty")
	}
	if d.Arch == "" {
		return fmt.Errorf("package architecture must not be empty")
	}
	if d.Compression == "" {
		d.Compression = CompressionGzip
	}
	return nil
}
