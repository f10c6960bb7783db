package fileset

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rpmbuilder/rpmbuilder/cli/pack"
	"github.com/rpmbuilder/rpmbuilder/cli/util"
)

const (
	modeDir     = 0o40000
	modeRegular = 0o100000
	modeExec    = 0o100755
)

// Mapping binds a filesystem source path to an absolute install target.
type Mapping struct {
	Source string
	Target string
}

// ParseMapping parses a "<source>:<target>" pair. The target must be an
// absolute path.
func ParseMapping(raw string) (Mapping, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Mapping{}, fmt.Errorf("expected <source>:<target>, got %q", raw)
	}

	if !strings.HasPrefix(parts[1], "/") {
		return Mapping{}, fmt.Errorf("install target %q must be absolute", parts[1])
	}

	return Mapping{Source: parts[0], Target: path.Clean(parts[1])}, nil
}

// ParseMappings parses a slice of "<source>:<target>" pairs.
func ParseMappings(rawMappings []string) ([]Mapping, error) {
	var mappings []Mapping
	for _, raw := range rawMappings {
		mapping, err := ParseMapping(raw)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, mapping)
	}

	return mappings, nil
}

// CollectFile loads one source file into a payload entry with the passed
// role. The executable role forces mode 0755, everything else keeps the
// source permissions.
func CollectFile(mapping Mapping, role pack.FileRole) (pack.FileEntry, error) {
	info, err := os.Stat(mapping.Source)
	if err != nil {
		return pack.FileEntry{}, err
	}

	if !info.Mode().IsRegular() {
		return pack.FileEntry{}, fmt.Errorf("%s is not a regular file", mapping.Source)
	}

	body, err := os.ReadFile(mapping.Source)
	if err != nil {
		return pack.FileEntry{}, err
	}

	mode := uint32(modeRegular | info.Mode().Perm())
	if role == pack.RoleExecutable {
		mode = modeExec
	}

	return pack.FileEntry{
		Source: mapping.Source,
		Target: mapping.Target,
		Role:   role,
		Mode:   mode,
		Mtime:  info.ModTime().Unix(),
		Body:   body,
	}, nil
}

// CollectDir walks a source directory and returns payload entries for the
// directory itself, its subdirectories and its regular files. Symlinks and
// other special files are skipped.
func CollectDir(mapping Mapping) ([]pack.FileEntry, error) {
	if !util.IsDir(mapping.Source) {
		return nil, fmt.Errorf("%s is not a directory", mapping.Source)
	}

	var entries []pack.FileEntry
	err := filepath.WalkDir(mapping.Source,
		func(srcPath string, dirEntry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			rel, err := filepath.Rel(mapping.Source, srcPath)
			if err != nil {
				return err
			}

			target := mapping.Target
			if rel != "." {
				target = path.Join(mapping.Target, filepath.ToSlash(rel))
			}

			info, err := dirEntry.Info()
			if err != nil {
				return err
			}

			switch {
			case dirEntry.IsDir():
				entries = append(entries, pack.FileEntry{
					Source: srcPath,
					Target: target,
					Mode:   modeDir | uint32(info.Mode().Perm()),
					Mtime:  info.ModTime().Unix(),
				})

			case info.Mode().IsRegular():
				body, err := os.ReadFile(srcPath)
				if err != nil {
					return err
				}

				entries = append(entries, pack.FileEntry{
					Source: srcPath,
					Target: target,
					Mode:   modeRegular | uint32(info.Mode().Perm()),
					Mtime:  info.ModTime().Unix(),
					Body:   body,
				})
			}

			return nil
		})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// ResolveOutPath maps the output flag to the final artifact path: an
// existing directory gets the conventional file name appended, any other
// path is forced to the .rpm extension. An empty flag places the artifact
// in the current directory.
func ResolveOutPath(out, filename string) string {
	if out == "" {
		return filename
	}

	if util.IsDir(out) {
		return filepath.Join(out, filename)
	}

	if !strings.HasSuffix(out, ".rpm") {
		out += ".rpm"
	}

	return out
}

// WriteArtifact writes the artifact beside its final path and renames it
// into place, so a failed write never leaves a partial package behind.
func WriteArtifact(artifact *pack.Artifact, outPath string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(outPath), ".rpmbuilder-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(artifact.Data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, outPath)
}
