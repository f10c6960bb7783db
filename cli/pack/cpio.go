package pack

import (
	"bytes"
	"fmt"
	"strings"
)

/**
 *  The payload of a package is an SVR4 "newc" cpio archive: for every
 *  entry a 110-byte ASCII header (magic "070701" followed by thirteen
 *  8-digit lowercase hex fields), then the entry name terminated with a
 *  null byte, padding to a 4-byte boundary, the raw content, and padding
 *  to a 4-byte boundary again. The archive ends with an entry named
 *  "TRAILER!!!" carrying zero content.
 */

const (
	cpioMagic       = "070701"
	cpioTrailerName = "TRAILER!!!"
	cpioAlignment   = 4
)

// cpioHeader holds the numeric fields of one newc archive entry.
type cpioHeader struct {
	inode     int
	mode      uint32
	uid       int
	gid       int
	numLinks  int
	mtime     int64
	fileSize  int
	devMajor  int
	devMinor  int
	rdevMajor int
	rdevMinor int
	nameSize  int
}

// writeCpioHeader emits the fixed-width metadata record of one entry.
func writeCpioHeader(buf *bytes.Buffer, hdr cpioHeader) {
	buf.WriteString(cpioMagic)

	for _, field := range []int64{
		int64(hdr.inode),
		int64(hdr.mode),
		int64(hdr.uid),
		int64(hdr.gid),
		int64(hdr.numLinks),
		hdr.mtime,
		int64(hdr.fileSize),
		int64(hdr.devMajor),
		int64(hdr.devMinor),
		int64(hdr.rdevMajor),
		int64(hdr.rdevMinor),
		int64(hdr.nameSize),
		0, // checksum, always zero for "newc"
	} {
		fmt.Fprintf(buf, "%08x", field)
	}
}

// writeCpioEntry emits one complete archive entry: metadata record, name,
// content and the alignment padding around them.
func writeCpioEntry(buf *bytes.Buffer, name string, hdr cpioHeader, body []byte) {
	hdr.nameSize = len(name) + 1

	writeCpioHeader(buf, hdr)
	buf.WriteString(name)
	buf.WriteByte(0)
	alignData(buf, cpioAlignment)

	buf.Write(body)
	alignData(buf, cpioAlignment)
}

// packCpio serializes the passed entries into a newc archive. The entries
// must already be in their final order (see orderEntries).
func packCpio(entries []FileEntry) (*bytes.Buffer, error) {
	buf := bytes.NewBuffer(nil)

	for i, entry := range entries {
		numLinks := 1
		if entry.IsDir() {
			numLinks = 2
		}

		writeCpioEntry(buf, "."+entry.Target, cpioHeader{
			inode:    i + 1,
			mode:     entry.Mode,
			numLinks: numLinks,
			mtime:    entry.Mtime,
			fileSize: len(entry.Body),
		}, entry.Body)
	}

	writeCpioEntry(buf, cpioTrailerName, cpioHeader{numLinks: 1}, nil)

	return buf, nil
}

// orderEntries validates the install paths and returns the entries in
// archive order: a directory is moved in front of the first entry nested
// under it, everything else keeps the declared order.
func orderEntries(entries []FileEntry) ([]FileEntry, error) {
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Target, "/") {
			return nil, &PathError{Path: entry.Target, Msg: "target path must be absolute"}
		}
		if _, ok := seen[entry.Target]; ok {
			return nil, &PathError{Path: entry.Target, Msg: "target path is already used"}
		}
		seen[entry.Target] = struct{}{}
	}

	ordered := make([]FileEntry, 0, len(entries))
	for _, entry := range entries {
		pos := len(ordered)
		if entry.IsDir() {
			prefix := entry.Target + "/"
			for i, placed := range ordered {
				if strings.HasPrefix(placed.Target, prefix) {
					pos = i
					break
				}
			}
		}

		ordered = append(ordered[:pos], append([]FileEntry{entry}, ordered[pos:]...)...)
	}

	return ordered, nil
}
