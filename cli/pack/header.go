package pack

import (
	"bytes"
	"path"
)

// filesInfo holds the index-correlated per-file tag arrays of the main
// header. Directory names are deduplicated and referenced by index.
type filesInfo struct {
	dirNames       []string
	baseNames      []string
	dirIndexes     []int32
	fileSizes      []int32
	fileModes      []int16
	fileRdevs      []int16
	fileMtimes     []int32
	fileDigests    []string
	fileLinkTos    []string
	fileFlags      []int32
	fileUserNames  []string
	fileGroupNames []string
	fileLangs      []string
	fileDevices    []int32
	fileInodes     []int32
}

// collectFilesInfo flattens the ordered payload entries into the per-file
// tag arrays. Entry order here has to match the archive order so that
// installers correlate metadata with payload content.
func collectFilesInfo(entries []FileEntry) filesInfo {
	var info filesInfo

	dirIndexes := make(map[string]int32)

	for i, entry := range entries {
		dirName := path.Dir(entry.Target)
		if dirName != "/" {
			dirName += "/"
		}

		dirIndex, ok := dirIndexes[dirName]
		if !ok {
			dirIndex = int32(len(info.dirNames))
			dirIndexes[dirName] = dirIndex
			info.dirNames = append(info.dirNames, dirName)
		}

		digest := emptyDigest
		if !entry.IsDir() {
			digest = md5Hex(entry.Body)
		}

		owner := entry.Owner
		if owner == "" {
			owner = defaultFileUser
		}
		group := entry.Group
		if group == "" {
			group = defaultFileGroup
		}

		info.baseNames = append(info.baseNames, path.Base(entry.Target))
		info.dirIndexes = append(info.dirIndexes, dirIndex)
		info.fileSizes = append(info.fileSizes, int32(len(entry.Body)))
		info.fileModes = append(info.fileModes, int16(entry.Mode))
		info.fileRdevs = append(info.fileRdevs, 0)
		info.fileMtimes = append(info.fileMtimes, int32(entry.Mtime))
		info.fileDigests = append(info.fileDigests, digest)
		info.fileLinkTos = append(info.fileLinkTos, defaultFileLinkTo)
		info.fileFlags = append(info.fileFlags, entry.Role.flags())
		info.fileUserNames = append(info.fileUserNames, owner)
		info.fileGroupNames = append(info.fileGroupNames, group)
		info.fileLangs = append(info.fileLangs, defaultFileLang)
		info.fileDevices = append(info.fileDevices, 1)
		info.fileInodes = append(info.fileInodes, int32(i+1))
	}

	return info
}

// addFilesInfoTags writes the per-file tag arrays to the header tag set.
// Nothing is emitted for a payload without entries.
func addFilesInfoTags(header *rpmTagSetType, info filesInfo) {
	if len(info.baseNames) == 0 {
		return
	}

	header.addTags([]rpmTagType{
		{ID: tagFileSizes, Type: rpmTypeInt32, Value: info.fileSizes},
		{ID: tagFileModes, Type: rpmTypeInt16, Value: info.fileModes},
		{ID: tagFileRdevs, Type: rpmTypeInt16, Value: info.fileRdevs},
		{ID: tagFileMtimes, Type: rpmTypeInt32, Value: info.fileMtimes},
		{ID: tagFileDigests, Type: rpmTypeStringArray, Value: info.fileDigests},
		{ID: tagFileLinkTos, Type: rpmTypeStringArray, Value: info.fileLinkTos},
		{ID: tagFileFlags, Type: rpmTypeInt32, Value: info.fileFlags},
		{ID: tagFileUserNames, Type: rpmTypeStringArray, Value: info.fileUserNames},
		{ID: tagFileGroupNames, Type: rpmTypeStringArray, Value: info.fileGroupNames},
		{ID: tagFileDevices, Type: rpmTypeInt32, Value: info.fileDevices},
		{ID: tagFileInodes, Type: rpmTypeInt32, Value: info.fileInodes},
		{ID: tagFileLangs, Type: rpmTypeStringArray, Value: info.fileLangs},
		{ID: tagDirIndexes, Type: rpmTypeInt32, Value: info.dirIndexes},
		{ID: tagBaseNames, Type: rpmTypeStringArray, Value: info.baseNames},
		{ID: tagDirNames, Type: rpmTypeStringArray, Value: info.dirNames},
	}...)
}

// buildMainHeader generates the main header tag set for the descriptor and
// the already ordered payload entries, and packs it into a buffer.
// payloadSize is the size of the archive before compression; compressed is
// the final payload as it ends up in the package.
func buildMainHeader(d *Descriptor, entries []FileEntry, payloadSize int,
	compressed []byte,
) (*bytes.Buffer, error) {
	header := rpmTagSetType{}

	header.addTags([]rpmTagType{
		{ID: tagName, Type: rpmTypeString, Value: d.Name},
		{ID: tagVersion, Type: rpmTypeString, Value: d.Version},
		{ID: tagRelease, Type: rpmTypeString, Value: d.Release},
		{ID: tagSummary, Type: rpmTypeString, Value: d.Summary},
		{ID: tagDescription, Type: rpmTypeString, Value: d.Description},
		{ID: tagSize, Type: rpmTypeInt32, Value: []int32{int32(payloadSize)}},
		{ID: tagOs, Type: rpmTypeString, Value: "linux"},
		{ID: tagArch, Type: rpmTypeString, Value: d.Arch},
		{ID: tagPayloadFormat, Type: rpmTypeString, Value: "cpio"},
		{ID: tagPayloadCompressor, Type: rpmTypeString, Value: string(d.Compression)},
	}...)

	if d.Epoch > 0 {
		header.addTags(rpmTagType{
			ID: tagEpoch, Type: rpmTypeInt32, Value: []int32{d.Epoch},
		})
	}

	if d.License != "" {
		header.addTags(rpmTagType{
			ID: tagLicense, Type: rpmTypeString, Value: d.License,
		})
	}

	if level := d.Compression.level(); level != "" {
		header.addTags(rpmTagType{
			ID: tagPayloadFlags, Type: rpmTypeString, Value: level,
		})
	}

	addFilesInfoTags(&header, collectFilesInfo(entries))

	addDependencyTags(&header, KindRequires, d.Requires)
	addDependencyTags(&header, KindProvides, d.Provides)
	addDependencyTags(&header, KindConflicts, d.Conflicts)
	addDependencyTags(&header, KindObsoletes, d.Obsoletes)
	addDependencyTags(&header, KindRecommends, d.Recommends)
	addDependencyTags(&header, KindSuggests, d.Suggests)
	addDependencyTags(&header, KindSupplements, d.Supplements)
	addDependencyTags(&header, KindEnhances, d.Enhances)

	addChangelogTags(&header, d.Changelog)

	scriptlets := []struct {
		body   string
		tagID  int
		progID int
	}{
		{d.PreInstall, tagPreIn, tagPreInProg},
		{d.PostInstall, tagPostIn, tagPostInProg},
		{d.PreUninstall, tagPreUn, tagPreUnProg},
		{d.PostUninstall, tagPostUn, tagPostUnProg},
	}
	for _, scriptlet := range scriptlets {
		if scriptlet.body == "" {
			continue
		}

		header.addTags([]rpmTagType{
			{ID: scriptlet.tagID, Type: rpmTypeString, Value: scriptlet.body},
			{ID: scriptlet.progID, Type: rpmTypeString, Value: scriptletProg},
		}...)
	}

	if digestsByFormat[d.Format].payloadDigest {
		header.addTags([]rpmTagType{
			{ID: tagPayloadDigest, Type: rpmTypeStringArray,
				Value: []string{sha256Hex(compressed)}},
			{ID: tagPayloadDigestAlgo, Type: rpmTypeInt32,
				Value: []int32{hashAlgoSHA256}},
		}...)
	}

	return packTagSet(header, headerImmutable)
}
