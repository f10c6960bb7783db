package pack

import (
	"bytes"
)

// buildSignatureHeader generates the signature tag set over the already
// packed main header and the compressed payload, and packs it into a
// buffer. payloadSize is the size of the archive before compression.
// pgpSignature may be nil, in which case no signature tag is emitted.
func buildSignatureHeader(mainHeader, compressed []byte, payloadSize int,
	format Format, pgpSignature []byte,
) (*bytes.Buffer, error) {
	signedSize := len(mainHeader) + len(compressed)

	tagSet := rpmTagSetType{}
	tagSet.addTags([]rpmTagType{
		{ID: signatureTagSize, Type: rpmTypeInt32,
			Value: []int32{int32(signedSize)}},
		{ID: signatureTagPayloadSize, Type: rpmTypeInt32,
			Value: []int32{int32(payloadSize)}},
		{ID: signatureTagMD5, Type: rpmTypeBin,
			Value: md5Sum(mainHeader, compressed)},
		{ID: signatureTagSHA1, Type: rpmTypeString,
			Value: sha1Hex(mainHeader)},
	}...)

	if digestsByFormat[format].headerSHA256 {
		tagSet.addTags(rpmTagType{
			ID: signatureTagSHA256, Type: rpmTypeString,
			Value: sha256Hex(mainHeader),
		})
	}

	if len(pgpSignature) > 0 {
		tagSet.addTags(rpmTagType{
			ID: signatureTagPGP, Type: rpmTypeBin, Value: pgpSignature,
		})
	}

	packed, err := packTagSet(tagSet, headerSignatures)
	if err != nil {
		return nil, err
	}

	// The main header has to start at an 8-byte boundary.
	alignData(packed, 8)

	return packed, nil
}
