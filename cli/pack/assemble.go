package pack

import (
	"bytes"
	"io"

	"github.com/apex/log"

	"github.com/rpmbuilder/rpmbuilder/cli/util"
)

// Artifact is a fully assembled package held in memory.
type Artifact struct {
	// Data is the complete package file image.
	Data []byte
	// Filename is the conventional file name for the image.
	Filename string
}

// Builder assembles one package from a descriptor. A nil Signer produces
// an unsigned package.
type Builder struct {
	Descriptor *Descriptor
	Signer     Signer
}

// Build runs the assembly stages in order and returns the package image.
// A failing stage aborts the build, nothing is emitted on error.
func (b *Builder) Build() (*Artifact, error) {
	d := b.Descriptor

	if err := d.validate(); err != nil {
		return nil, err
	}

	log.Infof("Create %s", d.Filename())

	entries, err := orderEntries(d.Files)
	if err != nil {
		return nil, err
	}

	log.Debugf("Pack the payload archive")
	payload, err := packCpio(entries)
	if err != nil {
		return nil, err
	}
	payloadSize := payload.Len()

	log.Debugf("Compress the payload with %s", d.Compression)
	compressed, err := compressPayload(payload.Bytes(), d.Compression)
	if err != nil {
		return nil, err
	}

	log.Debugf("Generate the main header")
	header, err := buildMainHeader(d, entries, payloadSize, compressed)
	if err != nil {
		return nil, err
	}

	var pgpSignature []byte
	if b.Signer != nil {
		log.Debugf("Sign the package")
		signed := io.MultiReader(
			bytes.NewReader(header.Bytes()),
			bytes.NewReader(compressed),
		)

		pgpSignature, err = b.Signer.Sign(signed)
		if err != nil {
			return nil, err
		}
	}

	log.Debugf("Generate the signature header")
	signature, err := buildSignatureHeader(header.Bytes(), compressed,
		payloadSize, d.Format, pgpSignature)
	if err != nil {
		return nil, err
	}

	lead := genLead(d.Name, d.Arch)

	packed := bytes.NewBuffer(nil)
	err = util.ConcatBuffers(packed, lead, signature, header,
		bytes.NewBuffer(compressed))
	if err != nil {
		return nil, err
	}

	return &Artifact{Data: packed.Bytes(), Filename: d.Filename()}, nil
}
