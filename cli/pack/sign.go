package pack

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Signer produces a detached signature over the passed content.
type Signer interface {
	Sign(data io.Reader) ([]byte, error)
}

// PGPSigner signs with the first private key of an OpenPGP keyring.
type PGPSigner struct {
	entity *openpgp.Entity
}

// NewPGPSigner reads an armored OpenPGP keyring and returns a signer over
// its first entity. The entity must carry a decrypted private key.
func NewPGPSigner(armoredKey io.Reader) (*PGPSigner, error) {
	keyring, err := openpgp.ReadArmoredKeyRing(armoredKey)
	if err != nil {
		return nil, &SigningError{Err: err}
	}

	if len(keyring) == 0 {
		return nil, &SigningError{Err: fmt.Errorf("keyring contains no keys")}
	}

	entity := keyring[0]
	if entity.PrivateKey == nil {
		return nil, &SigningError{Err: fmt.Errorf("keyring contains no private key")}
	}

	return &PGPSigner{entity: entity}, nil
}

// Sign returns a binary detached signature over the reader content.
func (s *PGPSigner) Sign(data io.Reader) ([]byte, error) {
	signature := bytes.NewBuffer(nil)

	if err := openpgp.DetachSign(signature, s.entity, data, nil); err != nil {
		return nil, &SigningError{Err: err}
	}

	return signature.Bytes(), nil
}
