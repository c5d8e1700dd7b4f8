package index

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/openpgp"
	"golang.org/x/crypto/openpgp/clearsign"
	"pault.ag/go/debian/control"
)

// ErrBadSignature is returned when an InRelease file does not verify
// against the configured keyring.
var ErrBadSignature = errors.New("bad release signature")

var clearsignHeader = []byte("-----BEGIN PGP SIGNED MESSAGE-----")

// Release is the archive metadata of a Release or InRelease file.
type Release struct {
	Origin        string
	Label         string
	Suite         string
	Version       string
	Codename      string
	Components    []string
	Architectures []string

	NotAutomatic         bool
	ButAutomaticUpgrades bool

	// Signed reports whether the file was clearsigned. Signer is the
	// verifying entity when a keyring was supplied.
	Signed bool
	Signer *openpgp.Entity
}

// ParseRelease reads a Release file, or a clearsigned InRelease file. With a
// nil keyring, signatures are stripped without being checked.
func ParseRelease(r io.Reader, keyring openpgp.EntityList) (*Release, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading release: %w", err)
	}

	rel := &Release{}
	if bytes.HasPrefix(bytes.TrimSpace(data), clearsignHeader) {
		block, _ := clearsign.Decode(bytes.TrimSpace(data))
		if block == nil {
			return nil, fmt.Errorf("%w: malformed clearsigned message", ErrBadSignature)
		}
		rel.Signed = true
		if keyring != nil {
			signer, err := openpgp.CheckDetachedSignature(keyring, bytes.NewReader(block.Bytes), block.ArmoredSignature.Body)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadSignature, err)
			}
			rel.Signer = signer
		}
		data = block.Plaintext
	}

	reader, err := control.NewParagraphReader(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("reading release: %w", err)
	}
	para, err := reader.Next()
	if err != nil {
		return nil, fmt.Errorf("reading release: %w", err)
	}

	get := func(key string) string {
		return strings.TrimSpace(para.Values[key])
	}
	rel.Origin = get("Origin")
	rel.Label = get("Label")
	rel.Suite = get("Suite")
	rel.Version = get("Version")
	rel.Codename = get("Codename")
	rel.Components = strings.Fields(get("Components"))
	rel.Architectures = strings.Fields(get("Architectures"))
	rel.NotAutomatic = strings.EqualFold(get("NotAutomatic"), "yes")
	rel.ButAutomaticUpgrades = strings.EqualFold(get("ButAutomaticUpgrades"), "yes")
	return rel, nil
}
