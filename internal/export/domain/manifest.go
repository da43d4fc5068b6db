// Package domain defines the export archive format: the cleartext manifest,
// the encrypted bundle and the archive member names.
package domain

import (
	"encoding/json"

	apperrors "github.com/jamesandrewmyers/memento/internal/errors"
)

// ManifestVersion is the current archive format version.
const ManifestVersion = "1.0"

// Archive member names. Every export archive contains exactly these three
// files and nothing else.
const (
	ManifestFileName = "manifest.json"
	BundleFileName   = "export.enc"
	KeyFileName      = "key.enc"
)

// CryptoParams names the ciphers used by an archive and carries the frame
// parameters of export.enc, so a recipient can decrypt without parsing the
// binary frame.
type CryptoParams struct {
	// Cipher is the symmetric cipher sealing export.enc.
	Cipher string `json:"cipher"`
	// KeyWrap is the asymmetric scheme protecting key.enc.
	KeyWrap string `json:"keyWrap"`
	// Nonce is the base64 encoding of the 12-byte frame nonce.
	Nonce string `json:"nonce"`
	// Tag is the base64 encoding of the 16-byte authentication tag.
	Tag string `json:"tag"`
}

// Manifest is the cleartext metadata member of an export archive. It mirrors
// the note's metadata so a recipient can preview the export without
// decrypting anything.
type Manifest struct {
	Version   string       `json:"version"`
	NoteID    string       `json:"noteId"`
	Title     string       `json:"title"`
	Tags      []string     `json:"tags"`
	CreatedAt string       `json:"createdAt"`
	UpdatedAt string       `json:"updatedAt"`
	Pinned    bool         `json:"pinned"`
	Crypto    CryptoParams `json:"crypto"`
}

// Encode serializes the manifest as UTF-8 JSON.
func (m *Manifest) Encode() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode manifest")
	}
	return data, nil
}

// DecodeManifest parses a manifest.json member.
func DecodeManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode manifest")
	}
	return &m, nil
}
