// Package cas computes the content digests reported for written output.
// Every digest carries both SHA-256 and BLAKE3 of the same bytes.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// HashResult contains both SHA-256 and BLAKE3 hashes of a blob.
type HashResult struct {
	SHA256 string `json:"sha256"`
	BLAKE3 string `json:"blake3"`
	Size   int64  `json:"size"`
}

// Hash computes the SHA-256 hash of the given data.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Blake3Hash computes the BLAKE3 hash of the given data.
func Blake3Hash(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Digest hashes everything written to it. It is an io.Writer so it can sit
// beside a destination in an io.MultiWriter.
type Digest struct {
	sha  hash.Hash
	b3   *blake3.Hasher
	size int64
}

// NewDigest returns an empty Digest.
func NewDigest() *Digest {
	return &Digest{sha: sha256.New(), b3: blake3.New()}
}

// Write implements io.Writer. It never fails.
func (d *Digest) Write(p []byte) (int, error) {
	d.sha.Write(p)
	d.b3.Write(p)
	d.size += int64(len(p))
	return len(p), nil
}

// Sum returns the digests of all bytes written so far.
func (d *Digest) Sum() *HashResult {
	return &HashResult{
		SHA256: hex.EncodeToString(d.sha.Sum(nil)),
		BLAKE3: hex.EncodeToString(d.b3.Sum(nil)),
		Size:   d.size,
	}
}

// HashFile computes the digests of the file at path.
func HashFile(path string) (*HashResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := NewDigest()
	if _, err := io.Copy(d, f); err != nil {
		return nil, err
	}
	return d.Sum(), nil
}
