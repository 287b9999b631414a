package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// CopyFileVerified copies src to dst and confirms the destination matches
// the source byte for byte. The source is hashed while it streams; the
// destination is reopened and hashed after the copy lands, so the check
// covers what actually reached disk. A mismatched dst is removed.
func CopyFileVerified(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	srcHash := sha256.New()
	written, err := io.Copy(out, io.TeeReader(in, srcHash))
	if err != nil {
		out.Close()
		return fmt.Errorf("copy: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close destination: %w", err)
	}

	dstSum, dstSize, err := hashFile(dst)
	if err != nil {
		return fmt.Errorf("verify destination: %w", err)
	}
	if dstSize != written {
		os.Remove(dst)
		return fmt.Errorf("verify destination: wrote %d bytes, found %d", written, dstSize)
	}
	if !bytes.Equal(srcHash.Sum(nil), dstSum) {
		os.Remove(dst)
		return fmt.Errorf("verify destination: checksum mismatch after copy")
	}
	return nil
}

func hashFile(path string) ([]byte, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return nil, 0, err
	}
	return h.Sum(nil), n, nil
}
