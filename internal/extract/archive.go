package extract

import (
	"archive/tar"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

var gzipMagic = []byte{0x1f, 0x8b}

// untar unpacks a tar stream, transparently removing gzip compression.
// It returns the unpacked location of the last entry carrying the
// .mapeosettings suffix, if any; such entries are not re-extracted.
func (e *Extractor) untar(ctx context.Context, archivePath, dest string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var r io.Reader = br
	if magic, _ := br.Peek(len(gzipMagic)); string(magic) == string(gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return "", fmt.Errorf("invalid gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	var nested string
	tr := tar.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("invalid tar stream: %w", err)
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return "", err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return "", err
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return "", err
			}
			if strings.HasSuffix(hdr.Name, deconstruct.FormatMapeoSettings.Suffix()) {
				nested = target
			}
		default:
			e.logger.Verbose("Skipping tar entry %s (type %q)", hdr.Name, hdr.Typeflag)
		}
	}
	return nested, nil
}

// unzip unpacks a zip archive. Later entries overwrite earlier ones with the same name.
func (e *Extractor) unzip(ctx context.Context, archivePath, dest string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("invalid zip archive: %w", err)
	}
	defer zr.Close()

	for _, zf := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		target, err := safeJoin(dest, zf.Name)
		if err != nil {
			return err
		}

		if zf.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}

		rc, err := zf.Open()
		if err != nil {
			return fmt.Errorf("failed to open zip entry %s: %w", zf.Name, err)
		}
		err = writeEntry(target, rc, zf.Mode().Perm())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// safeJoin resolves an archive entry name beneath dest, rejecting names that escape it.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry %q escapes extraction directory", name)
	}
	return target, nil
}

func writeEntry(target string, r io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm|0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return out.Close()
}
