package agmip

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
)

var ErrNothingToZip = errors.New("no files to zip")

// Zip archives paths into a single zip, each under its base name.
func Zip(fs afero.Fs, paths []string) ([]byte, error) {
	if len(paths) == 0 {
		return nil, ErrNothingToZip
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range paths {
		if err := addToZip(fs, zw, p); err != nil {
			zw.Close()
			return nil, fmt.Errorf("zipping %s: %w", p, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addToZip(fs afero.Fs, zw *zip.Writer, path string) error {
	info, err := fs.Stat(path)
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = filepath.Base(path)
	hdr.Method = zip.Deflate

	f, err := fs.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}

// zipName is the download name of an archive of file.
func zipName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)) + ".zip"
}
