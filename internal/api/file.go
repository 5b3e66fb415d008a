package api

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

const defaultFileType = "application/octet-stream"

// File is an opaque blob selected for upload: a display name, a MIME type and
// a way to read the bytes. Copies share the same underlying source.
type File struct {
	Name string
	Type string
	Path string // empty for in-memory files

	open func() (io.ReadCloser, error)
}

// FileFromPath describes the file at path. The file is not opened until the
// upload reads it.
func FileFromPath(path string) File {
	return File{
		Name: filepath.Base(path),
		Type: typeForName(path),
		Path: path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// FileFromBytes wraps data as a File named name.
func FileFromBytes(name, mimeType string, data []byte) File {
	if strings.TrimSpace(mimeType) == "" {
		mimeType = typeForName(name)
	}
	return File{
		Name: name,
		Type: mimeType,
		open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

// Open returns a reader over the file's bytes.
func (f File) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, fmt.Errorf("file %q has no content", f.Name)
	}
	return f.open()
}

// HasExt reports whether the file name ends with ext, ignoring case.
func (f File) HasExt(ext string) bool {
	return strings.HasSuffix(strings.ToLower(f.Name), strings.ToLower(ext))
}

func (f File) partHeader() textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(UploadField), escapeQuotes(f.Name)))
	contentType := f.Type
	if contentType == "" {
		contentType = defaultFileType
	}
	h.Set("Content-Type", contentType)
	return h
}

func typeForName(name string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		return t
	}
	return defaultFileType
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
