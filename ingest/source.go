package ingest

import (
	"io"
	"mime/multipart"
)

// Source is one submitted file: its name, the content type the client
// declared for it, and a way to read it.
type Source interface {
	Name() string
	ContentType() string
	Open() (io.ReadCloser, error)
}

type fileHeaderSource struct {
	fh *multipart.FileHeader
}

// FromFileHeader adapts an uploaded multipart file.
func FromFileHeader(fh *multipart.FileHeader) Source {
	return fileHeaderSource{fh: fh}
}

// FromFileHeaders adapts uploaded files, keeping their order.
func FromFileHeaders(fhs []*multipart.FileHeader) []Source {
	out := make([]Source, 0, len(fhs))
	for _, fh := range fhs {
		if fh != nil {
			out = append(out, FromFileHeader(fh))
		}
	}
	return out
}

func (s fileHeaderSource) Name() string        { return s.fh.Filename }
func (s fileHeaderSource) ContentType() string { return s.fh.Header.Get("Content-Type") }

func (s fileHeaderSource) Open() (io.ReadCloser, error) {
	return s.fh.Open()
}
