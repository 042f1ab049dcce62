package sheet

import (
	"bufio"
	"errors"
	"io"
	"net/http"
	"strings"
)

// sniffLen is the prefix http.DetectContentType looks at.
const sniffLen = 512

const (
	mimeZip  = "application/zip"
	mimeText = "text/"
)

// sniff checks the magic bytes of r against the format named by ext and
// returns a reader that still yields the whole content.
func sniff(r io.Reader, ext string) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, err
	}

	mime := http.DetectContentType(head)
	switch ext {
	case ".xlsx", ".xlsm":
		if mime != mimeZip {
			return nil, ErrContentMismatch
		}
	case ".csv":
		if !strings.HasPrefix(mime, mimeText) {
			return nil, ErrContentMismatch
		}
	}
	return br, nil
}
