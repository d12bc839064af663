package mailintake

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Decoder turns one binary attachment format into best-effort plain text.
// Implementations never return an error: decode failures come back as a
// short bracketed note inside the text, which the extractors simply read
// past. That keeps one corrupt attachment from sinking the whole email.
type Decoder interface {
	Decode(content []byte) string
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(content []byte) string

func (f DecoderFunc) Decode(content []byte) string { return f(content) }

// AttachmentDecoders maps lowercase file extensions to decoders. Plain-text
// formats are built in; binary formats (pdf, docx) are registered by the
// caller so the intake package carries no document-format dependencies.
type AttachmentDecoders struct {
	byExt map[string]Decoder
}

func NewAttachmentDecoders() *AttachmentDecoders {
	d := &AttachmentDecoders{byExt: make(map[string]Decoder)}
	d.Register(".txt", DecoderFunc(decodePlainText))
	d.Register(".csv", DecoderFunc(decodePlainText))
	return d
}

func (d *AttachmentDecoders) Register(ext string, dec Decoder) {
	d.byExt[strings.ToLower(ext)] = dec
}

// DecodeAttachment decodes one attachment by filename extension. Unknown
// extensions yield an empty string: images and the like carry no order text.
func (d *AttachmentDecoders) DecodeAttachment(filename string, content []byte) string {
	dec, ok := d.byExt[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return ""
	}
	return dec.Decode(content)
}

// CombineAttachments decodes every attachment and concatenates the results,
// each preceded by a filename marker line.
func (d *AttachmentDecoders) CombineAttachments(files []AttachmentFile) string {
	var b strings.Builder
	for _, f := range files {
		text := d.DecodeAttachment(f.Name, f.Content)
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "\n--- %s ---\n%s", f.Name, text)
	}
	return b.String()
}

// AttachmentFile is one decoded-from-MIME attachment.
type AttachmentFile struct {
	Name    string
	Content []byte
}

// decodePlainText handles txt/csv bodies. Russian senders still mail
// windows-1251 files, so invalid UTF-8 is retried through that charmap.
func decodePlainText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	decoded, err := charmap.Windows1251.NewDecoder().Bytes(content)
	if err != nil {
		return "[text decoding error]"
	}
	return string(decoded)
}
