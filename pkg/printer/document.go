package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Font size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // Double width + double height
	FontWide   = 0x10 // Double width only
	FontTall   = 0x01 // Double height only
)

// DefaultWidth fits 58mm paper
const DefaultWidth = 32

// Document lays out a receipt once and renders it either as an ESC/POS byte
// stream for a thermal printer or as plain text for the share sheet. In plain
// text mode control commands are dropped and key/value rows read "Key: value".
type Document struct {
	buf    bytes.Buffer
	width  int
	escpos bool
}

// NewDocument creates an ESC/POS document. Common widths: 32 for 58mm paper,
// 48 for 80mm paper.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = DefaultWidth
	}
	d := &Document{width: charWidth, escpos: true}
	d.Init()
	return d
}

// NewTextDocument creates a plain-text document
func NewTextDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = DefaultWidth
	}
	return &Document{width: charWidth}
}

// IsESCPOS reports whether the document emits printer commands
func (d *Document) IsESCPOS() bool {
	return d.escpos
}

func (d *Document) command(b ...byte) *Document {
	if d.escpos {
		d.buf.Write(b)
	}
	return d
}

// Init sends ESC @ (initialize printer).
func (d *Document) Init() *Document {
	return d.command(ESC, '@')
}

// LineFeed ends the current line.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	return d.command(ESC, 'a', byte(align))
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	return d.command(ESC, 'E', b)
}

// SetFontSize sets the character size.
func (d *Document) SetFontSize(size byte) *Document {
	return d.command(GS, '!', size)
}

// Text writes a line of text.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// TextF writes a formatted line of text.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Title writes a bold, centered heading.
func (d *Document) Title(s string) *Document {
	return d.SetAlign(AlignCenter).SetBold(true).Text(s).SetBold(false).SetAlign(AlignLeft)
}

// Separator prints a full-width rule.
func (d *Document) Separator(char byte) *Document {
	return d.Text(strings.Repeat(string(char), d.width))
}

// KeyValue prints a key and its value. On paper the value is right-aligned.
func (d *Document) KeyValue(key, value string) *Document {
	if !d.escpos {
		return d.Text(key + ": " + value)
	}
	spaces := d.width - len(key) - len(value)
	if spaces < 1 {
		spaces = 1
	}
	return d.Text(key + strings.Repeat(" ", spaces) + value)
}

// Cut sends the full paper cut command.
func (d *Document) Cut() *Document {
	return d.command(GS, 'V', 0x00)
}

// Bytes returns the rendered document.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// String returns the rendered document as text.
func (d *Document) String() string {
	return d.buf.String()
}
