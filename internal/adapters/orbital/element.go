package orbital

import (
	"bytes"
	"encoding/xml"
)

// element is one node of a request document. The gateway validates
// element position, not just presence, so requests are built as explicit
// ordered trees instead of struct marshaling.
type element struct {
	tag      string
	text     string
	children []element
}

func el(tag, text string) element {
	return element{tag: tag, text: text}
}

func parent(tag string, children ...element) element {
	return element{tag: tag, children: children}
}

func (e element) write(buf *bytes.Buffer) {
	buf.WriteByte('<')
	buf.WriteString(e.tag)
	buf.WriteByte('>')
	if len(e.children) > 0 {
		for _, c := range e.children {
			c.write(buf)
		}
	} else {
		xml.EscapeText(buf, []byte(e.text))
	}
	buf.WriteString("</")
	buf.WriteString(e.tag)
	buf.WriteByte('>')
}

// serialize renders the document with the UTF-8 XML declaration the
// gateway requires.
func serialize(root element) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	root.write(&buf)
	return buf.Bytes()
}
