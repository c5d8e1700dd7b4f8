package core

import (
	"bytes"
	"strings"

	"pault.ag/go/debian/control"
)

// RecordParser reads descriptive fields from the control stanza behind a
// version-file. Every call parses the stanza again from the universe's
// resident index data; callers that need a field repeatedly should keep the
// result. Missing fields, and parsers obtained from an invalid version-file,
// yield "".
type RecordParser struct {
	stanza []byte
}

// Field returns the value of the named control field. Multi-line values
// keep one line per continuation line, with the leading space removed and
// " ." lines turned into empty lines.
func (rp RecordParser) Field(name string) string {
	para, ok := rp.paragraph()
	if !ok {
		return ""
	}
	if v, ok := para.Values[name]; ok {
		return strings.TrimRight(v, "\n")
	}
	for key, v := range para.Values {
		if strings.EqualFold(key, name) {
			return strings.TrimRight(v, "\n")
		}
	}
	return ""
}

// ShortDescription returns the synopsis line of the Description field.
func (rp RecordParser) ShortDescription() string {
	short, _ := splitDescription(rp.description())
	return short
}

// LongDescription returns the extended description, without the synopsis.
func (rp RecordParser) LongDescription() string {
	_, long := splitDescription(rp.description())
	return long
}

func (rp RecordParser) Maintainer() string {
	return rp.Field("Maintainer")
}

func (rp RecordParser) Homepage() string {
	return rp.Field("Homepage")
}

// Filename returns the pool path of the .deb, relative to the archive root.
func (rp RecordParser) Filename() string {
	return rp.Field("Filename")
}

func (rp RecordParser) SHA256() string {
	return rp.Field("SHA256")
}

// Raw returns the stanza text exactly as stored.
func (rp RecordParser) Raw() string {
	return string(rp.stanza)
}

func (rp RecordParser) description() string {
	if d := rp.Field("Description"); d != "" {
		return d
	}
	// Translated indexes carry Description-<lang> instead.
	para, ok := rp.paragraph()
	if !ok {
		return ""
	}
	for _, key := range para.Order {
		if strings.HasPrefix(key, "Description-") && key != "Description-md5" {
			return strings.TrimRight(para.Values[key], "\n")
		}
	}
	return ""
}

func (rp RecordParser) paragraph() (*control.Paragraph, bool) {
	if len(rp.stanza) == 0 {
		return nil, false
	}
	reader, err := control.NewParagraphReader(bytes.NewReader(rp.stanza), nil)
	if err != nil {
		return nil, false
	}
	para, err := reader.Next()
	if err != nil || para == nil {
		return nil, false
	}
	return para, true
}

func splitDescription(desc string) (short, long string) {
	short, long, _ = strings.Cut(desc, "\n")
	return strings.TrimSpace(short), long
}
