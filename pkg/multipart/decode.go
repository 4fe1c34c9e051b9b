// Package multipart decodes fully buffered multipart/form-data bodies.
//
// Decoding is lenient: a part without a header block or a name is skipped,
// and a body without any boundary marker yields an empty form. Callers
// decide which fields are required.
package multipart

import (
	"bytes"
	"errors"
	"mime"
	"strings"
)

// ErrNoBoundary indicates a Content-Type without a boundary parameter.
var ErrNoBoundary = errors.New("no boundary found")

var (
	crlf      = []byte("\r\n")
	headerEnd = []byte("\r\n\r\n")
)

// Field is one decoded part.
type Field struct {
	Name        string
	Filename    string
	ContentType string
	// File is set when the part carried a filename parameter. File data is
	// kept byte for byte; text data is trimmed.
	File bool
	Data []byte
}

// Text returns the field value as a string.
func (f Field) Text() string {
	return string(f.Data)
}

// Form maps field names to their last occurrence in the body.
type Form map[string]Field

// Value returns a text field.
func (f Form) Value(name string) (string, bool) {
	field, ok := f[name]
	if !ok || field.File {
		return "", false
	}
	return field.Text(), true
}

// File returns a file field.
func (f Form) File(name string) (Field, bool) {
	field, ok := f[name]
	if !ok || !field.File {
		return Field{}, false
	}
	return field, true
}

// Boundary extracts the boundary token from a Content-Type header value.
func Boundary(contentType string) (string, error) {
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if b := params["boundary"]; b != "" {
			return b, nil
		}
		return "", ErrNoBoundary
	}
	// Fall back to a plain split for headers mime rejects.
	_, b, ok := strings.Cut(contentType, "boundary=")
	if b, _, _ = strings.Cut(b, ";"); !ok || strings.TrimSpace(b) == "" {
		return "", ErrNoBoundary
	}
	return strings.Trim(strings.TrimSpace(b), `"`), nil
}

// Decode splits body on "--" + boundary and decodes every part between two
// markers. The preamble before the first marker and everything after the
// last one (including the closing "--") are ignored.
func Decode(body []byte, boundary string) Form {
	form := Form{}
	if boundary == "" {
		return form
	}
	marker := []byte("--" + boundary)

	start := bytes.Index(body, marker)
	if start < 0 {
		return form
	}
	for {
		start += len(marker)
		next := bytes.Index(body[start:], marker)
		if next < 0 {
			break
		}
		part := body[start : start+next]
		part = bytes.TrimPrefix(part, crlf)
		part = bytes.TrimSuffix(part, crlf)
		if len(part) > 0 {
			if field, ok := decodePart(part); ok {
				form[field.Name] = field
			}
		}
		start += next
	}
	return form
}

func decodePart(part []byte) (Field, bool) {
	i := bytes.Index(part, headerEnd)
	if i < 0 {
		return Field{}, false
	}
	headers, data := string(part[:i]), part[i+len(headerEnd):]

	var field Field
	for _, line := range strings.Split(headers, "\r\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "content-disposition":
			params := dispositionParams(value)
			field.Name = params["name"]
			if filename, ok := params["filename"]; ok {
				field.Filename = filename
				field.File = true
			}
		case "content-type":
			field.ContentType = strings.TrimSpace(value)
		}
	}
	if field.Name == "" {
		return Field{}, false
	}

	if field.File {
		field.Data = bytes.Clone(data)
	} else {
		field.Data = bytes.TrimSpace(bytes.TrimSuffix(data, crlf))
		field.Data = bytes.Clone(field.Data)
	}
	return field, true
}

// dispositionParams parses `form-data; name="a"; filename='b.jpg'`.
// Parameter names are case-insensitive; values may be double-quoted,
// single-quoted or bare. Quoted values may contain ';'.
func dispositionParams(value string) map[string]string {
	params := map[string]string{}
	s := value
	for len(s) > 0 {
		s = strings.TrimLeft(s, " \t;")
		eq := strings.IndexAny(s, "=;")
		if eq < 0 {
			break
		}
		if s[eq] == ';' {
			// A bare token such as "form-data".
			s = s[eq+1:]
			continue
		}
		key := strings.ToLower(strings.TrimSpace(s[:eq]))
		s = strings.TrimLeft(s[eq+1:], " \t")

		var val string
		if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
			quote := s[0]
			end := strings.IndexByte(s[1:], quote)
			if end < 0 {
				val, s = s[1:], ""
			} else {
				val, s = s[1:1+end], s[2+end:]
			}
		} else {
			end := strings.IndexByte(s, ';')
			if end < 0 {
				val, s = strings.TrimSpace(s), ""
			} else {
				val, s = strings.TrimSpace(s[:end]), s[end+1:]
			}
		}
		if key != "" {
			params[key] = val
		}
	}
	return params
}
