package binder

import (
	"fmt"
	"net/http"
	"strings"
)

// DefaultMaxMemory is the memory limit for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20

// Form binds application/x-www-form-urlencoded or multipart/form-data
// values into the struct v using `form:"name"` tags. Fields without a tag
// bind to their lowercased name; `form:"-"` skips a field. Uploaded files
// are ignored.
func Form(r *http.Request, v any) error {
	var values map[string][]string
	switch mt := mediaType(r); {
	case mt == "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		values = r.PostForm
	case strings.HasPrefix(mt, "multipart/form-data"):
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		values = r.MultipartForm.Value
	default:
		return unsupported(mt, "application/x-www-form-urlencoded or multipart/form-data")
	}

	if err := decodeValues(v, "form", values); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
	}
	trimStrings(v)
	return nil
}

// Bind picks JSON or Form from the request content type.
func Bind(r *http.Request, v any) error {
	if mediaType(r) == "application/json" {
		return JSON(r, v)
	}
	return Form(r, v)
}

func mediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if i := strings.Index(ct, ";"); i != -1 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

func unsupported(got, want string) error {
	if got == "" {
		return fmt.Errorf("%w: expected %s", ErrMissingContentType, want)
	}
	return fmt.Errorf("%w: got %s, expected %s", ErrUnsupportedMediaType, got, want)
}
