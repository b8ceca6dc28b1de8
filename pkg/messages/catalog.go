package messages

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/report"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Message maps an error code on a control path to display text.
// Text may reference payload parameters as %{name}.
type Message struct {
	Path string `yaml:"path"`
	Code string `yaml:"code"`
	Text string `yaml:"text"`
}

type document struct {
	Messages []Message `yaml:"messages"`
}

// Catalog holds display templates in file order.
type Catalog struct {
	messages []Message
	byPath   map[string][]Message
}

// New builds a catalog from messages. Every message needs a path, code and
// text, and a (path, code) pair may appear only once.
func New(msgs ...Message) (*Catalog, error) {
	c := &Catalog{byPath: make(map[string][]Message)}
	seen := make(map[[2]string]bool, len(msgs))
	for i, m := range msgs {
		if m.Path == "" || m.Code == "" || m.Text == "" {
			return nil, fmt.Errorf("%w: message %d needs path, code and text", ErrInvalidCatalog, i)
		}
		key := [2]string{m.Path, m.Code}
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate message for %s %s", ErrInvalidCatalog, m.Path, m.Code)
		}
		seen[key] = true
		c.messages = append(c.messages, m)
		c.byPath[m.Path] = append(c.byPath[m.Path], m)
	}
	return c, nil
}

// Parse reads a YAML catalog:
//
//	messages:
//	  - path: root.username
//	    code: required
//	    text: Username is required
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return New(doc.Messages...)
}

// Load parses the catalog stored at name in fsys, typically an embed.FS.
func Load(fsys fs.FS, name string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Join(ErrLoadingCatalog, err)
	}
	return Parse(data)
}

// MustLoad is like Load but panics on error. Meant for embedded catalogs.
func MustLoad(fsys fs.FS, name string) *Catalog {
	c, err := Load(fsys, name)
	if err != nil {
		panic(err)
	}
	return c
}

// Messages returns the catalog entries in file order.
func (c *Catalog) Messages() []Message {
	return append([]Message(nil), c.messages...)
}

// Text renders the template for code at path with the given payload.
// It reports false when the catalog has no such template.
func (c *Catalog) Text(path, code string, payload any) (string, bool) {
	for _, m := range c.byPath[path] {
		if m.Code == code {
			return Format(m.Text, validator.Params(payload)), true
		}
	}
	return "", false
}

// Render produces display messages for a report: entries in report order
// and, within an entry, templates in catalog order. Codes without a template
// are skipped.
func (c *Catalog) Render(r report.Report) []string {
	var out []string
	for _, e := range r.Entries {
		if len(e.Outcomes) == 0 {
			continue
		}
		for _, m := range c.byPath[e.Path] {
			for _, o := range e.Outcomes {
				if o.Has(m.Code) {
					out = append(out, Format(m.Text, validator.Params(o.Get(m.Code))))
					break
				}
			}
		}
	}
	return out
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Format substitutes %{name} placeholders from params. Lists are joined
// with ", ". Unknown placeholders are kept as is.
func Format(tmpl string, params map[string]any) string {
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-1]
		val, ok := params[name]
		if !ok {
			return match
		}
		return formatParam(val)
	})
}

func formatParam(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, p := range val {
			parts = append(parts, formatParam(p))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}
