package models

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Fragment kinds accepted at the decoding boundary.
const (
	KindParagraph = "paragraph"
	KindLink      = "link"
)

// Fragment is one unit of post body content. The set of implementations is
// closed: Paragraph, Link, and Unknown for anything else found while decoding.
type Fragment interface {
	Kind() string
	Text() string
	fragment()
}

// Paragraph is a plain text block.
type Paragraph struct {
	Content string
}

// Link is a text block rendered as an anchor. It carries no URL.
type Link struct {
	Content string
}

// Unknown keeps a fragment whose type was not recognized. It renders nothing.
type Unknown struct {
	Type    string
	Content string
}

func (Paragraph) Kind() string   { return KindParagraph }
func (p Paragraph) Text() string { return p.Content }
func (Paragraph) fragment()      {}

func (Link) Kind() string   { return KindLink }
func (l Link) Text() string { return l.Content }
func (Link) fragment()      {}

func (u Unknown) Kind() string { return u.Type }
func (u Unknown) Text() string { return u.Content }
func (Unknown) fragment()      {}

// rawFragment is the untyped wire shape of a fragment.
type rawFragment struct {
	Type    string `yaml:"type" json:"type"`
	Content string `yaml:"content" json:"content"`
}

// NewFragment maps an untyped (type, content) pair onto the closed variant set.
func NewFragment(kind, content string) Fragment {
	switch kind {
	case KindParagraph:
		return Paragraph{Content: content}
	case KindLink:
		return Link{Content: content}
	default:
		return Unknown{Type: kind, Content: content}
	}
}

// Fragments is an ordered fragment sequence that decodes from YAML and JSON.
type Fragments []Fragment

func fromRaw(raw []rawFragment) Fragments {
	out := make(Fragments, 0, len(raw))
	for _, r := range raw {
		out = append(out, NewFragment(r.Type, r.Content))
	}
	return out
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *Fragments) UnmarshalYAML(value *yaml.Node) error {
	var raw []rawFragment
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*f = fromRaw(raw)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Fragments) UnmarshalJSON(data []byte) error {
	var raw []rawFragment
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = fromRaw(raw)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f Fragments) MarshalJSON() ([]byte, error) {
	raw := make([]rawFragment, 0, len(f))
	for _, frag := range f {
		raw = append(raw, rawFragment{Type: frag.Kind(), Content: frag.Text()})
	}
	return json.Marshal(raw)
}
