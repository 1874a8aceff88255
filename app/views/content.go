package views

import (
	"iter"

	"postfeed/app/models"
)

// Node is one rendered content block. Key is the fragment text and must be
// unique within a post.
type Node struct {
	Key  string `json:"key"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// RenderContent yields one node per recognized fragment, in input order.
// Fragments of any other kind yield nothing.
func RenderContent(fragments []models.Fragment) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, f := range fragments {
			var n Node
			switch f := f.(type) {
			case models.Paragraph:
				n = Node{Key: f.Content, Kind: models.KindParagraph, Text: f.Content}
			case models.Link:
				n = Node{Key: f.Content, Kind: models.KindLink, Text: f.Content}
			default:
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}
