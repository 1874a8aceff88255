package models

import (
	"errors"
	"fmt"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.PublishedAt.IsZero() {
		return errors.New("publishedAt cannot be zero")
	}

	// Fragment text doubles as its rendering key.
	seen := make(map[string]struct{}, len(p.Content))
	for _, f := range p.Content {
		if _, dup := seen[f.Text()]; dup {
			return fmt.Errorf("duplicate fragment content %q", f.Text())
		}
		seen[f.Text()] = struct{}{}
	}

	return nil
}
