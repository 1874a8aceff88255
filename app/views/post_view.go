package views

import (
	"slices"

	"postfeed/app/datefmt"
	"postfeed/app/models"
)

// CommentView is the data handed to the single-comment template.
type CommentView struct {
	Content      string `json:"content"`
	DeleteAction string `json:"-"`
}

// PostView is everything the post template needs, derived from the post
// props and one instance's state.
type PostView struct {
	Post                *models.Post  `json:"post"`
	InstanceID          string        `json:"instanceId"`
	PublishedAtISO      string        `json:"publishedAtIso"`
	PublishedAtAbsolute string        `json:"publishedAtAbsolute"`
	PublishedAtRelative string        `json:"publishedAtRelative"`
	Content             []Node        `json:"content"`
	Draft               string        `json:"draft"`
	Validation          string        `json:"validation,omitempty"`
	RequiredMessage     string        `json:"-"`
	SubmitDisabled      bool          `json:"submitDisabled"`
	SubmitAction        string        `json:"-"`
	Comments            []CommentView `json:"comments"`
}

// IndexView is the data for the post list page.
type IndexView struct {
	Posts []*models.Post `json:"posts"`
}

// BuildPostView derives the view of inst rendered for post. Date labels are
// recomputed on every call.
func BuildPostView(post *models.Post, inst *models.Instance, f *datefmt.Formatter, requiredMessage string) (*PostView, error) {
	iso, err := datefmt.ISO(post.PublishedAt)
	if err != nil {
		return nil, err
	}
	absolute, err := f.Absolute(post.PublishedAt)
	if err != nil {
		return nil, err
	}
	relative, err := f.Relative(post.PublishedAt)
	if err != nil {
		return nil, err
	}

	base := "/instances/" + inst.ID
	comments := make([]CommentView, 0, len(inst.State.Comments))
	for _, c := range inst.State.Comments {
		comments = append(comments, CommentView{
			Content:      c,
			DeleteAction: base + "/comments/delete",
		})
	}

	return &PostView{
		Post:                post,
		InstanceID:          inst.ID,
		PublishedAtISO:      iso,
		PublishedAtAbsolute: absolute,
		PublishedAtRelative: relative,
		Content:             slices.Collect(RenderContent(post.Content)),
		Draft:               inst.State.Draft,
		Validation:          inst.State.Validation,
		RequiredMessage:     requiredMessage,
		SubmitDisabled:      inst.State.SubmitDisabled(),
		SubmitAction:        base + "/comments",
		Comments:            comments,
	}, nil
}
