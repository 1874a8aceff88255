package models

import (
	"errors"
	"slices"
)

// SeedComment is the comment every freshly mounted instance starts with.
const SeedComment = "Post muito bacana"

// ErrEmptyDraft is returned when submitting a draft of length zero.
var ErrEmptyDraft = errors.New("draft is empty")

// CommentState is the private state of one post instance. Values are treated
// as immutable snapshots: every transition returns a new value and never
// shares the Comments backing array with its input.
type CommentState struct {
	Draft      string   `json:"draft"`
	Comments   []string `json:"comments"`
	Validation string   `json:"validation,omitempty"`
}

// NewCommentState returns the state of a freshly mounted instance.
func NewCommentState(seed string) CommentState {
	return CommentState{Comments: []string{seed}}
}

// AppendComment returns comments with text added at the end.
func AppendComment(comments []string, text string) []string {
	out := make([]string, 0, len(comments)+1)
	out = append(out, comments...)
	return append(out, text)
}

// RemoveComment returns comments without any element equal to value.
// Every duplicate of value goes, not just one.
func RemoveComment(comments []string, value string) []string {
	return slices.DeleteFunc(slices.Clone(comments), func(c string) bool {
		return c == value
	})
}

// Input binds text to the draft and drops any custom validation message.
func (s CommentState) Input(text string) CommentState {
	s.Comments = slices.Clone(s.Comments)
	s.Draft = text
	s.Validation = ""
	return s
}

// Invalid records the message shown for a rejected submission.
func (s CommentState) Invalid(message string) CommentState {
	s.Comments = slices.Clone(s.Comments)
	s.Validation = message
	return s
}

// Submit appends the draft and clears it. An empty draft leaves the state
// untouched and returns ErrEmptyDraft. Only the raw length counts, so a
// whitespace-only draft is accepted.
func (s CommentState) Submit() (CommentState, error) {
	if len(s.Draft) == 0 {
		return s, ErrEmptyDraft
	}
	return CommentState{
		Comments: AppendComment(s.Comments, s.Draft),
	}, nil
}

// Delete removes every comment equal to value.
func (s CommentState) Delete(value string) CommentState {
	s.Comments = RemoveComment(s.Comments, value)
	return s
}

// SubmitDisabled reports whether the submit control is disabled.
func (s CommentState) SubmitDisabled() bool {
	return len(s.Draft) == 0
}
