package dto

import "strings"

// CreatePostReq accepts the post text as `text`, or as `postInput` when sent
// from the legacy form.
type CreatePostReq struct {
	Text      string `json:"text"      form:"text"      validate:"max=5000"`
	PostInput string `json:"postInput" form:"postInput" validate:"max=5000"`
	ImageURL  string `json:"imageUrl"  form:"imageUrl"  validate:"omitempty,url,max=2048"`
}

// Body returns whichever text field was filled in.
func (r CreatePostReq) Body() string {
	if text := strings.TrimSpace(r.Text); text != "" {
		return text
	}
	return strings.TrimSpace(r.PostInput)
}

type CreateCommentReq struct {
	Text string `json:"text" validate:"required,max=2000"`
}
