package dto

// PageResp is one page of a cursor-paginated list.
type PageResp[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}
