package minutes

// SaveDiscussionPointsRequest updates the manual minutes text
type SaveDiscussionPointsRequest struct {
	DiscussionPoints string `json:"discussion_points" validate:"required"`
}
