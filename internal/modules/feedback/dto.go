package feedback

type CreateFeedbackRequest struct {
	AuthorID int64  `json:"-"`
	MatchID  int64  `json:"match_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required"`
	Comment  string `json:"comment"`
}
