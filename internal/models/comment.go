package models

// Comment is a single product review as returned by the crawler. Comments are
// sourced externally and never mutated, only read and annotated.
type Comment struct {
	CommentID    string `json:"comment_id"`
	UserName     string `json:"user_name"`
	Rating       int    `json:"rating"`
	CommentText  string `json:"comment_text"`
	CommentTime  string `json:"comment_time"`
	HelpfulCount int    `json:"helpful_count"`
}

// NegativeComment is a Comment annotated with the analysis output for reviews
// classified as negative.
type NegativeComment struct {
	Comment
	Dimensions []string `json:"dimensions"`
	Keywords   string   `json:"keywords"`
}

// CrawlResult is the crawler response for one product and date range.
type CrawlResult struct {
	ProductURL string    `json:"product_url"`
	DateRange  string    `json:"date_range"`
	Comments   []Comment `json:"comments"`
}
