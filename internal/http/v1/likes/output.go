package likes

// LikeOutput wraps a single like.
type LikeOutput struct {
	Body Like
}

// ListData lists liked recipes, newest first.
type ListData struct {
	Likes []Like `json:"likes" doc:"Liked recipes, newest first"`
	Count int    `json:"count" doc:"Number of liked recipes" example:"3"`
}

// LikesListOutput for GET /likes
type LikesListOutput struct {
	Body ListData
}
