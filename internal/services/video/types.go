package video

// CreateInput is the metadata sent with an upload
type CreateInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Privacy     string `json:"privacy" validate:"omitempty,oneof=public private"`
	Thumbnail   string `json:"thumbnail" validate:"max=2048"`
}

// Page limits a listing. A zero Limit returns everything.
type Page struct {
	Limit  int
	Offset int
}

const MaxPageSize = 100
