package httpapi

// authorRequest is the body of POST /Authors and PUT /Authors/{id}.
type authorRequest struct {
	FirstName string `json:"firstName" validate:"required,notblank,max=100"`
	LastName  string `json:"lastName" validate:"required,notblank,max=100"`
}

// addBookRequest is the body of POST /Books.
type addBookRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=200"`
	AuthorID    string `json:"authorId" validate:"required,uuid"`
	ReleaseYear int    `json:"releaseYear" validate:"min=1,max=9999"`
}

// updateBookRequest is the body of PUT /Books/{id}.
type updateBookRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Genre       string `json:"genre" validate:"required,notblank,max=50"`
	AuthorID    string `json:"authorId" validate:"required,uuid"`
	ReleaseYear int    `json:"releaseYear" validate:"min=1,max=9999"`
}
