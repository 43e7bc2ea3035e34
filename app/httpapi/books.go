package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookapp-api/app/features/command/addbook"
	"github.com/AntonStoeckl/bookapp-api/app/features/command/deletebook"
	"github.com/AntonStoeckl/bookapp-api/app/features/command/updatebook"
	"github.com/AntonStoeckl/bookapp-api/app/features/query/getallbooks"
	"github.com/AntonStoeckl/bookapp-api/app/features/query/getbook"
)

func (a *API) addBook(w http.ResponseWriter, r *http.Request) {
	var req addBookRequest
	if err := a.decodeAndValidate(w, r, &req); err != nil {
		badRequest(w)
		return
	}

	// validated as uuid above
	authorID := uuid.MustParse(req.AuthorID)

	a.dispatch(w, r, addbook.BuildCommand(req.Title, authorID, req.ReleaseYear), http.StatusCreated)
}

func (a *API) getAllBooks(w http.ResponseWriter, r *http.Request) {
	a.dispatch(w, r, getallbooks.BuildQuery(), http.StatusOK)
}

func (a *API) getBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w)
		return
	}

	a.dispatch(w, r, getbook.BuildQuery(id), http.StatusOK)
}

func (a *API) updateBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w)
		return
	}

	var req updateBookRequest
	if err := a.decodeAndValidate(w, r, &req); err != nil {
		badRequest(w)
		return
	}

	authorID := uuid.MustParse(req.AuthorID)

	a.dispatch(w, r, updatebook.BuildCommand(id, req.Title, req.Genre, authorID, req.ReleaseYear), http.StatusOK)
}

func (a *API) deleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w)
		return
	}

	a.dispatch(w, r, deletebook.BuildCommand(id), http.StatusOK)
}
