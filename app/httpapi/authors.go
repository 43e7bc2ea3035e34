package httpapi

import (
	"net/http"

	"github.com/AntonStoeckl/bookapp-api/app/features/command/addauthor"
	"github.com/AntonStoeckl/bookapp-api/app/features/command/deleteauthor"
	"github.com/AntonStoeckl/bookapp-api/app/features/command/updateauthor"
	"github.com/AntonStoeckl/bookapp-api/app/features/query/getallauthors"
	"github.com/AntonStoeckl/bookapp-api/app/features/query/getauthor"
)

func (a *API) addAuthor(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if err := a.decodeAndValidate(w, r, &req); err != nil {
		badRequest(w)
		return
	}

	a.dispatch(w, r, addauthor.BuildCommand(req.FirstName, req.LastName), http.StatusCreated)
}

func (a *API) getAllAuthors(w http.ResponseWriter, r *http.Request) {
	a.dispatch(w, r, getallauthors.BuildQuery(), http.StatusOK)
}

func (a *API) getAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w)
		return
	}

	a.dispatch(w, r, getauthor.BuildQuery(id), http.StatusOK)
}

func (a *API) updateAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w)
		return
	}

	var req authorRequest
	if err := a.decodeAndValidate(w, r, &req); err != nil {
		badRequest(w)
		return
	}

	a.dispatch(w, r, updateauthor.BuildCommand(id, req.FirstName, req.LastName), http.StatusOK)
}

func (a *API) deleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w)
		return
	}

	a.dispatch(w, r, deleteauthor.BuildCommand(id), http.StatusOK)
}
