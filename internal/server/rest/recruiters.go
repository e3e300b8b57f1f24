package rest

import (
	"net/http"

	"github.com/dmitrijs2005/jobtracker/internal/server/httpapi"
)

func (s *HTTPServer) listRecruiters(w http.ResponseWriter, r *http.Request) error {
	user := currentUser(r.Context())
	limit, offset := parsePagination(r.URL.Query())

	page, err := s.recruiters.List(r.Context(), user.ID, limit, offset)
	if err != nil {
		return internalError(recruiterMessages.list, err)
	}

	writeJSON(w, http.StatusOK, httpapi.NewListResponse(page.Items, page.Total, limit, offset))
	return nil
}

func (s *HTTPServer) getRecruiter(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, recruiterMessages.invalidID)
	if err != nil {
		return err
	}

	rec, err := s.recruiters.Get(r.Context(), currentUser(r.Context()).ID, id)
	if err != nil {
		return recruiterMessages.fail(err, recruiterMessages.get)
	}

	writeJSON(w, http.StatusOK, rec)
	return nil
}

func (s *HTTPServer) createRecruiter(w http.ResponseWriter, r *http.Request) error {
	var req httpapi.CreateRecruiterRequest
	if err := s.bind(r, &req); err != nil {
		return err
	}

	rec, err := s.recruiters.Create(r.Context(), currentUser(r.Context()).ID, req.Model())
	if err != nil {
		return recruiterMessages.fail(err, recruiterMessages.create)
	}

	writeJSON(w, http.StatusCreated, rec)
	return nil
}

func (s *HTTPServer) updateRecruiter(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, recruiterMessages.invalidID)
	if err != nil {
		return err
	}

	var req httpapi.PatchRecruiterRequest
	if err := s.bind(r, &req); err != nil {
		return err
	}

	rec, err := s.recruiters.Update(r.Context(), currentUser(r.Context()).ID, id, req.Patch())
	if err != nil {
		return recruiterMessages.fail(err, recruiterMessages.update)
	}

	writeJSON(w, http.StatusOK, rec)
	return nil
}

func (s *HTTPServer) deleteRecruiter(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, recruiterMessages.invalidID)
	if err != nil {
		return err
	}

	deleted, err := s.recruiters.Delete(r.Context(), currentUser(r.Context()).ID, id)
	if err != nil {
		return internalError(recruiterMessages.delete, err)
	}
	if !deleted {
		return httpError(http.StatusNotFound, recruiterMessages.notFound)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
