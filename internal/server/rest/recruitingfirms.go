package rest

import (
	"net/http"

	"github.com/dmitrijs2005/jobtracker/internal/server/httpapi"
)

func (s *HTTPServer) listRecruitingFirms(w http.ResponseWriter, r *http.Request) error {
	user := currentUser(r.Context())
	limit, offset := parsePagination(r.URL.Query())

	page, err := s.firms.List(r.Context(), user.ID, limit, offset)
	if err != nil {
		return internalError(firmMessages.list, err)
	}

	writeJSON(w, http.StatusOK, httpapi.NewListResponse(page.Items, page.Total, limit, offset))
	return nil
}

func (s *HTTPServer) getRecruitingFirm(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, firmMessages.invalidID)
	if err != nil {
		return err
	}

	firm, err := s.firms.Get(r.Context(), currentUser(r.Context()).ID, id)
	if err != nil {
		return firmMessages.fail(err, firmMessages.get)
	}

	writeJSON(w, http.StatusOK, firm)
	return nil
}

func (s *HTTPServer) createRecruitingFirm(w http.ResponseWriter, r *http.Request) error {
	var req httpapi.CreateRecruitingFirmRequest
	if err := s.bind(r, &req); err != nil {
		return err
	}

	firm, err := s.firms.Create(r.Context(), currentUser(r.Context()).ID, req.Model())
	if err != nil {
		return firmMessages.fail(err, firmMessages.create)
	}

	writeJSON(w, http.StatusCreated, firm)
	return nil
}

func (s *HTTPServer) updateRecruitingFirm(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, firmMessages.invalidID)
	if err != nil {
		return err
	}

	var req httpapi.PatchRecruitingFirmRequest
	if err := s.bind(r, &req); err != nil {
		return err
	}

	firm, err := s.firms.Update(r.Context(), currentUser(r.Context()).ID, id, req.Patch())
	if err != nil {
		return firmMessages.fail(err, firmMessages.update)
	}

	writeJSON(w, http.StatusOK, firm)
	return nil
}

func (s *HTTPServer) deleteRecruitingFirm(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, firmMessages.invalidID)
	if err != nil {
		return err
	}

	deleted, err := s.firms.Delete(r.Context(), currentUser(r.Context()).ID, id)
	if err != nil {
		return internalError(firmMessages.delete, err)
	}
	if !deleted {
		return httpError(http.StatusNotFound, firmMessages.notFound)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
