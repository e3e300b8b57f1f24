package rest

import (
	"net/http"

	"github.com/dmitrijs2005/jobtracker/internal/server/httpapi"
)

func (s *HTTPServer) listJobs(w http.ResponseWriter, r *http.Request) error {
	user := currentUser(r.Context())
	limit, offset := parsePagination(r.URL.Query())

	page, err := s.jobs.List(r.Context(), user.ID, limit, offset)
	if err != nil {
		return internalError(jobMessages.list, err)
	}

	writeJSON(w, http.StatusOK, httpapi.NewListResponse(page.Items, page.Total, limit, offset))
	return nil
}

func (s *HTTPServer) getJob(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, jobMessages.invalidID)
	if err != nil {
		return err
	}

	job, err := s.jobs.Get(r.Context(), currentUser(r.Context()).ID, id)
	if err != nil {
		return jobMessages.fail(err, jobMessages.get)
	}

	writeJSON(w, http.StatusOK, job)
	return nil
}

func (s *HTTPServer) createJob(w http.ResponseWriter, r *http.Request) error {
	var req httpapi.CreateJobRequest
	if err := s.bind(r, &req); err != nil {
		return err
	}

	job, err := s.jobs.Create(r.Context(), currentUser(r.Context()).ID, req.Model())
	if err != nil {
		return jobMessages.fail(err, jobMessages.create)
	}

	writeJSON(w, http.StatusCreated, job)
	return nil
}

func (s *HTTPServer) updateJob(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, jobMessages.invalidID)
	if err != nil {
		return err
	}

	var req httpapi.PatchJobRequest
	if err := s.bind(r, &req); err != nil {
		return err
	}

	job, err := s.jobs.Update(r.Context(), currentUser(r.Context()).ID, id, req.Patch())
	if err != nil {
		return jobMessages.fail(err, jobMessages.update)
	}

	writeJSON(w, http.StatusOK, job)
	return nil
}

func (s *HTTPServer) deleteJob(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, jobMessages.invalidID)
	if err != nil {
		return err
	}

	deleted, err := s.jobs.Delete(r.Context(), currentUser(r.Context()).ID, id)
	if err != nil {
		return internalError(jobMessages.delete, err)
	}
	if !deleted {
		return httpError(http.StatusNotFound, jobMessages.notFound)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
