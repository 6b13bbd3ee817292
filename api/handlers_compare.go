package api

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-product-compare/catalog"
)

// compareQuery is the decoded query string of the compare endpoint.
// Repeated parameters are joined, so ids=1&ids=2 equals ids=1,2.
type compareQuery struct {
	IDs    []string `schema:"ids"`
	Fields []string `schema:"fields"`
}

type compareResponse struct {
	Products []catalog.ItemView `json:"products"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if _, ok := query["ids"]; !ok {
		s.sendError(w, r, newMissingParameterError("ids"))
		return
	}

	var q compareQuery
	if err := s.decoder.Decode(&q, query); err != nil {
		s.sendError(w, r, goerrors.Wrap(err, goerrors.CategoryBadInput, "malformed query string").
			WithCode(http.StatusBadRequest).
			WithTextCode(TextCodeBadRequest))
		return
	}

	ids, err := catalog.ParseIDs(strings.Join(q.IDs, ","))
	if err != nil {
		s.sendError(w, r, newInvalidArgumentError(err))
		return
	}
	fields := catalog.ParseFields(strings.Join(q.Fields, ","))

	items, err := s.comparer.Resolve(r.Context(), ids, fields)
	if err != nil {
		s.sendError(w, r, err)
		return
	}

	s.sendJSONResponse(w, r, http.StatusOK, compareResponse{
		Products: catalog.ProjectAll(items, fields),
	})
}
