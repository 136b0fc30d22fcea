package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"vaultcast/domain"
	"vaultcast/errors"

	"github.com/mcuadros/go-defaults"
)

type listAssetsRequest struct {
	Query string `validate:"max=256"`
	Name  string `validate:"max=255"`
	Limit int    `default:"20" validate:"gte=1,lte=100"`
}

type assetListBody struct {
	Assets []domain.MergedAsset `json:"assets"`
	Count  int                  `json:"count"`
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFromContext(r.Context())
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeError(w, s.log, requestID, errors.NewValidationError(errors.ReasonInvalidField, "id",
			fmt.Errorf("%w: id must be a positive integer, got %q", errors.ErrInvalidField, raw)))
		return
	}
	asset, err := s.deps.Catalog.Get(r.Context(), id)
	if err != nil {
		writeError(w, s.log, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

// handleListAssets lists newest first, searches with q, or resolves an exact name.
func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFromContext(r.Context())
	query := r.URL.Query()
	req := listAssetsRequest{
		Query: strings.TrimSpace(query.Get("q")),
		Name:  strings.TrimSpace(query.Get("name")),
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, s.log, requestID, errors.NewValidationError(errors.ReasonInvalidField, "limit",
				fmt.Errorf("%w: limit must be an integer, got %q", errors.ErrInvalidField, raw)))
			return
		}
		req.Limit = limit
	}
	defaults.SetDefaults(&req)
	if err := s.deps.Validator.ValidateStruct(req); err != nil {
		writeError(w, s.log, requestID, err)
		return
	}

	var (
		assets []domain.MergedAsset
		err    error
	)
	switch {
	case req.Name != "":
		var asset domain.MergedAsset
		asset, err = s.deps.Catalog.GetByFileName(r.Context(), req.Name)
		assets = []domain.MergedAsset{asset}
	case req.Query != "":
		assets, err = s.deps.Catalog.Search(r.Context(), req.Query, req.Limit)
	default:
		assets, err = s.deps.Catalog.List(r.Context(), req.Limit)
	}
	if err != nil {
		writeError(w, s.log, requestID, err)
		return
	}
	if assets == nil {
		assets = []domain.MergedAsset{}
	}
	writeJSON(w, http.StatusOK, assetListBody{Assets: assets, Count: len(assets)})
}
