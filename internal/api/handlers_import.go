// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package api

import (
	"net/http"
	"time"

	"github.com/funvill/cultural-archiver-sub013/internal/logging"
	"github.com/funvill/cultural-archiver-sub013/internal/massimport"
)

// ImportCheckRequest wraps one import item. When MergeTags is set and the
// item resolves as a duplicate, the item's tags are union-merged into the
// existing record in the same call.
type ImportCheckRequest struct {
	massimport.Request
	MergeTags bool `json:"merge_tags,omitempty"`
}

// ImportCheckResponse is the resolver decision plus the optional merge
// outcome.
type ImportCheckResponse struct {
	*massimport.Result
	MergedTags  map[string]string `json:"merged_tags,omitempty"`
	TagsChanged bool              `json:"tags_changed,omitempty"`
}

// ImportCheck handles POST /api/v1/import/check. A store failure is an error
// for this item only; batch callers report it and continue with the next
// item.
func (h *Handler) ImportCheck(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	ctx := r.Context()

	var req ImportCheckRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req.Request); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	result, err := h.resolver.CheckForDuplicates(ctx, req.Request)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "IMPORT_CHECK_FAILED", "Duplicate check failed for this item", err)
		return
	}

	resp := ImportCheckResponse{Result: result}

	if req.MergeTags && result.IsDuplicate && len(req.Tags) > 0 {
		merged, changed, err := h.resolver.MergeTags(ctx, result.DuplicateInfo.ExistingArtworkID, req.Tags)
		if err != nil {
			// The duplicate decision stands; report the merge failure
			// without failing the whole check.
			logging.Ctx(ctx).Error().Err(err).
				Str("artwork_id", result.DuplicateInfo.ExistingArtworkID).
				Msg("Tag merge failed after duplicate match")
		} else {
			resp.MergedTags = merged
			resp.TagsChanged = changed
		}
	}

	respondSuccess(w, http.StatusOK, resp, started)
}
