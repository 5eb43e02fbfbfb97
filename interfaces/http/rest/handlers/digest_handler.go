// Package handlers implements the REST endpoints over the digest service.
package handlers

import (
	"encoding/json"
	"net/http"

	"newsagg-backend/application/ports"
	"newsagg-backend/application/services"
	"newsagg-backend/domain/digest"
	"newsagg-backend/pkg/auth"
	"newsagg-backend/pkg/common"
	apperrors "newsagg-backend/pkg/errors"
	"newsagg-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DigestHandler handles digest-related HTTP requests
type DigestHandler struct {
	service *services.DigestService
	logger  *zap.Logger
}

// NewDigestHandler creates a new digest handler
func NewDigestHandler(service *services.DigestService, logger *zap.Logger) *DigestHandler {
	return &DigestHandler{
		service: service,
		logger:  logger,
	}
}

// StoreDigestRequest is the payload of POST /digests. DigestID is optional;
// an omitted ID gets a generated one. Resubmitting an existing ID
// overwrites that digest.
type StoreDigestRequest struct {
	DigestID string        `json:"digest_id"`
	Digest   digest.Digest `json:"digest" validate:"required"`
	Markdown string        `json:"markdown"`
}

// StoreDigestResponse is the payload of a successful store.
type StoreDigestResponse struct {
	DigestID string `json:"digest_id"`
	Key      string `json:"key"`
}

// StoreDigest handles POST /digests
func (h *DigestHandler) StoreDigest(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	var req StoreDigestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	digestID := req.DigestID
	if digestID == "" {
		digestID = uuid.NewString()
	}

	key, err := h.service.Store(r.Context(), userCtx.UserID, digestID, req.Digest, req.Markdown)
	if err != nil {
		h.logger.Error("Failed to store digest",
			zap.String("userID", userCtx.UserID),
			zap.String("digestID", digestID),
			zap.Error(err),
		)
		common.RespondError(w, apperrors.HTTPStatus(err), "STORE_FAILED", "Failed to store digest")
		return
	}

	common.RespondJSON(w, http.StatusCreated, StoreDigestResponse{
		DigestID: digestID,
		Key:      key,
	})
}

// GetDigest handles GET /digests/{digestID}
func (h *DigestHandler) GetDigest(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	digestID := chi.URLParam(r, "digestID")
	if digestID == "" {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Digest ID is required")
		return
	}

	record, err := h.service.Get(r.Context(), userCtx.UserID, digestID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			common.RespondError(w, http.StatusNotFound, "NOT_FOUND", "Digest not found")
			return
		}
		h.logger.Error("Failed to get digest",
			zap.String("userID", userCtx.UserID),
			zap.String("digestID", digestID),
			zap.Error(err),
		)
		common.RespondError(w, apperrors.HTTPStatus(err), "GET_FAILED", "Failed to get digest")
		return
	}

	common.RespondJSON(w, http.StatusOK, record)
}

// ListDigests handles GET /digests
func (h *DigestHandler) ListDigests(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	params := common.ExtractPageRequest(r)

	page, err := h.service.List(r.Context(), userCtx.UserID, ports.ListOptions{
		Limit:  params.Limit,
		Cursor: params.Cursor,
	})
	if err != nil {
		h.logger.Error("Failed to list digests",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		common.RespondError(w, apperrors.HTTPStatus(err), "LIST_FAILED", "Failed to list digests")
		return
	}

	common.RespondJSON(w, http.StatusOK, page)
}

// DeleteDigest handles DELETE /digests/{digestID}
func (h *DigestHandler) DeleteDigest(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	digestID := chi.URLParam(r, "digestID")
	if digestID == "" {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Digest ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), userCtx.UserID, digestID); err != nil {
		h.logger.Error("Failed to delete digest",
			zap.String("userID", userCtx.UserID),
			zap.String("digestID", digestID),
			zap.Error(err),
		)
		common.RespondError(w, apperrors.HTTPStatus(err), "DELETE_FAILED", "Failed to delete digest")
		return
	}

	common.RespondNoContent(w)
}
