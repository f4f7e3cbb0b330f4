package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/indigo-retail/pos-api/internal/auth"
	"github.com/indigo-retail/pos-api/internal/domain"
	"github.com/indigo-retail/pos-api/internal/filetype"
	"github.com/indigo-retail/pos-api/internal/service"
)

type UploadHandler struct {
	uploadService *service.UploadService
	maxUploadSize int64
	logger        *zap.Logger
}

func NewUploadHandler(uploadService *service.UploadService, maxUploadSize int64, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// Upload accepts a multipart image upload, validates its content and
// stores it, returning the public URL
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondWithError(w, http.StatusBadRequest, "File exceeds the maximum upload size")
			return
		}
		respondWithError(w, http.StatusBadRequest, "Missing file in request")
		return
	}
	defer file.Close()

	if !filetype.AllowedExtension(header.Filename) {
		respondWithError(w, http.StatusBadRequest, "File extension is not allowed")
		return
	}

	resp, err := h.uploadService.Upload(r.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamStorage) {
			h.logger.Error("storage upload failed", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to store file")
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	fields := []zap.Field{zap.String("filename", header.Filename), zap.String("url", resp.URL)}
	if user, ok := auth.FromContext(r.Context()); ok {
		fields = append(fields, zap.String("username", user.Username))
	}
	h.logger.Info("file uploaded", fields...)

	respondJSON(w, http.StatusOK, resp)
}
