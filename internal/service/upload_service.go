package service

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/indigo-retail/pos-api/internal/domain"
	"github.com/indigo-retail/pos-api/internal/filetype"
	"github.com/indigo-retail/pos-api/internal/storage"
)

type UploadService struct {
	store  storage.Storage
	logger *zap.Logger
}

func NewUploadService(store storage.Storage, logger *zap.Logger) *UploadService {
	return &UploadService{
		store:  store,
		logger: logger,
	}
}

// Upload validates the file content against its filename and stores it,
// returning the public URL. Validation failures surface as filetype
// errors; storage failures are wrapped in ErrUpstreamStorage.
func (s *UploadService) Upload(ctx context.Context, filename string, data io.Reader) (*domain.UploadResponse, error) {
	br := bufio.NewReader(data)

	mediaType, err := filetype.Validate(br, filename)
	if err != nil {
		s.logger.Warn("upload rejected",
			zap.String("filename", filename),
			zap.Error(err),
		)
		return nil, err
	}

	url, size, err := s.store.Upload(ctx, filename, mediaType, br)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamStorage, err)
	}

	s.logger.Info("file uploaded",
		zap.String("filename", filename),
		zap.String("contentType", mediaType),
		zap.Int64("size", size),
	)

	return &domain.UploadResponse{URL: url}, nil
}
