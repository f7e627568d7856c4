package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/repositories"
)

type ResumeService interface {
	// Ingest validates an upload, extracts its text and stores the resume.
	// The uploaded file is removed from local disk before returning.
	Ingest(ctx context.Context, file *multipart.FileHeader, userID *uuid.UUID) (*models.Resume, error)
}

type resumeService struct {
	resumeRepo  repositories.ResumeRepository
	userRepo    repositories.UserRepository
	storage     StorageService
	parser      DocumentParser
	archive     ResumeArchive
	maxFileSize int64
}

func NewResumeService(
	resumeRepo repositories.ResumeRepository,
	userRepo repositories.UserRepository,
	storage StorageService,
	parser DocumentParser,
	archive ResumeArchive,
	maxFileSize int64,
) ResumeService {
	return &resumeService{
		resumeRepo:  resumeRepo,
		userRepo:    userRepo,
		storage:     storage,
		parser:      parser,
		archive:     archive,
		maxFileSize: maxFileSize,
	}
}

// Ingest implements ResumeService.
func (s *resumeService) Ingest(ctx context.Context, file *multipart.FileHeader, userID *uuid.UUID) (*models.Resume, error) {
	mimeType, err := s.validate(file)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		if _, err := s.userRepo.FindByID(ctx, *userID); err != nil {
			return nil, err
		}
	}

	filename, filePath, err := s.storage.SaveFile(file, "resume")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := s.storage.DeleteFile(filename); err != nil {
			log.Printf("⚠️  Failed to remove upload %s: %v\n", filename, err)
		}
	}()

	text, err := s.parser.ExtractText(filePath, mimeType)
	if err != nil {
		return nil, err
	}

	resume := &models.Resume{
		ID:           uuid.New(),
		UserID:       userID,
		Filename:     file.Filename,
		OriginalText: text,
		FileSize:     file.Size,
		MimeType:     mimeType,
		UploadedAt:   time.Now().UTC(),
	}

	if s.archive.Enabled() {
		key := fmt.Sprintf("resumes/%s%s", resume.ID, strings.ToLower(filepath.Ext(file.Filename)))
		if objectKey, err := s.archive.Store(ctx, key, filePath, mimeType); err != nil {
			log.Printf("⚠️  Failed to archive resume %s: %v\n", resume.ID, err)
		} else {
			resume.ObjectKey = objectKey
		}
	}

	if err := s.resumeRepo.Create(ctx, resume); err != nil {
		return nil, err
	}
	metrics.Uploads.Add(1)

	log.Printf("📄 Resume %s stored (%d bytes, %d characters)\n", resume.ID, resume.FileSize, len([]rune(text)))
	return resume, nil
}

// validate checks size and type and returns the effective MIME type. Clients
// that send application/octet-stream are judged by the file extension.
func (s *resumeService) validate(file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxFileSize {
		return "", fmt.Errorf("%w: file too large, max size is %d bytes", ErrValidation, s.maxFileSize)
	}
	if file.Size == 0 {
		return "", fmt.Errorf("%w: file is empty", ErrValidation)
	}

	mimeType := strings.TrimSpace(strings.Split(file.Header.Get("Content-Type"), ";")[0])
	if _, ok := AllowedUploadTypes[mimeType]; ok {
		return mimeType, nil
	}

	if mimeType == "" || mimeType == "application/octet-stream" {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		for allowed, allowedExt := range AllowedUploadTypes {
			if ext == allowedExt {
				return allowed, nil
			}
		}
	}

	return "", fmt.Errorf("%w: only PDF and DOCX files are allowed, got %q", ErrUnsupportedFormat, mimeType)
}
