package services

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/Scoheart/lostfound-backend/internal/config"
	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/google/uuid"
)

// FileService stores uploaded images on the local filesystem under the
// configured upload directory and serves them back via the static route.
type FileService struct {
	cfg *config.Config
}

func NewFileService(cfg *config.Config) *FileService {
	return &FileService{cfg: cfg}
}

// Save validates and persists an uploaded file. The stored name is a fresh
// uuid plus the original extension, so user-supplied names never touch the
// filesystem.
func (s *FileService) Save(file *multipart.FileHeader) (*dto.FileUploadResponse, error) {
	if file.Size > s.cfg.UploadMaxSize {
		return nil, BadRequest(fmt.Sprintf("文件大小不能超过%dMB", s.cfg.UploadMaxSize>>20))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !s.extAllowed(ext) {
		return nil, BadRequest("不支持的文件类型: " + ext)
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.New().String() + ext
	dst := filepath.Join(s.cfg.UploadDir, name)

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	slog.Info("file uploaded", "file_name", name, "size", file.Size)
	return &dto.FileUploadResponse{
		FileName:    name,
		FileURL:     strings.TrimRight(s.cfg.UploadBaseURL, "/") + "/" + name,
		Size:        file.Size,
		ContentType: file.Header.Get("Content-Type"),
	}, nil
}

func (s *FileService) extAllowed(ext string) bool {
	for _, allowed := range s.cfg.UploadAllowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}
