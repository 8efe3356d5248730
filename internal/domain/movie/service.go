package movie

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Accepted media types per kind of upload.
var (
	allowedVideoTypes = map[string]bool{
		"video/mp4":  true,
		"video/webm": true,
		"video/ogg":  true,
		// DetectContentType reports mkv/avi containers as octet-stream
		"application/octet-stream": true,
	}
	allowedImageTypes = map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	}
)

type Service struct {
	repo          Repository
	mediaDir      string
	maxUploadSize int64
}

func NewService(repo Repository, mediaDir string, maxUploadSize int64) *Service {
	return &Service{repo: repo, mediaDir: mediaDir, maxUploadSize: maxUploadSize}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Movie, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (*Movie, float64, int64, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, 0, 0, err
	}
	avg, count, err := s.repo.RatingStats(ctx, id)
	if err != nil {
		return nil, 0, 0, err
	}
	return m, avg, count, nil
}

// Create stores the uploaded media on disk and the metadata row in the
// store. Files already written are removed when the insert fails.
func (s *Service) Create(ctx context.Context, m *Movie, video, thumbnail *multipart.FileHeader) (*Movie, error) {
	if video == nil {
		return nil, ErrNoVideoFile
	}

	videoPath, size, err := s.saveFile(video, "movies", allowedVideoTypes)
	if err != nil {
		return nil, err
	}
	m.FilePath = videoPath
	m.FileSize = size

	if thumbnail != nil {
		thumbPath, _, err := s.saveFile(thumbnail, "thumbnails", allowedImageTypes)
		if err != nil {
			s.removeFile(videoPath)
			return nil, err
		}
		m.ThumbnailPath = thumbPath
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.removeFile(m.FilePath)
		s.removeFile(m.ThumbnailPath)
		return nil, err
	}
	return m, nil
}

// Update applies partial metadata updates; omitted fields are retained.
func (s *Service) Update(ctx context.Context, id int64, req *UpdateMovieRequest) (*Movie, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Duration != nil {
		m.Duration = *req.Duration
	}
	if req.Year != nil {
		m.Year = *req.Year
	}
	if req.Genre != nil {
		m.Genre = *req.Genre
	}
	if req.Category != nil {
		m.Category = *req.Category
	}
	if req.Language != nil {
		m.Language = *req.Language
	}
	if req.Quality != nil {
		m.Quality = *req.Quality
	}
	if req.IMDbRating != nil {
		m.IMDbRating = *req.IMDbRating
	}
	if req.IsFeatured != nil {
		m.IsFeatured = *req.IsFeatured
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes the row, its ratings, and the files on disk. The store
// delete runs first so a file-system failure never leaves a dangling
// catalog entry.
func (s *Service) Delete(ctx context.Context, id int64) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFile(m.FilePath)
	s.removeFile(m.ThumbnailPath)
	return nil
}

func (s *Service) CountView(ctx context.Context, id int64) error {
	return s.repo.IncrementViews(ctx, id)
}

func (s *Service) CountDownload(ctx context.Context, id int64) error {
	return s.repo.IncrementDownloads(ctx, id)
}

// Rate upserts the viewer's rating keyed by client IP and returns the
// refreshed stats.
func (s *Service) Rate(ctx context.Context, id int64, rating int, ip string) (float64, int64, error) {
	if rating < 1 || rating > 5 {
		return 0, 0, ErrInvalidRating
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return 0, 0, err
	}

	row := &UserRating{MovieID: id, Rating: rating, IPAddress: ip}
	if err := s.repo.UpsertRating(ctx, row); err != nil {
		return 0, 0, err
	}
	avg, count, err := s.repo.RatingStats(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	return roundRating(avg), count, nil
}

// MediaPath resolves the absolute path of the movie's video file.
func (s *Service) MediaPath(ctx context.Context, id int64) (string, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if m.FilePath == "" {
		return "", ErrNoMediaFile
	}
	return filepath.Join(s.mediaDir, m.FilePath), nil
}

// ThumbnailPath resolves the absolute path of the movie's thumbnail.
func (s *Service) ThumbnailPath(ctx context.Context, id int64) (string, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if m.ThumbnailPath == "" {
		return "", ErrNoMediaFile
	}
	return filepath.Join(s.mediaDir, m.ThumbnailPath), nil
}

func (s *Service) saveFile(fh *multipart.FileHeader, subdir string, allowed map[string]bool) (string, int64, error) {
	if fh.Size == 0 {
		return "", 0, ErrNoVideoFile
	}
	if fh.Size > s.maxUploadSize {
		return "", 0, ErrFileTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return "", 0, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	// Sniff the MIME type from the first 512 bytes
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	if !allowed[mimeType] {
		return "", 0, ErrInvalidMimeType
	}
	if seeker, ok := file.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	absDir := filepath.Join(s.mediaDir, subdir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create media directory: %w", err)
	}

	ext := filepath.Ext(fh.Filename)
	filename := uuid.New().String() + ext
	absPath := filepath.Join(absDir, filename)

	dst, err := os.Create(absPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		_ = os.Remove(absPath)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	return filepath.Join(subdir, filename), written, nil
}

func (s *Service) removeFile(relPath string) {
	if relPath == "" {
		return
	}
	// file may already be gone
	_ = os.Remove(filepath.Join(s.mediaDir, relPath))
}
