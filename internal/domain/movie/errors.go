package movie

import "errors"

var (
	ErrMovieNotFound   = errors.New("movie not found")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrNoVideoFile     = errors.New("video file is required")
	ErrFileTooLarge    = errors.New("file exceeds the maximum upload size")
	ErrInvalidMimeType = errors.New("unsupported file type")
	ErrNoMediaFile     = errors.New("movie has no media file")
)
