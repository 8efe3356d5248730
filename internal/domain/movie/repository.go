package movie

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ListFilter narrows the public catalog listing. Zero values mean "no
// filter".
type ListFilter struct {
	Category string
	Genre    string
	Language string
	Search   string
	Featured *bool
}

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*Movie, error)
	GetByID(ctx context.Context, id int64) (*Movie, error)
	Create(ctx context.Context, m *Movie) error
	Update(ctx context.Context, m *Movie) error

	// Delete removes the movie and its rating rows in one transaction.
	Delete(ctx context.Context, id int64) error

	// Counter bumps are single "UPDATE ... SET col = col + 1"
	// statements so concurrent viewers never lose updates.
	IncrementViews(ctx context.Context, id int64) error
	IncrementDownloads(ctx context.Context, id int64) error

	// UpsertRating keeps one rating row per movie per client IP.
	UpsertRating(ctx context.Context, rating *UserRating) error
	RatingStats(ctx context.Context, movieID int64) (avg float64, count int64, err error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Movie, error) {
	q := r.db.WithContext(ctx).Model(&Movie{})

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Genre != "" {
		q = q.Where("genre = ?", filter.Genre)
	}
	if filter.Language != "" {
		q = q.Where("language = ?", filter.Language)
	}
	if filter.Search != "" {
		q = q.Where("title LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Featured != nil {
		q = q.Where("is_featured = ?", *filter.Featured)
	}

	var movies []*Movie
	err := q.Order("upload_date DESC").Find(&movies).Error
	return movies, err
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Movie, error) {
	var m Movie
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) Create(ctx context.Context, m *Movie) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) Update(ctx context.Context, m *Movie) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_id = ?", id).Delete(&UserRating{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&Movie{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrMovieNotFound
		}
		return nil
	})
}

func (r *repository) IncrementViews(ctx context.Context, id int64) error {
	return r.increment(ctx, id, "views")
}

func (r *repository) IncrementDownloads(ctx context.Context, id int64) error {
	return r.increment(ctx, id, "downloads")
}

func (r *repository) increment(ctx context.Context, id int64, column string) error {
	result := r.db.WithContext(ctx).
		Model(&Movie{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMovieNotFound
	}
	return nil
}

func (r *repository) UpsertRating(ctx context.Context, rating *UserRating) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing UserRating
		err := tx.Where("movie_id = ? AND ip_address = ?", rating.MovieID, rating.IPAddress).
			First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(rating).Error
			}
			return err
		}
		existing.Rating = rating.Rating
		*rating = existing
		return tx.Save(&existing).Error
	})
}

func (r *repository) RatingStats(ctx context.Context, movieID int64) (float64, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&UserRating{}).
		Where("movie_id = ?", movieID).Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}

	var avg float64
	err := r.db.WithContext(ctx).Model(&UserRating{}).
		Where("movie_id = ?", movieID).
		Select("AVG(rating)").Scan(&avg).Error
	if err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}
