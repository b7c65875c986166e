package property

import (
	"context"
	"errors"
	"strings"
	"time"

	"unilodge-backend/internal/models"

	"gorm.io/gorm"
)

const textMatch = "LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(city) LIKE ? OR LOWER(country) LIKE ?"

// Repository is the storage layer for properties. Every call is bounded by
// the configured timeout so a stalled database cannot hang a request.
type Repository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewRepository(db *gorm.DB, timeout time.Duration) *Repository {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Repository{db: db, timeout: timeout}
}

func (r *Repository) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func wrapPersistence(op string, err error) *PersistenceError {
	return &PersistenceError{
		Op:  op,
		Err: err,
		// Constraint violations are row-scoped; anything else means the
		// store itself is misbehaving.
		Unavailable: !errors.Is(err, gorm.ErrDuplicatedKey),
	}
}

func (r *Repository) Create(ctx context.Context, p *models.Property) error {
	if p.LastViewedReset.IsZero() {
		p.LastViewedReset = time.Now()
	}

	ctx, cancel := r.bound(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return wrapPersistence("create property", err)
	}
	return nil
}

func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Property{}).
		Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, wrapPersistence("check slug", err)
	}
	return count > 0, nil
}

func (r *Repository) ByID(ctx context.Context, id uint) (*models.Property, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var p models.Property
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapPersistence("load property", err)
	}
	return &p, nil
}

func (r *Repository) Save(ctx context.Context, p *models.Property) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return wrapPersistence("save property", err)
	}
	return nil
}

// SaveViews persists only the view counter fields so an update racing a view
// does not clobber unrelated columns.
func (r *Repository) SaveViews(ctx context.Context, p *models.Property) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Model(p).
		Select("views", "last_viewed_reset").
		Updates(map[string]interface{}{
			"views":             p.Views,
			"last_viewed_reset": p.LastViewedReset,
		}).Error
	if err != nil {
		return wrapPersistence("save views", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&models.Property{}, id)
	if res.Error != nil {
		return wrapPersistence("delete property", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Query applies the optional filters and returns one page plus the total
// match count. An empty page is a valid result, not an error.
func (r *Repository) Query(ctx context.Context, f Filters) (*Page, error) {
	f = f.normalized()

	ctx, cancel := r.bound(ctx)
	defer cancel()

	tx := r.db.WithContext(ctx).Model(&models.Property{})
	if f.Country != "" {
		tx = tx.Where("country = ?", f.Country)
	}
	if f.City != "" {
		tx = tx.Where("city = ?", f.City)
	}
	if f.MinPrice != nil {
		tx = tx.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		tx = tx.Where("price <= ?", *f.MaxPrice)
	}
	if f.Search != "" {
		like := contains(f.Search)
		tx = tx.Where(textMatch, like, like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, wrapPersistence("count properties", err)
	}

	var records []models.Property
	err := tx.Order("created_at, id").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&records).Error
	if err != nil {
		return nil, wrapPersistence("query properties", err)
	}

	return &Page{Records: records, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

// Search matches the term against title, description, city and country and
// fails with ErrNotFound when nothing matches. This asymmetry with Query is
// deliberate: the search endpoint answers 404 on no results, filter answers
// an empty page.
func (r *Repository) Search(ctx context.Context, term string) ([]models.Property, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	like := contains(term)
	var records []models.Property
	err := r.db.WithContext(ctx).
		Where(textMatch, like, like, like, like).
		Order("created_at, id").
		Find(&records).Error
	if err != nil {
		return nil, wrapPersistence("search properties", err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records, nil
}

// SearchByTitle matches only the title, with the same not-found behavior.
func (r *Repository) SearchByTitle(ctx context.Context, title string) ([]models.Property, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var records []models.Property
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ?", contains(title)).
		Order("created_at, id").
		Find(&records).Error
	if err != nil {
		return nil, wrapPersistence("search properties by title", err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records, nil
}

// contains builds a case-insensitive LIKE pattern. LOWER+LIKE behaves the
// same on Postgres and on the SQLite used in tests, unlike ILIKE.
func contains(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
