package persistence

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/domain/entity"
	"github.com/timeflow/backend/internal/integration/persistence/model"
)

// columnPattern guards the column names interpolated into WHERE clauses.
var columnPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// GormProvider implements adapter.PersistenceProvider on a SQL database through GORM.
type GormProvider struct {
	db          *gorm.DB
	categories  *gormTable[*entity.Category, model.CategoryModel]
	timeEntries *gormTable[*entity.TimeEntry, model.TimeEntryModel]
}

// NewGormProvider creates a provider backed by the given GORM connection.
func NewGormProvider(db *gorm.DB) *GormProvider {
	return &GormProvider{
		db:          db,
		categories:  &gormTable[*entity.Category, model.CategoryModel]{db: db, spec: categorySpec},
		timeEntries: &gormTable[*entity.TimeEntry, model.TimeEntryModel]{db: db, spec: timeEntrySpec},
	}
}

// Models returns the models managed by the provider, for migrations.
func Models() []any {
	return []any{
		&model.CategoryModel{},
		&model.TimeEntryModel{},
		&model.SequenceModel{},
	}
}

// Migrate runs GORM auto-migration for the provider's tables.
func (p *GormProvider) Migrate(ctx context.Context) error {
	if err := p.db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}

// Categories returns the categories table.
func (p *GormProvider) Categories() adapter.Table[*entity.Category] {
	return p.categories
}

// TimeEntries returns the time entries table.
func (p *GormProvider) TimeEntries() adapter.Table[*entity.TimeEntry] {
	return p.timeEntries
}

// Ping performs a health check on the database connection.
func (p *GormProvider) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB for health check: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}

// Close closes the database connection.
func (p *GormProvider) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB for closing: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// gormTable implements adapter.Table on one SQL table.
type gormTable[R adapter.Row, M any] struct {
	db   *gorm.DB
	spec tableSpec[R, M]
}

// scoped applies the filters as WHERE clauses.
func (t *gormTable[R, M]) scoped(db *gorm.DB, filters []adapter.Filter) (*gorm.DB, error) {
	tx := db.Model(new(M))
	for _, f := range filters {
		if !columnPattern.MatchString(f.Column) {
			return nil, fmt.Errorf("%s: invalid column %q", t.spec.name, f.Column)
		}
		if !f.Op.Valid() {
			return nil, fmt.Errorf("%s: invalid operator %q", t.spec.name, f.Op)
		}

		value := f.Value
		if ts, ok := value.(time.Time); ok {
			value = ts.UTC()
		}

		if value == nil && f.Op == adapter.OpEq {
			tx = tx.Where(fmt.Sprintf("%s IS NULL", f.Column))
			continue
		}
		tx = tx.Where(fmt.Sprintf("%s %s ?", f.Column, f.Op), value)
	}
	return tx, nil
}

// NextID increments and returns the table's row in the sequences table.
func (t *gormTable[R, M]) NextID(ctx context.Context) (int64, error) {
	var next int64
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.SequenceModel{}).
			Where("name = ?", t.spec.name).
			Update("value", gorm.Expr("value + 1"))
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			next = 1
			return tx.Create(&model.SequenceModel{Name: t.spec.name, Value: next}).Error
		}

		var seq model.SequenceModel
		if err := tx.Where("name = ?", t.spec.name).First(&seq).Error; err != nil {
			return err
		}
		next = seq.Value
		return nil
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

// Select returns the rows matching the query in primary key order.
func (t *gormTable[R, M]) Select(ctx context.Context, query adapter.Query) ([]R, error) {
	tx, err := t.scoped(t.db.WithContext(ctx), query.Filters)
	if err != nil {
		return nil, err
	}

	tx = tx.Order("id ASC")
	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}

	var models []M
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}

	rows := make([]R, len(models))
	for i := range models {
		rows[i] = t.spec.toEntity(&models[i])
	}
	return rows, nil
}

// Insert stores a new row.
func (t *gormTable[R, M]) Insert(ctx context.Context, row R) (R, error) {
	var zero R
	m := t.spec.toModel(row)
	if err := t.db.WithContext(ctx).Create(m).Error; err != nil {
		return zero, err
	}
	return t.spec.toEntity(m), nil
}

// Update replaces the row with the same primary key.
func (t *gormTable[R, M]) Update(ctx context.Context, row R) (R, error) {
	var zero R
	m := t.spec.toModel(row)
	result := t.db.WithContext(ctx).
		Model(new(M)).
		Where("id = ?", row.PrimaryKey()).
		Select("*").
		Updates(m)
	if result.Error != nil {
		return zero, result.Error
	}
	if result.RowsAffected == 0 {
		return zero, adapter.ErrNoRows
	}
	return t.spec.toEntity(m), nil
}

// Delete removes every row matching all filters.
func (t *gormTable[R, M]) Delete(ctx context.Context, filters ...adapter.Filter) ([]R, error) {
	if len(filters) == 0 {
		return nil, adapter.ErrMissingFilter
	}

	var removed []R
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scoped, err := t.scoped(tx, filters)
		if err != nil {
			return err
		}

		var models []M
		if err := scoped.Order("id ASC").Find(&models).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}

		ids := make([]int64, len(models))
		removed = make([]R, len(models))
		for i := range models {
			removed[i] = t.spec.toEntity(&models[i])
			ids[i] = removed[i].PrimaryKey()
		}

		return tx.Where("id IN ?", ids).Delete(new(M)).Error
	})
	if err != nil {
		return nil, err
	}
	if removed == nil {
		removed = []R{}
	}
	return removed, nil
}
