// Package store is a thin generic collection layer over GORM. Each record
// type gets one Repository; services compose them and own the semantics.
package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/apperr"
)

// Repository gives the six collection operations for one record type.
type Repository[T any] struct {
	db   *gorm.DB
	kind string
}

// New returns a repository for T. kind names the record in not-found errors.
func New[T any](db *gorm.DB, kind string) *Repository[T] {
	return &Repository[T]{db: db, kind: kind}
}

// WithTx returns a repository bound to tx.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx, kind: r.kind}
}

// DB exposes the handle for queries the generic methods do not cover.
func (r *Repository[T]) DB() *gorm.DB { return r.db }

// All returns every record, newest first.
func (r *Repository[T]) All() ([]T, error) {
	var out []T
	if err := r.db.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind, err)
	}
	return out, nil
}

func (r *Repository[T]) ByID(id uuid.UUID) (*T, error) {
	var out T
	if err := r.db.First(&out, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(r.kind)
		}
		return nil, fmt.Errorf("get %s: %w", r.kind, err)
	}
	return &out, nil
}

// Where returns records whose field equals value, newest first.
func (r *Repository[T]) Where(field string, value any) ([]T, error) {
	var out []T
	if err := r.db.Where(map[string]any{field: value}).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("query %s by %s: %w", r.kind, field, err)
	}
	return out, nil
}

// First returns the first record matching conds, or a not-found error.
func (r *Repository[T]) First(conds map[string]any) (*T, error) {
	var out T
	if err := r.db.Where(conds).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(r.kind)
		}
		return nil, fmt.Errorf("get %s: %w", r.kind, err)
	}
	return &out, nil
}

func (r *Repository[T]) Insert(rec *T) error {
	if err := r.db.Create(rec).Error; err != nil {
		return fmt.Errorf("insert %s: %w", r.kind, err)
	}
	return nil
}

// Update applies a partial update and returns the stored record.
func (r *Repository[T]) Update(id uuid.UUID, partial map[string]any) (*T, error) {
	var model T
	res := r.db.Model(&model).Where("id = ?", id).Updates(partial)
	if res.Error != nil {
		return nil, fmt.Errorf("update %s: %w", r.kind, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound(r.kind)
	}
	return r.ByID(id)
}

func (r *Repository[T]) Delete(id uuid.UUID) error {
	var model T
	res := r.db.Where("id = ?", id).Delete(&model)
	if res.Error != nil {
		return fmt.Errorf("delete %s: %w", r.kind, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(r.kind)
	}
	return nil
}
