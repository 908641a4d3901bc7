package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"familytree-api/internal/domain"
)

type PersonRepo struct{ db *gorm.DB }

func NewPersonRepo(db *gorm.DB) *PersonRepo { return &PersonRepo{db: db} }

func (r *PersonRepo) Create(ctx context.Context, p *domain.Person) error {
	return r.db.WithContext(ctx).Omit("Father", "Mother").Create(p).Error
}

func (r *PersonRepo) FindByID(ctx context.Context, id uint) (*domain.Person, error) {
	var p domain.Person
	err := r.db.WithContext(ctx).Preload("Father").Preload("Mother").First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *PersonRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Person{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *PersonRepo) ListByCreator(ctx context.Context, userID uint) ([]domain.Person, error) {
	var list []domain.Person
	err := r.db.WithContext(ctx).
		Preload("Father").Preload("Mother").
		Where("created_by = ?", userID).
		Order("id").
		Find(&list).Error
	return list, err
}

func (r *PersonRepo) Save(ctx context.Context, p *domain.Person) error {
	// Save 按全字段写回，nil 的 father/mother 也会落成 NULL（全量覆盖语义）
	return r.db.WithContext(ctx).Omit("Father", "Mother").Save(p).Error
}

// Delete 返回是否真的删掉了一行
func (r *PersonRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Person{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// ClearParentRefs 把指向该 Person 的 father/mother 链接显式置空
func (r *PersonRepo) ClearParentRefs(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Model(&domain.Person{})
	if err := tx.Where("father_id = ?", id).Update("father_id", nil).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&domain.Person{}).
		Where("mother_id = ?", id).Update("mother_id", nil).Error
}
