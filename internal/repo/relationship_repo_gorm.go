package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"familytree-api/internal/domain"
)

type RelationshipRepo struct{ db *gorm.DB }

func NewRelationshipRepo(db *gorm.DB) *RelationshipRepo { return &RelationshipRepo{db: db} }

func (r *RelationshipRepo) Create(ctx context.Context, rel *domain.Relationship) error {
	return r.db.WithContext(ctx).Omit("Person1", "Person2").Create(rel).Error
}

func (r *RelationshipRepo) FindByID(ctx context.Context, id uint) (*domain.Relationship, error) {
	var rel domain.Relationship
	err := r.db.WithContext(ctx).Preload("Person1").Preload("Person2").First(&rel, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rel, err
}

// ListForPerson 无向查询：person 出现在任一端都算
func (r *RelationshipRepo) ListForPerson(ctx context.Context, personID uint) ([]domain.Relationship, error) {
	var list []domain.Relationship
	err := r.db.WithContext(ctx).
		Preload("Person1").Preload("Person2").
		Where("person1_id = ? OR person2_id = ?", personID, personID).
		Order("id").
		Find(&list).Error
	return list, err
}

func (r *RelationshipRepo) ListAll(ctx context.Context) ([]domain.Relationship, error) {
	var list []domain.Relationship
	err := r.db.WithContext(ctx).Preload("Person1").Preload("Person2").Order("id").Find(&list).Error
	return list, err
}

func (r *RelationshipRepo) CountForPerson(ctx context.Context, personID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Relationship{}).
		Where("person1_id = ? OR person2_id = ?", personID, personID).
		Count(&n).Error
	return n, err
}

func (r *RelationshipRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Relationship{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
