package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"familytree-api/internal/domain"
	"familytree-api/internal/repo"
)

// RelationshipInput 两端 id 不做 binding 必填：缺失按未解析引用报 NotFound（见错误分类）
type RelationshipInput struct {
	Person1ID        *uint                   `json:"person1Id"`
	Person2ID        *uint                   `json:"person2Id"`
	RelationshipType domain.RelationshipType `json:"relationshipType" binding:"required,oneof=MARRIED DIVORCED PARTNER"`
	StartDate        *domain.Date            `json:"startDate"`
	EndDate          *domain.Date            `json:"endDate"`
}

type RelationshipService struct {
	db *gorm.DB
}

func NewRelationshipService(db *gorm.DB) *RelationshipService {
	return &RelationshipService{db: db}
}

// Add 建边。任一端解析不到即硬失败 NotFound（不落库、不写审计）——
// 与 Person 的 father/mother 静默置空刻意不对称。
func (s *RelationshipService) Add(ctx context.Context, actorID uint, in RelationshipInput) (*domain.Relationship, error) {
	var out *domain.Relationship
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		persons := repo.NewPersonRepo(tx)
		rels := repo.NewRelationshipRepo(tx)

		p1, err := resolvePerson(ctx, persons, in.Person1ID, "person 1")
		if err != nil {
			return err
		}
		p2, err := resolvePerson(ctx, persons, in.Person2ID, "person 2")
		if err != nil {
			return err
		}

		rel := &domain.Relationship{
			Person1ID:        p1.ID,
			Person2ID:        p2.ID,
			RelationshipType: in.RelationshipType,
			StartDate:        in.StartDate,
			EndDate:          in.EndDate,
			CreatedBy:        actorID,
			UpdatedBy:        actorID,
		}
		if err := rels.Create(ctx, rel); err != nil {
			return err
		}
		details := fmt.Sprintf("Created relationship %s between %s and %s",
			rel.RelationshipType, p1.FullName, p2.FullName)
		if err := writeAudit(ctx, tx, domain.EntityRelationship, rel.ID, domain.ActionCreate, actorID, details); err != nil {
			return err
		}
		loaded, err := rels.FindByID(ctx, rel.ID)
		if err != nil {
			return err
		}
		out = loaded
		return nil
	})
	return out, err
}

// Delete 先记审计再删除，同一事务
func (s *RelationshipService) Delete(ctx context.Context, id, actorID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := writeAudit(ctx, tx, domain.EntityRelationship, id, domain.ActionDelete, actorID,
			fmt.Sprintf("Deleted relationship with ID: %d", id)); err != nil {
			return err
		}
		removed, err := repo.NewRelationshipRepo(tx).Delete(ctx, id)
		if err != nil {
			return err
		}
		if !removed {
			return domain.NotFoundf("relationship %d not found", id)
		}
		return nil
	})
}

// ForPerson 无向查询：personId 出现在任一端的边都返回，无归属过滤
func (s *RelationshipService) ForPerson(ctx context.Context, personID uint) ([]domain.Relationship, error) {
	return repo.NewRelationshipRepo(s.db).ListForPerson(ctx, personID)
}

// All 全局列表，无归属过滤（与 Person 列表的不对称保留自源系统）
func (s *RelationshipService) All(ctx context.Context) ([]domain.Relationship, error) {
	return repo.NewRelationshipRepo(s.db).ListAll(ctx)
}

func resolvePerson(ctx context.Context, persons *repo.PersonRepo, id *uint, label string) (*domain.Person, error) {
	if id == nil {
		return nil, domain.NotFoundf("%s not found", label)
	}
	p, err := persons.FindByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFoundf("%s not found", label)
	}
	return p, nil
}
