package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"familytree-api/internal/domain"
	"familytree-api/internal/repo"
)

// PersonInput 全量输入：create/update 都要求提交完整期望状态（无 patch 语义）
type PersonInput struct {
	FullName      string        `json:"fullName" binding:"required,max=191"`
	Gender        domain.Gender `json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
	DateOfBirth   *domain.Date  `json:"dateOfBirth"`
	DateOfDeath   *domain.Date  `json:"dateOfDeath"`
	IsAlive       *bool         `json:"isAlive"` // 缺省 true；与 dateOfDeath 相互独立
	ImageURL      string        `json:"imageUrl" binding:"omitempty,max=255"`
	ContactNumber string        `json:"contactNumber" binding:"omitempty,max=64"`
	Email         string        `json:"email" binding:"omitempty,max=191"`
	FatherID      *uint         `json:"fatherId"`
	MotherID      *uint         `json:"motherId"`
}

type PersonService struct {
	db *gorm.DB
}

func NewPersonService(db *gorm.DB) *PersonService { return &PersonService{db: db} }

// Create 创建人物。father/mother 引用解析不到时静默置空（不报错）——
// 与 Relationship 的硬失败刻意不对称。
func (s *PersonService) Create(ctx context.Context, actorID uint, in PersonInput) (*domain.Person, error) {
	var out *domain.Person
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		persons := repo.NewPersonRepo(tx)

		p := &domain.Person{CreatedBy: actorID, UpdatedBy: actorID}
		if err := applyPersonInput(ctx, persons, p, in); err != nil {
			return err
		}
		if err := persons.Create(ctx, p); err != nil {
			return err
		}
		if err := writeAudit(ctx, tx, domain.EntityPerson, p.ID, domain.ActionCreate, actorID,
			"Created person: "+p.FullName); err != nil {
			return err
		}
		loaded, err := persons.FindByID(ctx, p.ID)
		if err != nil {
			return err
		}
		out = loaded
		return nil
	})
	return out, err
}

// Update 全字段覆盖（含 father/mother 重新解析），不存在则 NotFound
func (s *PersonService) Update(ctx context.Context, id, actorID uint, in PersonInput) (*domain.Person, error) {
	var out *domain.Person
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		persons := repo.NewPersonRepo(tx)

		p, err := persons.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFoundf("person %d not found", id)
		}
		p.Father, p.Mother = nil, nil
		if err := applyPersonInput(ctx, persons, p, in); err != nil {
			return err
		}
		p.UpdatedBy = actorID
		if err := persons.Save(ctx, p); err != nil {
			return err
		}
		if err := writeAudit(ctx, tx, domain.EntityPerson, p.ID, domain.ActionUpdate, actorID,
			"Updated person: "+p.FullName); err != nil {
			return err
		}
		loaded, err := persons.FindByID(ctx, p.ID)
		if err != nil {
			return err
		}
		out = loaded
		return nil
	})
	return out, err
}

// Delete 先记审计再删除（同一事务，删除失败则审计一起回滚）。
// 悬挂引用的处置：指向该人物的 father/mother 链接显式置空；
// 仍被 Relationship 引用时拒绝删除（Conflict），不做级联。
func (s *PersonService) Delete(ctx context.Context, id, actorID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		persons := repo.NewPersonRepo(tx)
		rels := repo.NewRelationshipRepo(tx)

		if err := writeAudit(ctx, tx, domain.EntityPerson, id, domain.ActionDelete, actorID,
			fmt.Sprintf("Deleted person with ID: %d", id)); err != nil {
			return err
		}
		n, err := rels.CountForPerson(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.Conflictf("person %d is still referenced by %d relationship(s)", id, n)
		}
		if err := persons.ClearParentRefs(ctx, id); err != nil {
			return err
		}
		removed, err := persons.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !removed {
			return domain.NotFoundf("person %d not found", id)
		}
		return nil
	})
}

// ListMine 只返回调用者创建的人物；身份解析不到时给空列表而非报错
func (s *PersonService) ListMine(ctx context.Context, actorID uint) ([]domain.Person, error) {
	if actorID == 0 {
		return []domain.Person{}, nil
	}
	return repo.NewPersonRepo(s.db).ListByCreator(ctx, actorID)
}

// Get 按 id 读取，无归属过滤
func (s *PersonService) Get(ctx context.Context, id uint) (*domain.Person, error) {
	p, err := repo.NewPersonRepo(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFoundf("person %d not found", id)
	}
	return p, nil
}

func applyPersonInput(ctx context.Context, persons *repo.PersonRepo, p *domain.Person, in PersonInput) error {
	p.FullName = in.FullName
	p.Gender = in.Gender
	p.DateOfBirth = in.DateOfBirth
	p.DateOfDeath = in.DateOfDeath
	p.IsAlive = true
	if in.IsAlive != nil {
		p.IsAlive = *in.IsAlive
	}
	p.ImageURL = in.ImageURL
	p.ContactNumber = in.ContactNumber
	p.Email = in.Email

	resolve := func(id *uint) (*uint, error) {
		if id == nil {
			return nil, nil
		}
		ok, err := persons.Exists(ctx, *id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil // 静默置空
		}
		return id, nil
	}
	var err error
	if p.FatherID, err = resolve(in.FatherID); err != nil {
		return err
	}
	if p.MotherID, err = resolve(in.MotherID); err != nil {
		return err
	}
	return nil
}
