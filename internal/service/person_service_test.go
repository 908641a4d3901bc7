package service

import (
	"context"
	"errors"
	"testing"

	"familytree-api/internal/domain"
)

func personFixture(name string) PersonInput {
	return PersonInput{FullName: name, Gender: domain.GenderMale}
}

func TestPersonCreateResolvesParents(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewPersonService(db)

	father, err := svc.Create(ctx, 1, personFixture("John Sr"))
	if err != nil {
		t.Fatalf("create father: %v", err)
	}

	in := personFixture("John Jr")
	in.FatherID = &father.ID
	child, err := svc.Create(ctx, 1, in)
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if child.FatherID == nil || *child.FatherID != father.ID {
		t.Fatalf("father link not set: %+v", child.FatherID)
	}
	if child.Father == nil || child.Father.FullName != "John Sr" {
		t.Fatalf("father not preloaded: %+v", child.Father)
	}
}

func TestPersonCreateUnknownParentSilentlyNil(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewPersonService(db)

	ghost := uint(4242)
	in := personFixture("Orphan")
	in.FatherID = &ghost
	in.MotherID = &ghost

	p, err := svc.Create(ctx, 1, in)
	if err != nil {
		t.Fatalf("unresolved parent must not fail the create: %v", err)
	}
	if p.FatherID != nil || p.MotherID != nil {
		t.Fatalf("unresolved parents should be stored as null, got father=%v mother=%v", p.FatherID, p.MotherID)
	}
	// 创建本身照常审计
	if n := countAudit(t, db, domain.EntityPerson, domain.ActionCreate); n != 1 {
		t.Fatalf("expected 1 create audit entry, got %d", n)
	}
}

func TestPersonCreateDefaultsAndStamps(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewPersonService(db)

	in := personFixture("Jane")
	in.Gender = domain.GenderFemale
	in.DateOfBirth = mustDate(t, "1950-06-15")

	p, err := svc.Create(ctx, 7, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !p.IsAlive {
		t.Fatal("isAlive should default to true")
	}
	if p.CreatedBy != 7 || p.UpdatedBy != 7 {
		t.Fatalf("ownership stamps wrong: createdBy=%d updatedBy=%d", p.CreatedBy, p.UpdatedBy)
	}
	if p.DateOfBirth == nil || p.DateOfBirth.Format("2006-01-02") != "1950-06-15" {
		t.Fatalf("date of birth round trip failed: %v", p.DateOfBirth)
	}
}

func TestPersonUpdateOverwritesAllFields(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewPersonService(db)

	father, _ := svc.Create(ctx, 1, personFixture("Father"))
	in := personFixture("Child")
	in.FatherID = &father.ID
	in.Email = "child@example.com"
	child, err := svc.Create(ctx, 1, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// 全量覆盖：不带 fatherId/email 的更新要把它们清掉
	upd := personFixture("Child Renamed")
	dead := false
	upd.IsAlive = &dead
	got, err := svc.Update(ctx, child.ID, 2, upd)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.FullName != "Child Renamed" || got.Email != "" {
		t.Fatalf("fields not overwritten: %+v", got)
	}
	if got.FatherID != nil {
		t.Fatalf("father link should be cleared on full overwrite, got %v", *got.FatherID)
	}
	if got.IsAlive {
		t.Fatal("isAlive should be overwritten to false")
	}
	if got.UpdatedBy != 2 || got.CreatedBy != 1 {
		t.Fatalf("stamps wrong after update: createdBy=%d updatedBy=%d", got.CreatedBy, got.UpdatedBy)
	}
	if n := countAudit(t, db, domain.EntityPerson, domain.ActionUpdate); n != 1 {
		t.Fatalf("expected 1 update audit entry, got %d", n)
	}
}

func TestPersonUpdateMissingNotFound(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewPersonService(db)

	if _, err := svc.Update(ctx, 999, 1, personFixture("Nobody")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if n := countAudit(t, db, domain.EntityPerson, ""); n != 0 {
		t.Fatalf("failed update must not audit, got %d entries", n)
	}
}

func TestPersonDeleteClearsParentLinks(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewPersonService(db)

	father, _ := svc.Create(ctx, 1, personFixture("Father"))
	in := personFixture("Child")
	in.FatherID = &father.ID
	child, _ := svc.Create(ctx, 1, in)

	if err := svc.Delete(ctx, father.ID, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, father.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("person should be gone, got %v", err)
	}
	got, err := svc.Get(ctx, child.ID)
	if err != nil {
		t.Fatalf("get child: %v", err)
	}
	if got.FatherID != nil {
		t.Fatalf("child's father link should be nulled, got %v", *got.FatherID)
	}
	if n := countAudit(t, db, domain.EntityPerson, domain.ActionDelete); n != 1 {
		t.Fatalf("expected 1 delete audit entry, got %d", n)
	}
}

func TestPersonDeleteBlockedByRelationship(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewPersonService(db)
	rels := NewRelationshipService(db)

	a, _ := svc.Create(ctx, 1, personFixture("A"))
	b, _ := svc.Create(ctx, 1, personFixture("B"))
	if _, err := rels.Add(ctx, 1, RelationshipInput{
		Person1ID: &a.ID, Person2ID: &b.ID, RelationshipType: domain.RelMarried,
	}); err != nil {
		t.Fatalf("add relationship: %v", err)
	}

	before := countAudit(t, db, domain.EntityPerson, domain.ActionDelete)
	if err := svc.Delete(ctx, a.ID, 1); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("want ErrConflict while referenced, got %v", err)
	}
	// 冲突回滚，连审计一起
	if after := countAudit(t, db, domain.EntityPerson, domain.ActionDelete); after != before {
		t.Fatalf("rejected delete must not persist audit: before=%d after=%d", before, after)
	}
	if _, err := svc.Get(ctx, a.ID); err != nil {
		t.Fatalf("person should survive rejected delete: %v", err)
	}
}

func TestPersonDeleteMissingNotFound(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewPersonService(db)

	if err := svc.Delete(ctx, 999, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if n := countAudit(t, db, domain.EntityPerson, ""); n != 0 {
		t.Fatalf("failed delete must roll back its audit entry, got %d", n)
	}
}

func TestPersonListMineScopedToCreator(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewPersonService(db)

	svc.Create(ctx, 1, personFixture("Mine 1"))
	svc.Create(ctx, 1, personFixture("Mine 2"))
	svc.Create(ctx, 2, personFixture("Theirs"))

	mine, err := svc.ListMine(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 persons for actor 1, got %d", len(mine))
	}
	for _, p := range mine {
		if p.CreatedBy != 1 {
			t.Fatalf("foreign person in listing: %+v", p)
		}
	}

	// 身份解析不到 → 空列表
	none, err := svc.ListMine(ctx, 0)
	if err != nil {
		t.Fatalf("list anonymous: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty list for unknown actor, got %d", len(none))
	}
}
