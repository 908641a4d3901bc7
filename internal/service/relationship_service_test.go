package service

import (
	"context"
	"errors"
	"testing"

	"familytree-api/internal/domain"
)

func TestRelationshipAdd(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	persons := NewPersonService(db)
	svc := NewRelationshipService(db)

	a, _ := persons.Create(ctx, 1, personFixture("Adam"))
	b, _ := persons.Create(ctx, 1, personFixture("Beth"))

	rel, err := svc.Add(ctx, 1, RelationshipInput{
		Person1ID:        &a.ID,
		Person2ID:        &b.ID,
		RelationshipType: domain.RelMarried,
		StartDate:        mustDate(t, "1980-03-01"),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if rel.Person1.ID == 0 || rel.Person2.ID == 0 {
		t.Fatalf("endpoints not preloaded: %+v", rel)
	}
	if rel.Person1.FullName != "Adam" || rel.Person2.FullName != "Beth" {
		t.Fatalf("wrong endpoints: %s / %s", rel.Person1.FullName, rel.Person2.FullName)
	}
	if n := countAudit(t, db, domain.EntityRelationship, domain.ActionCreate); n != 1 {
		t.Fatalf("expected 1 create audit entry, got %d", n)
	}
}

// 与 Person 的静默置空不同：端点解析不到是硬失败，且不得留痕
func TestRelationshipAddUnknownEndpointHardFails(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	persons := NewPersonService(db)
	svc := NewRelationshipService(db)

	a, _ := persons.Create(ctx, 1, personFixture("Adam"))
	ghost := uint(4242)

	cases := []RelationshipInput{
		{Person1ID: &ghost, Person2ID: &a.ID, RelationshipType: domain.RelMarried},
		{Person1ID: &a.ID, Person2ID: &ghost, RelationshipType: domain.RelMarried},
		{Person1ID: nil, Person2ID: &a.ID, RelationshipType: domain.RelPartner},
	}
	for i, in := range cases {
		if _, err := svc.Add(ctx, 1, in); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("case %d: want ErrNotFound, got %v", i, err)
		}
	}

	var n int64
	if err := db.Model(&domain.Relationship{}).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("no relationship rows expected, got %d", n)
	}
	if n := countAudit(t, db, domain.EntityRelationship, ""); n != 0 {
		t.Fatalf("failed add must not audit, got %d entries", n)
	}
}

func TestRelationshipForPersonUndirected(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	persons := NewPersonService(db)
	svc := NewRelationshipService(db)

	a, _ := persons.Create(ctx, 1, personFixture("Adam"))
	b, _ := persons.Create(ctx, 1, personFixture("Beth"))
	c, _ := persons.Create(ctx, 2, personFixture("Cora"))

	// b 一次在左端、一次在右端
	svc.Add(ctx, 1, RelationshipInput{Person1ID: &a.ID, Person2ID: &b.ID, RelationshipType: domain.RelMarried})
	svc.Add(ctx, 2, RelationshipInput{Person1ID: &b.ID, Person2ID: &c.ID, RelationshipType: domain.RelPartner})

	forB, err := svc.ForPerson(ctx, b.ID)
	if err != nil {
		t.Fatalf("for person: %v", err)
	}
	if len(forB) != 2 {
		t.Fatalf("expected both edges for b, got %d", len(forB))
	}

	forA, _ := svc.ForPerson(ctx, a.ID)
	if len(forA) != 1 {
		t.Fatalf("expected 1 edge for a, got %d", len(forA))
	}

	// 全局列表没有归属过滤
	all, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 edges globally, got %d", len(all))
	}
}

func TestRelationshipDelete(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	persons := NewPersonService(db)
	svc := NewRelationshipService(db)

	a, _ := persons.Create(ctx, 1, personFixture("Adam"))
	b, _ := persons.Create(ctx, 1, personFixture("Beth"))
	rel, err := svc.Add(ctx, 1, RelationshipInput{
		Person1ID: &a.ID, Person2ID: &b.ID, RelationshipType: domain.RelDivorced,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.Delete(ctx, rel.ID, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := countAudit(t, db, domain.EntityRelationship, domain.ActionDelete); n != 1 {
		t.Fatalf("expected 1 delete audit entry, got %d", n)
	}

	// 不存在的边：NotFound 且审计回滚
	if err := svc.Delete(ctx, rel.ID, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if n := countAudit(t, db, domain.EntityRelationship, domain.ActionDelete); n != 1 {
		t.Fatalf("failed delete must not add audit, got %d", n)
	}

	// 删除后人物即可删除
	if err := persons.Delete(ctx, a.ID, 1); err != nil {
		t.Fatalf("person delete after edge removal: %v", err)
	}
}
