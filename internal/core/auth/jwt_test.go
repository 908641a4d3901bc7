package auth

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	j := &JWTer{Secret: []byte("unit-test-secret"), Issuer: "familytree", TTL: time.Hour}

	token, err := j.Issue(42, "alice", []string{"USER", "ADMIN"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	c, err := j.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UID != 42 || c.Username != "alice" {
		t.Fatalf("claims mismatch: %+v", c)
	}
	if !c.HasRole("ADMIN") || c.HasRole("SUPERADMIN") {
		t.Fatalf("role check wrong: %v", c.Roles)
	}
	// 多个候选角色里命中一个即可
	if !c.HasRole("SUPERADMIN", "USER") {
		t.Fatal("any-of role matching failed")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	j1 := &JWTer{Secret: []byte("secret-one"), Issuer: "familytree", TTL: time.Hour}
	j2 := &JWTer{Secret: []byte("secret-two"), Issuer: "familytree", TTL: time.Hour}

	token, err := j1.Issue(1, "alice", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := j2.Parse(token); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	issued := &JWTer{Secret: []byte("shared"), Issuer: "someone-else", TTL: time.Hour}
	parser := &JWTer{Secret: []byte("shared"), Issuer: "familytree", TTL: time.Hour}

	token, err := issued.Issue(1, "alice", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := parser.Parse(token); err == nil {
		t.Fatal("issuer mismatch must be rejected")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	// 负 TTL 直接签出已过期的 token，超过 60s leeway
	j := &JWTer{Secret: []byte("shared"), Issuer: "familytree", TTL: -2 * time.Minute}
	token, err := j.Issue(1, "alice", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := j.Parse(token); err == nil {
		t.Fatal("expired token must be rejected")
	}
}
