package domain

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestScopeID_NoTenantBound(t *testing.T) {
	if _, ok := ScopeID(context.Background()); ok {
		t.Fatal("expected no scope on an empty context")
	}
}

func TestScopeID_TenantBound(t *testing.T) {
	tenant := &Tenant{ID: uuid.New(), Handle: "acme", Status: TenantActive}
	ctx := WithTenant(context.Background(), tenant)

	id, ok := ScopeID(ctx)
	if !ok {
		t.Fatal("expected scope with tenant bound")
	}
	if id != tenant.ID {
		t.Fatalf("expected %s, got %s", tenant.ID, id)
	}
}

func TestStampTenant_FillsUnsetField(t *testing.T) {
	tenant := &Tenant{ID: uuid.New(), Handle: "acme"}
	ctx := WithTenant(context.Background(), tenant)

	var target uuid.UUID
	StampTenant(ctx, &target)
	if target != tenant.ID {
		t.Fatalf("expected stamped id %s, got %s", tenant.ID, target)
	}
}

func TestStampTenant_NeverOverwritesExplicitValue(t *testing.T) {
	tenant := &Tenant{ID: uuid.New(), Handle: "acme"}
	ctx := WithTenant(context.Background(), tenant)

	// Explicit value differing from the resolved tenant must survive.
	explicit := uuid.New()
	target := explicit
	StampTenant(ctx, &target)
	if target != explicit {
		t.Fatalf("explicit tenant id was overwritten: %s", target)
	}
}

func TestStampTenant_UnresolvedLeavesFieldUnset(t *testing.T) {
	var target uuid.UUID
	StampTenant(context.Background(), &target)
	if target != uuid.Nil {
		t.Fatalf("expected unset field to stay unset, got %s", target)
	}
}
