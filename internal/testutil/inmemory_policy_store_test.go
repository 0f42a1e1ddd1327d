package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverbridge/coverbridge/internal/domain/policy"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
)

func policyStoreCtx(orgID string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxOrganizationID, orgID)
	ctx = context.WithValue(ctx, types.CtxUserID, TestUserID)
	return ctx
}

func newStoredPolicy(id, insurerID, number string, orgID string) *policy.Policy {
	return &policy.Policy{
		ID:           id,
		ClientID:     "clnt_1",
		InsurerID:    insurerID,
		PolicyNumber: number,
		PolicyStatus: types.PolicyStatusPending,
		StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		BaseModel: types.BaseModel{
			OrganizationID: orgID,
			Status:         types.StatusActive,
		},
	}
}

func TestPolicyStore_UniquePerInsurer(t *testing.T) {
	store := NewInMemoryPolicyStore()
	ctx := policyStoreCtx(TestOrganizationID)

	require.NoError(t, store.Create(ctx, newStoredPolicy("poly_1", "insr_1", "POL-1", TestOrganizationID)))

	err := store.Create(ctx, newStoredPolicy("poly_2", "insr_1", "POL-1", TestOrganizationID))
	assert.True(t, ierr.IsAlreadyExists(err))

	// Same number under another insurer is fine.
	assert.NoError(t, store.Create(ctx, newStoredPolicy("poly_3", "insr_2", "POL-1", TestOrganizationID)))
}

func TestPolicyStore_UpdateStatusConditional(t *testing.T) {
	store := NewInMemoryPolicyStore()
	ctx := policyStoreCtx(TestOrganizationID)

	p := newStoredPolicy("poly_1", "insr_1", "POL-1", TestOrganizationID)
	require.NoError(t, store.Create(ctx, p))

	// The write applies only while the stored status matches.
	p.PolicyStatus = types.PolicyStatusActive
	require.NoError(t, store.UpdateStatus(ctx, p, types.PolicyStatusPending))

	// A second writer that still believes the policy is pending loses.
	stale := newStoredPolicy("poly_1", "insr_1", "POL-1", TestOrganizationID)
	stale.PolicyStatus = types.PolicyStatusCancelled
	err := store.UpdateStatus(ctx, stale, types.PolicyStatusPending)
	assert.True(t, ierr.IsInvalidTransition(err))

	got, err := store.Get(ctx, "poly_1")
	require.NoError(t, err)
	assert.Equal(t, types.PolicyStatusActive, got.PolicyStatus)
}

func TestPolicyStore_OrganizationIsolation(t *testing.T) {
	store := NewInMemoryPolicyStore()
	ctx := policyStoreCtx(TestOrganizationID)

	require.NoError(t, store.Create(ctx, newStoredPolicy("poly_1", "insr_1", "POL-1", TestOrganizationID)))

	other := policyStoreCtx("org_other")
	_, err := store.Get(other, "poly_1")
	assert.True(t, ierr.IsNotFound(err))

	policies, err := store.List(other, nil)
	require.NoError(t, err)
	assert.Empty(t, policies)
}

func TestPolicyStore_GetReturnsCopy(t *testing.T) {
	store := NewInMemoryPolicyStore()
	ctx := policyStoreCtx(TestOrganizationID)

	require.NoError(t, store.Create(ctx, newStoredPolicy("poly_1", "insr_1", "POL-1", TestOrganizationID)))

	got, err := store.Get(ctx, "poly_1")
	require.NoError(t, err)
	got.PolicyNumber = "MUTATED"

	again, err := store.Get(ctx, "poly_1")
	require.NoError(t, err)
	assert.Equal(t, "POL-1", again.PolicyNumber)
}
