package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven/mocks"
)

func TestEnsureListsCreatesMissing(t *testing.T) {
	store := mocks.NewMockPriceListStore()
	store.Add(&domain.PriceList{Code: "1", Name: "General", Active: true})
	p := NewPriceListProvisioner(store, testLogger())

	ids, err := p.EnsureLists(context.Background(), []string{"1", "2"})
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Equal(t, store.Get("1").ID, ids["1"])

	created := store.Get("2")
	require.NotNil(t, created)
	assert.Equal(t, domain.PlaceholderPriceListName("2"), created.Name)
	assert.True(t, created.Active)
	assert.False(t, created.Default)
}

func TestEnsureListsCreateFailureIsolated(t *testing.T) {
	store := mocks.NewMockPriceListStore()
	store.CreateErrFor = map[string]error{"3": errors.New("boom")}
	p := NewPriceListProvisioner(store, testLogger())

	ids, err := p.EnsureLists(context.Background(), []string{"2", "3"})
	require.NoError(t, err)
	assert.Contains(t, ids, "2")
	assert.NotContains(t, ids, "3")
}

func TestEnsureListsFetchFailure(t *testing.T) {
	store := mocks.NewMockPriceListStore()
	store.FetchErr = errors.New("db down")
	p := NewPriceListProvisioner(store, testLogger())

	_, err := p.EnsureLists(context.Background(), []string{"1"})
	assert.Error(t, err)
}

func TestEnsureDefaultPromotesWellKnownList(t *testing.T) {
	store := mocks.NewMockPriceListStore()
	store.Add(&domain.PriceList{Code: "1", Name: "General", Active: true})
	store.Add(&domain.PriceList{Code: "2", Name: "Mayorista", Active: true})
	p := NewPriceListProvisioner(store, testLogger())

	require.NoError(t, p.EnsureDefault(context.Background()))
	assert.True(t, store.Get("1").Default)
	assert.False(t, store.Get("2").Default)

	// Idempotent: a second pass changes nothing.
	require.NoError(t, p.EnsureDefault(context.Background()))
	assert.True(t, store.Get("1").Default)
}

func TestEnsureDefaultKeepsExistingDefault(t *testing.T) {
	store := mocks.NewMockPriceListStore()
	store.Add(&domain.PriceList{Code: "1", Name: "General", Active: true})
	store.Add(&domain.PriceList{Code: "2", Name: "Mayorista", Active: true, Default: true})
	p := NewPriceListProvisioner(store, testLogger())

	require.NoError(t, p.EnsureDefault(context.Background()))
	assert.False(t, store.Get("1").Default)
	assert.True(t, store.Get("2").Default)
}

func TestEnsureDefaultNoWellKnownList(t *testing.T) {
	store := mocks.NewMockPriceListStore()
	store.Add(&domain.PriceList{Code: "9", Name: "Especial", Active: true})
	p := NewPriceListProvisioner(store, testLogger())

	// No list "1" and no default: nothing to promote, not an error.
	require.NoError(t, p.EnsureDefault(context.Background()))
	assert.False(t, store.Get("9").Default)
}
