package author

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/cache"
)

var testAuthor = Author{
	ID:            "6b9a1efc-9db4-4ecb-97b4-f66f22b87c52",
	FirstName:     "Octavia",
	LastName:      "Butler",
	DateOfBirth:   "1947-06-22",
	HometownCity:  "Pasadena",
	HometownState: "CA",
	NumOfBooks:    0,
	Books:         []string{},
}

func TestCachedRepo_GetByID_ReadThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := NewMockStore(ctrl)
	mem := cache.NewMemory()
	repo := NewCachedRepo(mockStore, mem, zap.NewNop())

	// First read misses the cache and hits the store.
	mockStore.EXPECT().FindByID(gomock.Any(), testAuthor.ID).Return(testAuthor, true, nil).Times(1)

	got, err := repo.GetByID(context.Background(), testAuthor.ID)
	require.NoError(t, err)
	assert.Equal(t, testAuthor, got)

	// Second read is served from the cache; no store call expected.
	got, err = repo.GetByID(context.Background(), testAuthor.ID)
	require.NoError(t, err)
	assert.Equal(t, testAuthor, got)
}

func TestCachedRepo_GetByID_BlankID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewCachedRepo(NewMockStore(ctrl), cache.NewMemory(), zap.NewNop())

	for _, id := range []string{"", "   "} {
		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	}
}

func TestCachedRepo_GetByID_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := NewMockStore(ctrl)
	repo := NewCachedRepo(mockStore, cache.NewMemory(), zap.NewNop())

	mockStore.EXPECT().FindByID(gomock.Any(), "missing").Return(Author{}, false, nil)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCachedRepo_List_CachesListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := NewMockStore(ctrl)
	mem := cache.NewMemory()
	repo := NewCachedRepo(mockStore, mem, zap.NewNop())

	mockStore.EXPECT().FindAll(gomock.Any()).Return([]Author{testAuthor}, nil).Times(1)

	first, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCachedRepo_List_EmptyStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := NewMockStore(ctrl)
	repo := NewCachedRepo(mockStore, cache.NewMemory(), zap.NewNop())

	mockStore.EXPECT().FindAll(gomock.Any()).Return(nil, nil)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCachedRepo_RefreshListing_PatchesCachedValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := NewMockStore(ctrl)
	mem := cache.NewMemory()
	repo := NewCachedRepo(mockStore, mem, zap.NewNop())

	mockStore.EXPECT().FindAll(gomock.Any()).Return([]Author{testAuthor}, nil).Times(1)
	_, err := repo.List(context.Background())
	require.NoError(t, err)

	other := testAuthor
	other.ID = "e3f8b2c4-0f0f-47a9-b9a0-6f4e4ffdbb31"
	repo.RefreshListing(context.Background(), func(authors []Author) []Author {
		return append(authors, other)
	})

	// The patched listing is served without another store call.
	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

// brokenCache fails every operation, standing in for an unreachable redis.
type brokenCache struct{}

var errCacheDown = errors.New("connection refused")

func (brokenCache) Exists(context.Context, string) (bool, error) { return false, errCacheDown }
func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errCacheDown
}
func (brokenCache) Set(context.Context, string, []byte, time.Duration) error { return errCacheDown }
func (brokenCache) Delete(context.Context, string) error                     { return errCacheDown }
func (brokenCache) Close(context.Context) error                              { return nil }

func TestCachedRepo_CacheFailuresAreNonFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := NewMockStore(ctrl)
	repo := NewCachedRepo(mockStore, brokenCache{}, zap.NewNop())

	mockStore.EXPECT().FindByID(gomock.Any(), testAuthor.ID).Return(testAuthor, true, nil)
	mockStore.EXPECT().FindAll(gomock.Any()).Return([]Author{testAuthor}, nil)

	got, err := repo.GetByID(context.Background(), testAuthor.ID)
	require.NoError(t, err)
	assert.Equal(t, testAuthor, got)

	listed, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	// Write-side helpers swallow the failure too.
	repo.UpsertOne(context.Background(), testAuthor)
	repo.EvictOne(context.Background(), testAuthor.ID)
}

func TestCachedRepo_EvictOne(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := NewMockStore(ctrl)
	mem := cache.NewMemory()
	repo := NewCachedRepo(mockStore, mem, zap.NewNop())

	repo.UpsertOne(context.Background(), testAuthor)
	exists, err := mem.Exists(context.Background(), cache.EntryKey(cache.Authors, testAuthor.ID))
	require.NoError(t, err)
	require.True(t, exists)

	repo.EvictOne(context.Background(), testAuthor.ID)
	exists, err = mem.Exists(context.Background(), cache.EntryKey(cache.Authors, testAuthor.ID))
	require.NoError(t, err)
	assert.False(t, exists)
}
