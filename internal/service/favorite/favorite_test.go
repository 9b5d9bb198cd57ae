package favorite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/osint-framework/internal/model"
	"github.com/ashwinyue/osint-framework/internal/repository"
	"github.com/ashwinyue/osint-framework/internal/testutil"
)

// mockRepo 模拟收藏存储
type mockRepo struct {
	mu        sync.Mutex
	saved     []*model.Favorite
	saves     int
	loadErr   error
	saveErr   error
	preloaded []*model.Favorite
}

func (m *mockRepo) Load(ctx context.Context) ([]*model.Favorite, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.preloaded, nil
}

func (m *mockRepo) Save(ctx context.Context, favorites []*model.Favorite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.saved = make([]*model.Favorite, len(favorites))
	for i, f := range favorites {
		m.saved[i] = f.Clone()
	}
	return nil
}

func (m *mockRepo) Close() error { return nil }

// recorder 记录观察到的操作
type recorder struct {
	mu  sync.Mutex
	ops []string
}

func (r *recorder) ObserveFavoriteOp(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		op += ":error"
	}
	r.ops = append(r.ops, op)
}

func newTestService(t *testing.T, repo repository.FavoriteRepository, opts ...Option) *Service {
	t.Helper()
	return NewService(context.Background(), repo, testutil.CatalogProvider(t, ""), nil, opts...)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestAddFavorite(t *testing.T) {
	repo := &mockRepo{}
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, repo, WithClock(func() time.Time { return now }))

	fav, err := svc.Add(context.Background(), "search", "googleDorks", model.FavoriteMetadata{Notes: strPtr("dorks")})
	require.NoError(t, err)

	assert.Equal(t, "search_googleDorks", fav.ID)
	assert.Equal(t, "Google Dorks", fav.Name)
	assert.Equal(t, "Search Engines", fav.Subcategory)
	assert.Equal(t, model.ToolTypeWeb, fav.Type)
	assert.Equal(t, "dorks", fav.Notes)
	assert.Equal(t, 0, fav.UsageCount)
	assert.Nil(t, fav.LastUsed)
	assert.Equal(t, now, fav.AddedAt)

	require.Len(t, repo.saved, 1)
	assert.True(t, svc.IsFavorited("search", "googleDorks"))
}

func TestAddFavoriteUpsert(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(t, repo)
	ctx := context.Background()

	first, err := svc.Add(ctx, "domains", "whois", model.FavoriteMetadata{Rating: intPtr(3)})
	require.NoError(t, err)
	second, err := svc.Add(ctx, "domains", "whois", model.FavoriteMetadata{Rating: intPtr(3)})
	require.NoError(t, err)

	list := svc.List()
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].Rating)
	assert.Equal(t, first.AddedAt, second.AddedAt)

	// 合并元数据，不覆盖未提供的字段
	_, err = svc.Add(ctx, "domains", "whois", model.FavoriteMetadata{Notes: strPtr("registrar")})
	require.NoError(t, err)
	fav, ok := svc.Get("domains", "whois")
	require.True(t, ok)
	assert.Equal(t, 3, fav.Rating)
	assert.Equal(t, "registrar", fav.Notes)
}

func TestAddFavoriteErrors(t *testing.T) {
	svc := newTestService(t, &mockRepo{})
	ctx := context.Background()

	tests := []struct {
		name     string
		category string
		toolID   string
		meta     model.FavoriteMetadata
		want     error
	}{
		{"missing category", "", "whois", model.FavoriteMetadata{}, model.ErrValidation},
		{"missing tool", "domains", " ", model.FavoriteMetadata{}, model.ErrValidation},
		{"rating too high", "domains", "whois", model.FavoriteMetadata{Rating: intPtr(6)}, model.ErrValidation},
		{"rating negative", "domains", "whois", model.FavoriteMetadata{Rating: intPtr(-1)}, model.ErrValidation},
		{"unknown tool", "domains", "nonexistent", model.FavoriteMetadata{}, model.ErrNotFound},
		{"unknown category", "nope", "whois", model.FavoriteMetadata{}, model.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tt.category, tt.toolID, tt.meta)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, 0, svc.Count())
}

func TestRemoveFavorite(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.Add(ctx, "domains", "whois", model.FavoriteMetadata{})
	require.NoError(t, err)

	_, err = svc.Remove(ctx, "domains", "nonexistent")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, 1, svc.Count())

	removed, err := svc.Remove(ctx, "domains", "whois")
	require.NoError(t, err)
	assert.Equal(t, "domains_whois", removed.ID)
	assert.Equal(t, 0, svc.Count())
	assert.Empty(t, repo.saved)
}

func TestUpdateFavorite(t *testing.T) {
	svc := newTestService(t, &mockRepo{})
	ctx := context.Background()

	_, err := svc.Update(ctx, "domains", "whois", model.FavoriteMetadata{Rating: intPtr(2)})
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.Add(ctx, "domains", "whois", model.FavoriteMetadata{})
	require.NoError(t, err)
	fav, err := svc.Update(ctx, "domains", "whois", model.FavoriteMetadata{Rating: intPtr(5), Notes: strPtr("ok")})
	require.NoError(t, err)
	assert.Equal(t, 5, fav.Rating)
	assert.Equal(t, "ok", fav.Notes)
}

func TestIncrementUsage(t *testing.T) {
	repo := &mockRepo{}
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, repo, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, svc.IncrementUsage(ctx, "domains", "whois"))
	assert.Equal(t, 0, repo.saves, "not favorited: no-op")

	_, err := svc.Add(ctx, "domains", "whois", model.FavoriteMetadata{})
	require.NoError(t, err)
	require.NoError(t, svc.IncrementUsage(ctx, "domains", "whois"))
	require.NoError(t, svc.IncrementUsage(ctx, "domains", "whois"))

	fav, _ := svc.Get("domains", "whois")
	assert.Equal(t, 2, fav.UsageCount)
	require.NotNil(t, fav.LastUsed)
	assert.Equal(t, now, *fav.LastUsed)
}

func TestPersistenceFailureKeepsMemoryState(t *testing.T) {
	repo := &mockRepo{saveErr: errors.New("disk full")}
	obs := &recorder{}
	svc := newTestService(t, repo, WithObserver(obs))

	fav, err := svc.Add(context.Background(), "domains", "whois", model.FavoriteMetadata{})
	assert.ErrorIs(t, err, model.ErrPersistence)
	require.NotNil(t, fav)
	assert.True(t, svc.IsFavorited("domains", "whois"))
	assert.Equal(t, []string{"add:error"}, obs.ops)

	// 恢复后下一次写入收敛
	repo.saveErr = nil
	require.NoError(t, svc.IncrementUsage(context.Background(), "domains", "whois"))
	require.Len(t, repo.saved, 1)
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	svc := newTestService(t, &mockRepo{loadErr: errors.New("corrupt")})
	assert.Equal(t, 0, svc.Count())
}

func TestLoadDropsDuplicateIDs(t *testing.T) {
	repo := &mockRepo{preloaded: []*model.Favorite{
		{ID: "domains_whois", Notes: "first"},
		{ID: "domains_whois", Notes: "second"},
	}}
	svc := newTestService(t, repo)
	list := svc.List()
	require.Len(t, list, 1)
	assert.Equal(t, "first", list[0].Notes)
}

func TestListReturnsCopies(t *testing.T) {
	svc := newTestService(t, &mockRepo{})
	_, err := svc.Add(context.Background(), "domains", "whois", model.FavoriteMetadata{})
	require.NoError(t, err)

	list := svc.List()
	list[0].Notes = "mutated"
	fav, _ := svc.Get("domains", "whois")
	assert.Empty(t, fav.Notes)
}

func TestClear(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(t, repo)
	ctx := context.Background()
	_, _ = svc.Add(ctx, "domains", "whois", model.FavoriteMetadata{})
	_, _ = svc.Add(ctx, "search", "shodan", model.FavoriteMetadata{})

	n, err := svc.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, svc.Count())
	assert.Empty(t, repo.saved)
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestService(t, &mockRepo{})
	_, _ = src.Add(ctx, "domains", "whois", model.FavoriteMetadata{Rating: intPtr(4)})
	_, _ = src.Add(ctx, "search", "googleDorks", model.FavoriteMetadata{})
	_, _ = src.Add(ctx, "social", "sherlock", model.FavoriteMetadata{})

	exported := src.Export()
	require.Len(t, exported.Favorites, 3)
	assert.Equal(t, 3, exported.Analytics.TotalFavorites)

	dst := newTestService(t, &mockRepo{})
	res, err := dst.Import(ctx, exported)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Imported)
	assert.Equal(t, 3, res.Total)

	srcIDs, dstIDs := ids(src.List()), ids(dst.List())
	assert.Equal(t, srcIDs, dstIDs)

	res, err = dst.Import(ctx, exported)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Imported)
	assert.Equal(t, 3, dst.Count())
}

func TestImportSkipsExistingAndFillsIDs(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &mockRepo{})
	_, _ = svc.Add(ctx, "domains", "whois", model.FavoriteMetadata{Notes: strPtr("mine")})

	res, err := svc.Import(ctx, &model.FavoritesExport{Favorites: []*model.Favorite{
		{ID: "domains_whois", Notes: "theirs"},
		{Category: "custom", ToolID: "thing", Rating: 9, UsageCount: -3},
		{Name: "no key"},
		nil,
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 4, res.Total)

	fav, _ := svc.Get("domains", "whois")
	assert.Equal(t, "mine", fav.Notes)

	custom, ok := svc.Get("custom", "thing")
	require.True(t, ok)
	assert.Equal(t, model.MaxRating, custom.Rating)
	assert.Equal(t, 0, custom.UsageCount)
	assert.False(t, custom.AddedAt.IsZero())

	_, err = svc.Import(ctx, nil)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestCanceledContextStillPersists(t *testing.T) {
	repo := repository.NewFileFavoriteRepository(filepath.Join(t.TempDir(), "favorites.json"))
	svc := newTestService(t, repo)
	ctx := testutil.CanceledContext()

	_, err := svc.Add(ctx, "search", "shodan", model.FavoriteMetadata{})
	require.NoError(t, err)
	require.NoError(t, svc.IncrementUsage(ctx, "search", "shodan"))

	onDisk, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, onDisk, 1)
	assert.Equal(t, "search_shodan", onDisk[0].ID)
	assert.Equal(t, 1, onDisk[0].UsageCount)

	_, err = svc.Remove(ctx, "search", "shodan")
	require.NoError(t, err)
	onDisk, err = repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, onDisk)
}

func TestConcurrentMutations(t *testing.T) {
	repo := repository.NewFileFavoriteRepository(filepath.Join(t.TempDir(), "favorites.json"))
	svc := newTestService(t, repo)
	ctx := context.Background()

	keys := [][2]string{{"domains", "whois"}, {"search", "googleDorks"}, {"search", "shodan"}, {"social", "sherlock"}}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		for _, k := range keys {
			wg.Add(1)
			go func(category, toolID string) {
				defer wg.Done()
				_, _ = svc.Add(ctx, category, toolID, model.FavoriteMetadata{})
				_ = svc.IncrementUsage(ctx, category, toolID)
			}(k[0], k[1])
		}
	}
	wg.Wait()

	assert.Equal(t, len(keys), svc.Count())

	// 磁盘内容与内存一致
	reloaded := NewService(ctx, repo, testutil.CatalogProvider(t, ""), nil)
	assert.Equal(t, ids(svc.List()), ids(reloaded.List()))
	total := 0
	for _, f := range reloaded.List() {
		total += f.UsageCount
	}
	assert.Equal(t, 20*len(keys), total)
}

func ids(list []*model.Favorite) []string {
	out := make([]string, len(list))
	for i, f := range list {
		out[i] = f.ID
	}
	return out
}
