package controller

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/recipemama/internal/recipeapi"
)

type fakeFetcher struct {
	mu        sync.Mutex
	summaries []recipeapi.Recipe
	listErr   error
	listGate  chan struct{}
	listQueue []*listCall
	details   map[int]recipeapi.Recipe
	detailErr map[int]error
	gates     map[int]chan struct{}
	lastLimit int
}

func newFakeFetcher(summaries ...recipeapi.Recipe) *fakeFetcher {
	f := &fakeFetcher{
		summaries: summaries,
		details:   make(map[int]recipeapi.Recipe),
		detailErr: make(map[int]error),
		gates:     make(map[int]chan struct{}),
	}
	for _, s := range summaries {
		d := s.Clone()
		d.Ingredients = []string{"salt"}
		d.Instructions = []string{fmt.Sprintf("cook %s", s.Name)}
		f.details[s.ID] = d
	}
	return f
}

func (f *fakeFetcher) gate(id int) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[id] = ch
	return ch
}

// listCall is one queued list response. started closes when a fetch picks
// it up; the fetch then waits for gate.
type listCall struct {
	started chan struct{}
	gate    chan struct{}
	items   []recipeapi.Recipe
	err     error
}

func (f *fakeFetcher) queueList(items []recipeapi.Recipe, err error) *listCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := &listCall{
		started: make(chan struct{}),
		gate:    make(chan struct{}),
		items:   items,
		err:     err,
	}
	f.listQueue = append(f.listQueue, call)
	return call
}

func (f *fakeFetcher) FetchSummaries(ctx context.Context, limit int) ([]recipeapi.Recipe, error) {
	f.mu.Lock()
	f.lastLimit = limit
	if len(f.listQueue) > 0 {
		call := f.listQueue[0]
		f.listQueue = f.listQueue[1:]
		f.mu.Unlock()
		close(call.started)
		select {
		case <-call.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if call.err != nil {
			return nil, call.err
		}
		return slices.Clone(call.items), nil
	}
	gate := f.listGate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.summaries), nil
}

func (f *fakeFetcher) FetchRecipe(ctx context.Context, id int) (*recipeapi.Recipe, error) {
	f.mu.Lock()
	gate := f.gates[id]
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.detailErr[id]; err != nil {
		return nil, err
	}
	d, ok := f.details[id]
	if !ok {
		return nil, &recipeapi.StatusError{Path: fmt.Sprintf("/recipes/%d", id), StatusCode: 404}
	}
	d = d.Clone()
	d.Detailed = true
	return &d, nil
}

func sampleRecipes() []recipeapi.Recipe {
	return []recipeapi.Recipe{
		{ID: 1, Name: "Pasta", Cuisine: "Italian"},
		{ID: 2, Name: "Pad Thai", Cuisine: "Thai"},
		{ID: 3, Name: "Margherita Pizza", Cuisine: "Italian"},
		{ID: 4, Name: "Green Curry", Cuisine: "Thai"},
	}
}

func newTestController(t *testing.T, f *fakeFetcher, opts Options) (*Controller, *logtest.Hook) {
	t.Helper()
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	opts.Fetcher = f
	opts.Logger = log
	return New(opts), hook
}

func loaded(t *testing.T, f *fakeFetcher, opts Options) (*Controller, *logtest.Hook) {
	t.Helper()
	c, hook := newTestController(t, f, opts)
	c.LoadSummaries(context.Background())
	c.Wait()
	require.Len(t, c.Snapshot().Summaries, len(f.summaries))
	return c, hook
}

func ids(items []recipeapi.Recipe) []int {
	out := make([]int, 0, len(items))
	for _, r := range items {
		out = append(out, r.ID)
	}
	return out
}

func TestController_StartsInListing(t *testing.T) {
	c, _ := newTestController(t, newFakeFetcher(), Options{})
	snap := c.Snapshot()
	assert.Equal(t, Listing(), snap.View)
	assert.Equal(t, CategoryAll, snap.Category)
	assert.Nil(t, snap.Selected)
	assert.False(t, snap.Loading)
}

func TestController_LoadSummariesRequestsPageOfTwelve(t *testing.T) {
	f := newFakeFetcher(sampleRecipes()...)
	c, _ := loaded(t, f, Options{})

	assert.Equal(t, DefaultPageSize, f.lastLimit)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(c.Snapshot().Summaries))
}

func TestController_LoadingFlagSpansFetch(t *testing.T) {
	f := newFakeFetcher(sampleRecipes()...)
	f.listGate = make(chan struct{})
	c, _ := newTestController(t, f, Options{})

	c.LoadSummaries(context.Background())
	assert.True(t, c.Snapshot().Loading, "loading while list fetch pending")

	close(f.listGate)
	c.Wait()
	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Len(t, snap.Summaries, 4)
}

func TestController_LoadSummariesReplacesCollection(t *testing.T) {
	f := newFakeFetcher(sampleRecipes()...)
	c, _ := loaded(t, f, Options{})

	f.mu.Lock()
	f.summaries = []recipeapi.Recipe{{ID: 9, Name: "Tacos", Cuisine: "Mexican"}}
	f.mu.Unlock()

	c.LoadSummaries(context.Background())
	c.Wait()
	assert.Equal(t, []int{9}, ids(c.Snapshot().Summaries))
}

func TestController_ListFailureKeepsPreviousCollection(t *testing.T) {
	f := newFakeFetcher(sampleRecipes()...)
	c, hook := loaded(t, f, Options{})

	f.mu.Lock()
	f.listErr = errors.New("connection refused")
	f.mu.Unlock()

	c.LoadSummaries(context.Background())
	c.Wait()

	snap := c.Snapshot()
	assert.Equal(t, []int{1, 2, 3, 4}, ids(snap.Summaries))
	assert.False(t, snap.Loading)
	require.Error(t, snap.LastError)
	assert.ErrorIs(t, snap.LastError, ErrFetchFailed)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.WarnLevel, last.Level)
	assert.Equal(t, "fetch failed", last.Message)
	assert.Equal(t, opList, last.Data["op"])
}

func TestController_SelectRecipeOpensDetail(t *testing.T) {
	f := newFakeFetcher(sampleRecipes()...)
	c, _ := loaded(t, f, Options{})

	gate := f.gate(2)
	c.SelectRecipe(context.Background(), 2)

	pending := c.Snapshot()
	assert.True(t, pending.Loading)
	assert.Equal(t, Listing(), pending.View, "view changes only once the fetch lands")

	close(gate)
	c.Wait()

	snap := c.Snapshot()
	assert.Equal(t, Detail(2), snap.View)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, 2, snap.Selected.ID)
	assert.True(t, snap.Selected.HasDetail())
	assert.Equal(t, []string{"cook Pad Thai"}, snap.Selected.Instructions)
	assert.False(t, snap.Loading)
	assert.NoError(t, snap.LastError)
}

func TestController_SelectRecipeFailureStaysInListing(t *testing.T) {
	f := newFakeFetcher(sampleRecipes()...)
	c, hook := loaded(t, f, Options{})

	f.detailErr[3] = errors.New("timeout")
	c.SelectRecipe(context.Background(), 3)
	c.Wait()

	snap := c.Snapshot()
	assert.Equal(t, Listing(), snap.View)
	assert.Nil(t, snap.Selected)
	assert.False(t, snap.Loading)

	var fetchErr *FetchError
	require.ErrorAs(t, snap.LastError, &fetchErr)
	assert.Equal(t, opDetail, fetchErr.Op)
	assert.Equal(t, 3, fetchErr.ID)
	assert.ErrorIs(t, snap.LastError, ErrFetchFailed)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, 3, last.Data["recipe_id"])
}

func TestController_SelectRecipeFailureInDetailKeepsCurrentRecipe(t *testing.T) {
	f := newFakeFetcher(sampleRecipes()...)
	c, _ := loaded(t, f, Options{})

	c.SelectRecipe(context.Background(), 1)
	c.Wait()

	c.SelectRecipe(context.Background(), 42)
	c.Wait()

	snap := c.Snapshot()
	assert.Equal(t, Detail(1), snap.View)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, 1, snap.Selected.ID)
	var statusErr *recipeapi.StatusError
	assert.ErrorAs(t, snap.LastError, &statusErr)
}

func TestController_OverlappingSelectsLastResolvedWins(t *testing.T) {
	// Documented, non-ideal behavior: responses are not sequenced, so an
	// older request that resolves later overwrites a newer one.
	f := newFakeFetcher(sampleRecipes()...)
	c, _ := loaded(t, f, Options{})

	gate1 := f.gate(1)
	gate2 := f.gate(2)
	c.SelectRecipe(context.Background(), 1)
	c.SelectRecipe(context.Background(), 2)

	close(gate2)
	require.Eventually(t, func() bool {
		s := c.Snapshot()
		return s.Selected != nil && s.Selected.ID == 2
	}, 2*time.Second, 5*time.Millisecond)
	assert.True(t, c.Snapshot().Loading, "recipe 1 still in flight")

	close(gate1)
	c.Wait()

	snap := c.Snapshot()
	assert.Equal(t, Detail(1), snap.View)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, 1, snap.Selected.ID)
	assert.False(t, snap.Loading)
}

func TestController_DiscardStaleKeepsLatestRequest(t *testing.T) {
	f := newFakeFetcher(sampleRecipes()...)
	c, _ := loaded(t, f, Options{DiscardStale: true})

	gate1 := f.gate(1)
	gate2 := f.gate(2)
	c.SelectRecipe(context.Background(), 1)
	c.SelectRecipe(context.Background(), 2)

	close(gate2)
	close(gate1)
	c.Wait()

	snap := c.Snapshot()
	assert.Equal(t, Detail(2), snap.View)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, 2, snap.Selected.ID)
	assert.False(t, snap.Loading)
}

func TestController_DiscardStaleIgnoresDetailAfterGoBack(t *testing.T) {
	f := newFakeFetcher(sampleRecipes()...)
	c, _ := loaded(t, f, Options{DiscardStale: true})

	gate := f.gate(3)
	c.SelectRecipe(context.Background(), 3)
	c.GoBack()
	close(gate)
	c.Wait()

	snap := c.Snapshot()
	assert.Equal(t, Listing(), snap.View)
	assert.Nil(t, snap.Selected)
}

func TestController_DiscardStaleIgnoresStaleFailure(t *testing.T) {
	f := newFakeFetcher(sampleRecipes()...)
	c, hook := loaded(t, f, Options{DiscardStale: true})

	f.detailErr[1] = errors.New("boom")
	gate1 := f.gate(1)
	gate2 := f.gate(2)
	c.SelectRecipe(context.Background(), 1)
	c.SelectRecipe(context.Background(), 2)

	close(gate2)
	require.Eventually(t, func() bool {
		s := c.Snapshot()
		return s.Selected != nil && s.Selected.ID == 2
	}, 2*time.Second, 5*time.Millisecond)
	updated := c.Snapshot().LastUpdated

	close(gate1)
	c.Wait()

	snap := c.Snapshot()
	assert.Equal(t, Detail(2), snap.View)
	assert.NoError(t, snap.LastError)
	assert.Equal(t, updated, snap.LastUpdated)
	assert.False(t, snap.Loading)

	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, logrus.WarnLevel, e.Level, "stale failure logged as %q", e.Message)
	}
	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.DebugLevel, last.Level)
	assert.Equal(t, "discarded stale response", last.Message)
}

// startList issues a load and waits until the fetcher has picked up call,
// so calls pair with loads in issue order.
func startList(t *testing.T, c *Controller, call *listCall) {
	t.Helper()
	c.LoadSummaries(context.Background())
	select {
	case <-call.started:
	case <-time.After(2 * time.Second):
		t.Fatal("list fetch never started")
	}
}

func TestController_OverlappingLoadsLastResolvedWins(t *testing.T) {
	// Documented, non-ideal behavior: the older load resolving last
	// replaces the newer collection.
	f := newFakeFetcher(sampleRecipes()...)
	c, _ := loaded(t, f, Options{})

	older := f.queueList([]recipeapi.Recipe{{ID: 9, Name: "Tacos", Cuisine: "Mexican"}}, nil)
	newer := f.queueList([]recipeapi.Recipe{{ID: 10, Name: "Sushi", Cuisine: "Japanese"}}, nil)
	startList(t, c, older)
	startList(t, c, newer)

	close(newer.gate)
	require.Eventually(t, func() bool {
		return slices.Equal(ids(c.Snapshot().Summaries), []int{10})
	}, 2*time.Second, 5*time.Millisecond)
	assert.True(t, c.Snapshot().Loading, "older load still in flight")

	close(older.gate)
	c.Wait()

	snap := c.Snapshot()
	assert.Equal(t, []int{9}, ids(snap.Summaries))
	assert.False(t, snap.Loading)
}

func TestController_DiscardStaleKeepsLatestLoad(t *testing.T) {
	f := newFakeFetcher(sampleRecipes()...)
	c, _ := loaded(t, f, Options{DiscardStale: true})

	older := f.queueList([]recipeapi.Recipe{{ID: 9, Name: "Tacos", Cuisine: "Mexican"}}, nil)
	failing := f.queueList(nil, errors.New("connection reset"))
	newer := f.queueList([]recipeapi.Recipe{{ID: 10, Name: "Sushi", Cuisine: "Japanese"}}, nil)
	startList(t, c, older)
	startList(t, c, failing)
	startList(t, c, newer)

	close(newer.gate)
	close(older.gate)
	close(failing.gate)
	c.Wait()

	snap := c.Snapshot()
	assert.Equal(t, []int{10}, ids(snap.Summaries))
	assert.NoError(t, snap.LastError)
	assert.False(t, snap.Loading)
}

func TestController_GoBackRestoresListing(t *testing.T) {
	f := newFakeFetcher(sampleRecipes()...)
	c, _ := loaded(t, f, Options{})
	before := c.Snapshot().Summaries

	c.SelectRecipe(context.Background(), 2)
	c.Wait()
	require.Equal(t, Detail(2), c.Snapshot().View)

	c.GoBack()

	snap := c.Snapshot()
	assert.Equal(t, Listing(), snap.View)
	assert.Nil(t, snap.Selected)
	assert.Equal(t, before, snap.Summaries)
	for _, r := range snap.Summaries {
		assert.False(t, r.HasDetail(), "summary %d gained detail fields", r.ID)
		assert.Nil(t, r.Instructions)
	}
}

func TestController_SettersDoNotFetch(t *testing.T) {
	f := newFakeFetcher(sampleRecipes()...)
	c, _ := loaded(t, f, Options{})

	c.SetSearchText("pa")
	c.SetCategory("Thai")
	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, "pa", snap.SearchText)
	assert.Equal(t, "Thai", snap.Category)
	assert.Equal(t, []int{2}, ids(slices.Collect(c.FilteredView())))

	c.ClearSearch()
	assert.Equal(t, []int{2, 4}, ids(slices.Collect(c.FilteredView())))
}

func TestController_SearchPaMatchesBothScenarioRecipes(t *testing.T) {
	f := newFakeFetcher(
		recipeapi.Recipe{ID: 1, Name: "Pasta", Cuisine: "Italian"},
		recipeapi.Recipe{ID: 2, Name: "Pad Thai", Cuisine: "Thai"},
	)
	c, _ := loaded(t, f, Options{})

	c.SetSearchText("pa")
	assert.Equal(t, []int{1, 2}, ids(slices.Collect(c.FilteredView())))
}

func TestController_RelatedAndCategories(t *testing.T) {
	f := newFakeFetcher(sampleRecipes()...)
	c, _ := loaded(t, f, Options{})

	c.SelectRecipe(context.Background(), 1)
	c.Wait()

	snap := c.Snapshot()
	assert.Equal(t, []int{3}, ids(snap.Related()))
	assert.Equal(t, []int{3}, ids(c.RelatedRecipes(*snap.Selected)))
	assert.Equal(t, []string{"All", "Italian", "Thai"}, c.Categories())
	assert.Equal(t, c.Categories(), snap.Categories())
}

func TestController_PostComment(t *testing.T) {
	c, _ := newTestController(t, newFakeFetcher(), Options{Comments: SeedComments()})
	seed := c.Comments()
	require.Len(t, seed, 2)

	tests := []struct {
		name   string
		author string
		text   string
	}{
		{"empty text", "You", ""},
		{"whitespace text", "You", "   "},
		{"tabs and newlines", "You", "\t\n"},
		{"empty author", "", "looks tasty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := c.PostComment(tt.author, tt.text)
			assert.False(t, ok)
			assert.Equal(t, seed, c.Comments())
		})
	}

	got, ok := c.PostComment("You", "hi")
	require.True(t, ok)
	comments := c.Comments()
	require.Len(t, comments, 3)
	last := comments[len(comments)-1]
	assert.Equal(t, got, last)
	assert.Equal(t, "hi", last.Body)
	assert.Equal(t, "You", last.Author)
	assert.Equal(t, JustNow, last.When)
	assert.NotEmpty(t, last.ID)
	assert.Equal(t, seed, comments[:2])

	_, ok = c.PostComment("You", "  second  ")
	require.True(t, ok)
	comments = c.Comments()
	assert.Equal(t, "second", comments[len(comments)-1].Body)
}

func TestController_ToggleLike(t *testing.T) {
	c, _ := newTestController(t, newFakeFetcher(), Options{})

	assert.True(t, c.ToggleLike(5))
	assert.True(t, c.Snapshot().IsLiked(5))
	assert.False(t, c.ToggleLike(5))
	assert.False(t, c.Snapshot().IsLiked(5))
}

func TestController_SubscribeNotifiesUntilUnsubscribed(t *testing.T) {
	f := newFakeFetcher(sampleRecipes()...)
	c, _ := newTestController(t, f, Options{})

	var calls atomic.Int32
	unsubscribe := c.Subscribe(func() { calls.Add(1) })

	c.SetSearchText("x")
	assert.Equal(t, int32(1), calls.Load())

	c.LoadSummaries(context.Background())
	c.Wait()
	assert.Equal(t, int32(3), calls.Load(), "begin and finish both notify")

	unsubscribe()
	c.SetCategory("Thai")
	assert.Equal(t, int32(3), calls.Load())
}

func TestController_SnapshotIsIndependent(t *testing.T) {
	f := newFakeFetcher(sampleRecipes()...)
	c, _ := loaded(t, f, Options{Comments: SeedComments()})

	snap := c.Snapshot()
	snap.Summaries[0].Name = "changed"
	snap.Comments[0].Body = "changed"
	snap.Liked[1] = true

	again := c.Snapshot()
	assert.Equal(t, "Pasta", again.Summaries[0].Name)
	assert.NotEqual(t, "changed", again.Comments[0].Body)
	assert.False(t, again.IsLiked(1))
}

func TestViewState_String(t *testing.T) {
	assert.Equal(t, "Listing", Listing().String())
	assert.Equal(t, "Detail(7)", Detail(7).String())
	assert.True(t, Detail(7).IsDetail())
	assert.False(t, Listing().IsDetail())
}
