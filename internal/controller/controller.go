package controller

import (
	"context"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/recipemama/internal/recipeapi"
)

// DefaultPageSize is the number of summaries requested at session start.
const DefaultPageSize = 12

const (
	opList   = "list"
	opDetail = "detail"
)

type slot int

const (
	slotList slot = iota
	slotDetail
	slotCount
)

// Options configure a Controller.
type Options struct {
	Fetcher  recipeapi.Fetcher
	Logger   logrus.FieldLogger
	PageSize int // zero uses DefaultPageSize
	// DiscardStale drops any response that is not the latest issued for its
	// slot. Off by default: the last response to resolve wins.
	DiscardStale bool
	// Comments seeds the session comment sequence.
	Comments []Comment
}

// Controller owns the recipe collection, the selected recipe, the filter
// state and the session comments. All mutation goes through its methods.
type Controller struct {
	fetcher      recipeapi.Fetcher
	log          logrus.FieldLogger
	pageSize     int
	discardStale bool

	mu       sync.RWMutex
	state    Snapshot
	seq      [slotCount]uint64
	inflight int

	wg sync.WaitGroup

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New builds a Controller in the Listing state with an empty collection.
func New(opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{
		fetcher:      opts.Fetcher,
		log:          log.WithField("component", "controller"),
		pageSize:     pageSize,
		discardStale: opts.DiscardStale,
		state: Snapshot{
			View:     Listing(),
			Category: CategoryAll,
			Comments: slices.Clone(opts.Comments),
			Liked:    make(map[int]bool),
		},
		subs: make(map[int]func()),
	}
}

// Subscribe registers fn to run after every state change. Observers run on
// the goroutine that made the change, never under the controller lock.
// The returned func removes the observer.
func (c *Controller) Subscribe(fn func()) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.clone()
}

// Wait blocks until every fetch issued so far has been applied.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// LoadSummaries fetches one page of summaries and replaces the collection
// on success. It returns immediately.
func (c *Controller) LoadSummaries(ctx context.Context) {
	seq := c.begin(slotList)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		items, err := c.fetcher.FetchSummaries(ctx, c.pageSize)
		if err != nil {
			c.fail(slotList, seq, &FetchError{Op: opList, Err: err})
			return
		}
		c.finish(slotList, seq, func(s *Snapshot) {
			s.Summaries = cloneRecipes(items)
		})
		c.log.WithField("count", len(items)).Debug("summaries loaded")
	}()
}

// SelectRecipe fetches recipe id in detail form and, on success, makes it
// the selected recipe and switches to Detail(id). It returns immediately.
// On failure the view stays where it was.
func (c *Controller) SelectRecipe(ctx context.Context, id int) {
	seq := c.begin(slotDetail)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		recipe, err := c.fetcher.FetchRecipe(ctx, id)
		if err == nil && recipe == nil {
			err = errEmptyDetail
		}
		if err != nil {
			c.fail(slotDetail, seq, &FetchError{Op: opDetail, ID: id, Err: err})
			return
		}
		detail := recipe.Clone()
		detail.Detailed = true
		c.finish(slotDetail, seq, func(s *Snapshot) {
			s.Selected = &detail
			s.View = Detail(id)
		})
	}()
}

// GoBack returns to the listing and clears the selected recipe.
func (c *Controller) GoBack() {
	c.update(func(s *Snapshot) {
		s.View = Listing()
		s.Selected = nil
		if c.discardStale {
			// A detail fetch still in flight must not reopen the page.
			c.seq[slotDetail]++
		}
	})
}

// SetSearchText sets the name filter. It never touches the network.
func (c *Controller) SetSearchText(text string) {
	c.update(func(s *Snapshot) { s.SearchText = text })
}

// ClearSearch resets the name filter.
func (c *Controller) ClearSearch() {
	c.SetSearchText("")
}

// SetCategory sets the cuisine filter; CategoryAll disables it.
func (c *Controller) SetCategory(category string) {
	c.update(func(s *Snapshot) { s.Category = category })
}

// FilteredView yields the current collection restricted by the search text
// and category. The sequence shares the stored collection rather than copying
// it; the collection is only ever replaced whole, never edited in place.
func (c *Controller) FilteredView() iter.Seq[recipeapi.Recipe] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return FilteredView(c.state.Summaries, c.state.SearchText, c.state.Category)
}

// RelatedRecipes returns the related strip for selected.
func (c *Controller) RelatedRecipes(selected recipeapi.Recipe) []recipeapi.Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneRecipes(RelatedRecipes(selected, c.state.Summaries))
}

// Categories returns the filter chips for the current collection.
func (c *Controller) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Categories(c.state.Summaries)
}

// PostComment appends a comment labelled JustNow. Blank text or a blank
// author is rejected and leaves the sequence untouched.
func (c *Controller) PostComment(author, text string) (Comment, bool) {
	comment, ok := newComment(author, text)
	if !ok {
		return Comment{}, false
	}
	c.update(func(s *Snapshot) {
		s.Comments = append(s.Comments, comment)
	})
	return comment, true
}

// Comments returns the session comments in submission order.
func (c *Controller) Comments() []Comment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.state.Comments)
}

// ToggleLike flips the liked flag for id and returns the new value.
func (c *Controller) ToggleLike(id int) bool {
	var liked bool
	c.update(func(s *Snapshot) {
		liked = !s.Liked[id]
		if liked {
			s.Liked[id] = true
		} else {
			delete(s.Liked, id)
		}
	})
	return liked
}

func (c *Controller) begin(sl slot) uint64 {
	c.mu.Lock()
	c.seq[sl]++
	seq := c.seq[sl]
	c.inflight++
	c.state.Loading = true
	c.mu.Unlock()
	c.notify()
	return seq
}

func (c *Controller) finish(sl slot, seq uint64, apply func(*Snapshot)) {
	c.mu.Lock()
	c.settle()
	stale := c.isStale(sl, seq)
	if !stale {
		apply(&c.state)
		c.state.LastError = nil
		c.state.LastUpdated = time.Now()
	}
	c.mu.Unlock()

	if stale {
		c.log.WithField("seq", seq).Debug("discarded stale response")
	}
	c.notify()
}

func (c *Controller) fail(sl slot, seq uint64, err *FetchError) {
	c.mu.Lock()
	c.settle()
	stale := c.isStale(sl, seq)
	if !stale {
		c.state.LastError = err
		c.state.LastUpdated = time.Now()
	}
	c.mu.Unlock()

	entry := c.log.WithField("op", err.Op)
	if sl == slotDetail {
		entry = entry.WithField("recipe_id", err.ID)
	}
	if stale {
		entry.WithField("seq", seq).WithError(err.Err).Debug("discarded stale response")
	} else {
		entry.WithError(err.Err).Warn("fetch failed")
	}
	c.notify()
}

// isStale must be called with mu held.
func (c *Controller) isStale(sl slot, seq uint64) bool {
	return c.discardStale && seq != c.seq[sl]
}

// settle must be called with mu held.
func (c *Controller) settle() {
	c.inflight--
	c.state.Loading = c.inflight > 0
}

func (c *Controller) update(fn func(*Snapshot)) {
	c.mu.Lock()
	fn(&c.state)
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) notify() {
	c.subMu.Lock()
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, c.subs[id])
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
