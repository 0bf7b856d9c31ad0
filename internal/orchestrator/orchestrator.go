// Package orchestrator sequences submitted photos through metadata
// resolution, timestamp formatting and overlay compositing, tracking each
// photo's lifecycle as a WorkItem. Items are processed one at a time in
// submission order; one bad file never affects the rest of the batch.
package orchestrator

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/bstardust/datestamp/internal/compositor"
	"github.com/bstardust/datestamp/internal/config"
	"github.com/bstardust/datestamp/internal/format"
	"github.com/bstardust/datestamp/internal/progress"
	"github.com/bstardust/datestamp/internal/resolver"
	"github.com/bstardust/datestamp/internal/worker"
	"github.com/bstardust/datestamp/pkg/common"
	"github.com/bstardust/datestamp/pkg/models"
)

// Batch owns the WorkItem collection for one run. Readers only ever see
// value copies; all mutation happens here.
type Batch struct {
	mu    sync.Mutex
	items []*models.WorkItem
	input map[string][]byte // source bytes by item ID, dropped once processed

	resolver   *resolver.Resolver
	compositor *compositor.Compositor
	style      config.Style
	pool       *worker.Pool
	progress   *progress.Reporter

	// Notify, when set, receives a copy of the item after every state
	// transition. It is called off the batch lock.
	Notify func(models.WorkItem)
}

// New creates a Batch
func New(res *resolver.Resolver, comp *compositor.Compositor, style config.Style, reporter *progress.Reporter) *Batch {
	return &Batch{
		input:      make(map[string][]byte),
		resolver:   res,
		compositor: comp,
		style:      style,
		// One slot: photos are stamped strictly in submission order.
		pool:     worker.NewPool(1),
		progress: reporter,
	}
}

// Submit records a newly submitted photo as a Pending WorkItem and returns
// its ID. The caller sees the placeholder immediately; processing happens
// when Process runs.
func (b *Batch) Submit(sourceName string, data []byte) string {
	item := &models.WorkItem{
		ID:         uuid.New().String(),
		SourceName: sourceName,
		State:      models.StatePending,
	}

	b.mu.Lock()
	b.items = append(b.items, item)
	b.input[item.ID] = data
	snapshot := *item
	b.mu.Unlock()

	b.notify(snapshot)
	return item.ID
}

// Process runs the pipeline over every pending item, in submission order.
// Per-item failures are recorded on the item and never abort the batch; only
// context cancellation stops early.
func (b *Batch) Process(ctx context.Context) error {
	b.mu.Lock()
	pending := make([]*models.WorkItem, len(b.items))
	copy(pending, b.items)
	b.mu.Unlock()

	if b.progress != nil {
		b.progress.Start(len(pending))
	}

	for _, item := range pending {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if item.State.Terminal() {
			continue
		}

		it := item
		b.pool.Submit(func() {
			b.process(it)
		})
	}

	b.pool.Wait()

	if b.progress != nil {
		b.progress.Finish()
	}
	return nil
}

// process runs resolve -> format -> composite for one item
func (b *Batch) process(item *models.WorkItem) {
	b.mu.Lock()
	data := b.input[item.ID]
	delete(b.input, item.ID)
	b.mu.Unlock()

	resolved := b.resolver.Resolve(data)
	display := format.Render(b.style.DateFormat, resolved.Instant)

	img, err := compositor.Decode(data)
	if err != nil {
		b.fail(item, common.NewDecodeError(item.SourceName, err.Error()))
		return
	}

	out, err := b.compositor.Composite(img, display, b.style)
	if err != nil {
		b.fail(item, err)
		return
	}

	b.mu.Lock()
	item.State = models.StateDone
	item.Output = out
	item.OutputName = outputName(item.SourceName)
	item.DisplayTimestamp = display
	item.IsFallback = resolved.IsFallback
	snapshot := *item
	b.mu.Unlock()

	if b.progress != nil {
		b.progress.Complete(item.SourceName, resolved.IsFallback)
	}
	b.notify(snapshot)
}

func (b *Batch) fail(item *models.WorkItem, err error) {
	b.mu.Lock()
	item.State = models.StateFailed
	item.Error = err.Error()
	snapshot := *item
	b.mu.Unlock()

	if b.progress != nil {
		b.progress.Error(item.SourceName, err)
	}
	b.notify(snapshot)
}

func (b *Batch) notify(item models.WorkItem) {
	if b.Notify != nil {
		b.Notify(item)
	}
}

// Snapshot returns value copies of every WorkItem, in submission order.
// Output blobs are shared read-only.
func (b *Batch) Snapshot() []models.WorkItem {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.WorkItem, len(b.items))
	for i, item := range b.items {
		out[i] = *item
	}
	return out
}

// DoneItems returns copies of the Done items only, for archive packaging or
// publishing.
func (b *Batch) DoneItems() []models.WorkItem {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []models.WorkItem
	for _, item := range b.items {
		if item.State == models.StateDone {
			out = append(out, *item)
		}
	}
	return out
}

// Clear releases every item's output blob and discards the collection.
func (b *Batch) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, item := range b.items {
		item.Output = nil
	}
	b.items = nil
	b.input = make(map[string][]byte)
}

// outputName derives the stamped file name from the source name
func outputName(sourceName string) string {
	base := filepath.Base(sourceName)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "-stamped.jpg"
}
