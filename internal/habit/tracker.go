package habit

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Gateway is the persistence boundary. Implementations store the full
// history as a flat set of day records keyed by date.
type Gateway interface {
	ReadAll() ([]Record, error)
	WriteAll(records []Record) error
}

// FuturePolicy controls what happens to edited rows dated after today.
type FuturePolicy int

const (
	// FutureSkip drops future-dated rows from a save.
	FutureSkip FuturePolicy = iota
	// FutureAllow persists future-dated rows as-is.
	FutureAllow
)

// cacheTTL bounds how long a read result is served without hitting the
// gateway again.
const cacheTTL = 60 * time.Second

// Week is one editable seven-day window.
type Week struct {
	Offset  int // weeks relative to the current one; 0 is this week
	Start   time.Time
	Records []Record
}

// SaveResult reports what a SaveWeek call did.
type SaveResult struct {
	Saved         int
	SkippedFuture int
}

// Tracker mediates between the UI and a Gateway: it shapes history into
// week windows, scores and merges edits back in, and caches reads briefly
// so navigation does not hammer the store.
type Tracker struct {
	gw  Gateway
	log *zap.Logger
	now func() time.Time

	mu        sync.Mutex
	cached    []Record
	fetchedAt time.Time
}

// NewTracker wires a tracker to its gateway. A nil logger disables logging.
func NewTracker(gw Gateway, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{gw: gw, log: log, now: time.Now}
}

// LoadWeek returns the window at the given offset from the current week,
// with a record for every day whether logged or not. Read failures degrade
// to an empty history so the grid always renders.
func (t *Tracker) LoadWeek(offset int) Week {
	dates, start := WeekOf(t.now(), offset)
	return Week{
		Offset:  offset,
		Start:   start,
		Records: Normalize(dates, t.History()),
	}
}

// History returns all stored records sorted by date. Failures degrade to
// an empty slice.
func (t *Tracker) History() []Record {
	records, err := t.readAll()
	if err != nil {
		t.log.Warn("read history failed, serving empty", zap.Error(err))
		return []Record{}
	}
	return records
}

// Invalidate drops the read cache so the next read hits the gateway.
func (t *Tracker) Invalidate() {
	t.mu.Lock()
	t.cached = nil
	t.fetchedAt = time.Time{}
	t.mu.Unlock()
}

func (t *Tracker) readAll() ([]Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cached != nil && t.now().Sub(t.fetchedAt) < cacheTTL {
		return append([]Record(nil), t.cached...), nil
	}
	records, err := t.gw.ReadAll()
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	sortByDate(records)
	t.cached = records
	t.fetchedAt = t.now()
	return append([]Record(nil), records...), nil
}

// SaveWeek scores the edited rows and merges them into the stored history
// by date, leaving days outside the batch untouched. Rows dated after today
// are skipped or kept per policy. The cache is invalidated whether or not
// the write succeeds.
func (t *Tracker) SaveWeek(edited []Record, policy FuturePolicy) (SaveResult, error) {
	var res SaveResult
	today := Midnight(t.now())

	batch := make([]Record, 0, len(edited))
	for _, r := range edited {
		r.Date = Midnight(r.Date)
		if policy == FutureSkip && r.Date.After(today) {
			res.SkippedFuture++
			continue
		}
		r.Clamp()
		r.VictoryScore = Score(r)
		batch = append(batch, r)
	}

	// WriteAll swaps the whole table, so merging against a failed read
	// would drop every day outside the batch. Abort instead.
	history, err := t.gw.ReadAll()
	if err != nil {
		return res, fmt.Errorf("read before merge: %w", err)
	}
	merged := MergeByDate(history, batch)

	err = t.gw.WriteAll(merged)
	t.Invalidate()
	if err != nil {
		return res, fmt.Errorf("write records: %w", err)
	}
	res.Saved = len(batch)
	t.log.Info("week saved",
		zap.Int("rows", res.Saved),
		zap.Int("skipped_future", res.SkippedFuture))
	return res, nil
}

// MergeByDate overlays batch onto history: rows sharing a date are replaced
// by the batch version, everything else is kept. The result is sorted.
func MergeByDate(history, batch []Record) []Record {
	replaced := make(map[string]bool, len(batch))
	for _, r := range batch {
		replaced[r.DateKey()] = true
	}
	merged := make([]Record, 0, len(history)+len(batch))
	for _, r := range history {
		if !replaced[r.DateKey()] {
			merged = append(merged, r)
		}
	}
	merged = append(merged, batch...)
	sortByDate(merged)
	return merged
}

func sortByDate(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}
