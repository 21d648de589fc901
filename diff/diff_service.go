package diff

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// DiffService computes diffs for the web layer.
// It applies default options and remembers the most recent results keyed by
// a hash of the inputs, so an unchanged pair of texts is not re-diffed on
// every refresh. The diff functions it calls are pure; the memo is the only
// shared state and it hands out copies.
type DiffService struct {
	defaults Options
	capacity int

	mu      sync.Mutex
	results map[string]*DiffResult
	order   []string // oldest first
}

// DiffResult contains both projections of one diff computation.
type DiffResult struct {
	Hash      string      `json:"hash"` // SHA256 of options and both texts
	Options   Options     `json:"options"`
	Unified   UnifiedDiff `json:"unified"`
	Split     SplitDiff   `json:"split"`
	Stats     Stats       `json:"stats"`
	Timestamp time.Time   `json:"timestamp"`
}

const defaultMemoCapacity = 16

// NewDiffService creates a diff service.
// capacity bounds the number of memoized results; zero picks a default.
func NewDiffService(defaults Options, capacity int) *DiffService {
	if capacity <= 0 {
		capacity = defaultMemoCapacity
	}
	if defaults.Algorithm == "" {
		defaults.Algorithm = AlgorithmMyers
	}
	return &DiffService{
		defaults: defaults,
		capacity: capacity,
		results:  make(map[string]*DiffResult, capacity),
	}
}

// Defaults returns the options applied when a request leaves them unset.
func (ds *DiffService) Defaults() Options {
	return ds.defaults
}

// ResolveOptions fills unset fields of opts from the service defaults.
func (ds *DiffService) ResolveOptions(opts Options) Options {
	if opts.Algorithm == "" {
		opts.Algorithm = ds.defaults.Algorithm
	}
	return opts
}

// GenerateDiff diffs original against modified and returns both projections.
func (ds *DiffService) GenerateDiff(original, modified string, opts Options) (*DiffResult, error) {
	opts = ds.ResolveOptions(opts)
	if opts.Algorithm != AlgorithmMyers && opts.Algorithm != AlgorithmLCS {
		return nil, serr.New("unknown diff algorithm", "algorithm", string(opts.Algorithm))
	}
	key := resultKey(original, modified, opts)

	ds.mu.Lock()
	cached, ok := ds.results[key]
	ds.mu.Unlock()
	if ok {
		logger.Debug("Diff served from memo", "hash", key[:8])
		return cached.clone(), nil
	}

	ops := Align(SplitLines(original), SplitLines(modified), opts)
	split, err := Split(ops)
	if err != nil {
		return nil, serr.Wrap(err, "failed to lay out split diff", "hash", key[:8])
	}

	result := &DiffResult{
		Hash:      key,
		Options:   opts,
		Unified:   Unified(ops),
		Split:     split,
		Stats:     SplitStats(split),
		Timestamp: time.Now(),
	}
	ds.remember(key, result)

	logger.Debug("Generated diff",
		"hash", key[:8],
		"algorithm", string(opts.Algorithm),
		"ignoreWhitespace", strconv.FormatBool(opts.IgnoreWhitespace),
		"added", strconv.Itoa(result.Stats.Added),
		"removed", strconv.Itoa(result.Stats.Removed),
	)

	return result.clone(), nil
}

// HasChanges reports whether the two texts differ under opts.
// Byte-identical texts short-circuit without diffing.
func (ds *DiffService) HasChanges(original, modified string, opts Options) (bool, error) {
	if original == modified {
		return false, nil
	}
	result, err := ds.GenerateDiff(original, modified, opts)
	if err != nil {
		return false, err
	}
	return !result.Unified.IsEqual(), nil
}

// Clear drops all memoized results.
func (ds *DiffService) Clear() {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.results = make(map[string]*DiffResult, ds.capacity)
	ds.order = ds.order[:0]
}

// Len returns the number of memoized results.
func (ds *DiffService) Len() int {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return len(ds.results)
}

func (ds *DiffService) remember(key string, result *DiffResult) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if _, exists := ds.results[key]; exists {
		return
	}
	for len(ds.order) >= ds.capacity {
		delete(ds.results, ds.order[0])
		ds.order = ds.order[1:]
	}
	ds.results[key] = result
	ds.order = append(ds.order, key)
}

// clone copies the slices so callers never share backing arrays with the memo.
func (r *DiffResult) clone() *DiffResult {
	c := *r
	c.Unified.Lines = slices.Clone(r.Unified.Lines)
	c.Split.Rows = slices.Clone(r.Split.Rows)
	return &c
}

// ContentHash returns the hex SHA256 of content.
func ContentHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// resultKey hashes the options with the content hash of each text.
// The inner hashes have a fixed width, so text moved across the boundary
// cannot collide.
func resultKey(original, modified string, opts Options) string {
	return ContentHash(string(opts.Algorithm) + "|" + strconv.FormatBool(opts.IgnoreWhitespace) +
		"|" + ContentHash(original) + "|" + ContentHash(modified))
}
