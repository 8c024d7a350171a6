package charts

import (
	"sync"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"xjewelchart/internal/models"
)

// ScaleKind selects the tick and label strategy of a scale
type ScaleKind int

const (
	KindLinear ScaleKind = iota
	KindTime
)

func (k ScaleKind) String() string {
	if k == KindTime {
		return "time"
	}
	return "linear"
}

// AxisKey identifies a scale for the lifetime of a chart
type AxisKey string

const (
	AxisTime  AxisKey = "time"
	AxisValue AxisKey = "value"
	AxisPrice AxisKey = "price"
)

// Tick is a tick value in domain space with its label
type Tick struct {
	Value float64
	Label string
}

// Scale is a continuous mapping from a domain onto a pixel range.
// A Scale is created once per key and mutated in place by Update, so
// holders of the pointer always see the current mapping.
type Scale struct {
	mu     sync.RWMutex
	key    AxisKey
	kind   ScaleKind
	domain models.Domain
	rng    models.Range
}

// Update replaces domain and range in place and returns the same scale
func (s *Scale) Update(domain models.Domain, rng models.Range) *Scale {
	s.mu.Lock()
	s.domain = domain
	s.rng = rng
	s.mu.Unlock()
	return s
}

func (s *Scale) Key() AxisKey    { return s.key }
func (s *Scale) Kind() ScaleKind { return s.kind }

func (s *Scale) Domain() models.Domain {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.domain
}

func (s *Scale) Range() models.Range {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rng
}

// Deps returns [domainMin, domainMax, rangeMin, rangeMax]
func (s *Scale) Deps() [4]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return [4]float64{s.domain.Min, s.domain.Max, s.rng.Min, s.rng.Max}
}

// ToPixel maps a domain value to a pixel. A zero-width domain maps every
// value to the middle of the range.
func (s *Scale) ToPixel(v float64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w := s.domain.Max - s.domain.Min
	if w == 0 {
		return (s.rng.Min + s.rng.Max) / 2
	}
	return s.rng.Min + (v-s.domain.Min)/w*(s.rng.Max-s.rng.Min)
}

// TimeToPixel maps a time on a time scale
func (s *Scale) TimeToPixel(t time.Time) float64 {
	return s.ToPixel(chart.TimeToFloat64(t))
}

// Invert maps a pixel back into the domain
func (s *Scale) Invert(px float64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w := s.rng.Max - s.rng.Min
	if w == 0 {
		return (s.domain.Min + s.domain.Max) / 2
	}
	return s.domain.Min + (px-s.rng.Min)/w*(s.domain.Max-s.domain.Min)
}

// InvertTime maps a pixel back to a time on a time scale
func (s *Scale) InvertTime(px float64) time.Time {
	return chart.TimeFromFloat64(s.Invert(px)).UTC()
}

// Ticks returns roughly count ticks covering the domain
func (s *Scale) Ticks(count int) []Tick {
	d := s.Domain()
	if s.kind == KindTime {
		return timeTicks(d.Min, d.Max, count)
	}
	return linearTicks(d.Min, d.Max, count)
}

// ScaleCache owns one Scale per axis key
type ScaleCache struct {
	mu     sync.Mutex
	scales map[AxisKey]*Scale
}

// NewScaleCache creates an empty cache
func NewScaleCache() *ScaleCache {
	return &ScaleCache{scales: make(map[AxisKey]*Scale)}
}

// Get returns the scale for key, creating it with kind on first use.
// The kind of an existing scale is never changed.
func (c *ScaleCache) Get(key AxisKey, kind ScaleKind) *Scale {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.scales[key]; ok {
		return s
	}
	s := &Scale{key: key, kind: kind}
	c.scales[key] = s
	return s
}

// Update is Get followed by Scale.Update
func (c *ScaleCache) Update(key AxisKey, kind ScaleKind, domain models.Domain, rng models.Range) *Scale {
	return c.Get(key, kind).Update(domain, rng)
}

// Len returns the number of scales created so far
func (c *ScaleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.scales)
}
