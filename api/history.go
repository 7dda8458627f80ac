package api

import "sync"

// HistoryPoint is one usage sample kept for charting
type HistoryPoint struct {
	Timestamp   string  `json:"timestamp"`
	UsedPercent float64 `json:"used_percent"`
}

// History is a bounded list of recent usage samples. Points are only
// recorded when a snapshot is requested, so an idle server accumulates
// no history.
type History struct {
	mu     sync.Mutex
	max    int
	points []HistoryPoint
}

// NewHistory creates a history keeping at most max points
func NewHistory(max int) *History {
	return &History{max: max}
}

// Add appends a point, dropping the oldest once the limit is reached.
func (h *History) Add(p HistoryPoint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.points = append(h.points, p)
	if len(h.points) > h.max {
		h.points = h.points[len(h.points)-h.max:]
	}
}

// Points returns a copy of the recorded samples, oldest first.
func (h *History) Points() []HistoryPoint {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]HistoryPoint, len(h.points))
	copy(out, h.points)
	return out
}

// Len reports how many samples are recorded.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.points)
}
