// Package indicators provides small streaming indicators over implied
// probabilities. Each indicator is fed one value per game state and keeps
// only what it needs; Reset clears state between games.
package indicators

import "fmt"

// Streaming is the contract shared by all indicators here.
type Streaming interface {
	Name() string
	Reset()
	Update(v float64)
	Ready() bool
	Value() float64
}

// Window keeps the last N observed values. Ready once full.
type Window struct {
	size   int
	values []float64
}

func NewWindow(size int) *Window {
	return &Window{
		size:   size,
		values: make([]float64, 0, size),
	}
}

func (w *Window) Name() string { return fmt.Sprintf("Window(%d)", w.size) }

func (w *Window) Reset() { w.values = w.values[:0] }

func (w *Window) Update(v float64) {
	w.values = append(w.values, v)
	if len(w.values) > w.size {
		w.values = w.values[1:]
	}
}

func (w *Window) Ready() bool { return len(w.values) >= w.size }

// Value is the most recent observation.
func (w *Window) Value() float64 { return w.Last() }

func (w *Window) First() float64 {
	if len(w.values) == 0 {
		return 0
	}
	return w.values[0]
}

func (w *Window) Last() float64 {
	if len(w.values) == 0 {
		return 0
	}
	return w.values[len(w.values)-1]
}

// Drift is the net move across the window, last minus first.
func (w *Window) Drift() float64 { return w.Last() - w.First() }

// SimpleMA is a streaming simple moving average.
type SimpleMA struct {
	window *Window
}

func NewMA(period int) *SimpleMA {
	return &SimpleMA{window: NewWindow(period)}
}

func (m *SimpleMA) Name() string     { return fmt.Sprintf("MA(%d)", m.window.size) }
func (m *SimpleMA) Reset()           { m.window.Reset() }
func (m *SimpleMA) Update(v float64) { m.window.Update(v) }
func (m *SimpleMA) Ready() bool      { return m.window.Ready() }

func (m *SimpleMA) Value() float64 {
	if !m.Ready() {
		return 0
	}
	sum := 0.0
	for _, v := range m.window.values {
		sum += v
	}
	return sum / float64(len(m.window.values))
}

// ExponentialMA is a streaming exponential moving average with the usual
// 2/(period+1) smoothing. It seeds on the first value and is Ready once it
// has seen a full period.
type ExponentialMA struct {
	period int
	alpha  float64
	value  float64
	count  int
}

func NewEMA(period int) *ExponentialMA {
	return &ExponentialMA{
		period: period,
		alpha:  2.0 / float64(period+1),
	}
}

func (m *ExponentialMA) Name() string { return fmt.Sprintf("EMA(%d)", m.period) }

func (m *ExponentialMA) Reset() {
	m.value = 0
	m.count = 0
}

func (m *ExponentialMA) Update(v float64) {
	m.count++
	if m.count == 1 {
		m.value = v
		return
	}
	m.value = m.alpha*v + (1-m.alpha)*m.value
}

func (m *ExponentialMA) Ready() bool { return m.count >= m.period }

func (m *ExponentialMA) Value() float64 {
	if !m.Ready() {
		return 0
	}
	return m.value
}
