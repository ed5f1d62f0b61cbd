package fast2d

import "sync"

// Pool is a bounded LIFO pool of Mats, reused across frames in the batch
// driver's worker pool to avoid re-allocating a Mat per image.
type Pool struct {
	mats    []*Mat
	maxSize int
	mu      sync.Mutex
}

func NewPool(maxSize int) *Pool {
	return &Pool{mats: make([]*Mat, 0, maxSize), maxSize: maxSize}
}

func (p *Pool) Get() *Mat {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.mats) == 0 {
		return nil
	}
	m := p.mats[len(p.mats)-1]
	p.mats = p.mats[:len(p.mats)-1]

	if m.IsValid() && !m.Empty() {
		return m
	}
	m.Close()
	return nil
}

func (p *Pool) Put(m *Mat) bool {
	if m == nil || !m.IsValid() || m.Empty() {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.mats) >= p.maxSize {
		return false
	}
	p.mats = append(p.mats, m)
	return true
}

func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.mats)
}

func (p *Pool) Cleanup() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	count := len(p.mats)
	for _, m := range p.mats {
		m.Close()
	}
	p.mats = p.mats[:0]
	return count
}
