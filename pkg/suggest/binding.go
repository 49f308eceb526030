package suggest

import "sync"

// Annotation keys written on commit.
const (
	AnnotationID     = "id"
	AnnotationName   = "name"
	AnnotationRegion = "region"
)

// FieldBinding is an in-memory input field: its text, the annotations of the
// last committed candidate, and change listeners.
type FieldBinding struct {
	name string

	mu          sync.RWMutex
	value       string
	annotations map[string]string
	listeners   []func(field string, c Candidate)
}

// NewFieldBinding creates an empty field.
func NewFieldBinding(name string) *FieldBinding {
	return &FieldBinding{name: name, annotations: make(map[string]string)}
}

// Name returns the field name ("from", "to").
func (b *FieldBinding) Name() string {
	return b.name
}

// Value returns the current text.
func (b *FieldBinding) Value() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// SetValue records typed text. Editing away from the committed name drops the
// annotations, so a stale id never travels with hand-typed text.
func (b *FieldBinding) SetValue(v string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = v
	if name, ok := b.annotations[AnnotationName]; ok && name != v {
		b.annotations = make(map[string]string)
	}
}

// Annotation returns a value attached by the last commit.
func (b *FieldBinding) Annotation(key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.annotations[key]
}

// Commit writes c into the field and notifies listeners.
func (b *FieldBinding) Commit(c Candidate) {
	b.mu.Lock()
	b.value = c.Name
	b.annotations = map[string]string{AnnotationName: c.Name}
	if c.ID != "" {
		b.annotations[AnnotationID] = c.ID
	}
	if c.Region != "" {
		b.annotations[AnnotationRegion] = c.Region
	}
	listeners := append([]func(string, Candidate){}, b.listeners...)
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(b.name, c)
	}
}

// OnChange registers fn to run after every commit.
func (b *FieldBinding) OnChange(fn func(field string, c Candidate)) {
	b.mu.Lock()
	b.listeners = append(b.listeners, fn)
	b.mu.Unlock()
}
