package form

import (
	"bytes"
	"io"
	"sync"
)

// MemoryView is a View held in memory. It backs server-side submissions and
// tests.
type MemoryView struct {
	mu            sync.Mutex
	fields        map[Field]string
	submitEnabled bool
	poster        Image
	toasts        []string
}

func NewMemoryView() *MemoryView {
	return &MemoryView{fields: make(map[Field]string)}
}

func (v *MemoryView) Text(f Field) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fields[f]
}

func (v *MemoryView) SetText(f Field, s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fields[f] = s
}

func (v *MemoryView) SetSubmitEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitEnabled = enabled
}

func (v *MemoryView) SubmitEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.submitEnabled
}

func (v *MemoryView) ShowPoster(img Image) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.poster = img
}

func (v *MemoryView) Poster() Image {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.poster
}

func (v *MemoryView) Toast(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.toasts = append(v.toasts, msg)
}

// Toasts returns every message shown so far, oldest first.
func (v *MemoryView) Toasts() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.toasts...)
}

// LastToast returns the most recent message, or "".
func (v *MemoryView) LastToast() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.toasts) == 0 {
		return ""
	}
	return v.toasts[len(v.toasts)-1]
}

// BytesImage is an Image held in memory.
type BytesImage struct {
	Filename string
	Data     []byte
}

func (b *BytesImage) Name() string { return b.Filename }

func (b *BytesImage) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}
