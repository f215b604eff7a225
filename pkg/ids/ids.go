// Package ids centraliza la generación de identificadores y la hora del sistema
// para que los casos de uso sean deterministas en tests.
package ids

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Provider entrega IDs únicos y la hora actual.
type Provider interface {
	NewID() string
	Now() time.Time
}

// System usa UUID v4 y el reloj del sistema en UTC.
type System struct{}

func (System) NewID() string  { return uuid.New().String() }
func (System) Now() time.Time { return time.Now().UTC() }

// Fixed devuelve siempre la misma hora e IDs secuenciales con formato UUID.
type Fixed struct {
	At time.Time

	mu   sync.Mutex
	next uint64
}

// NewFixed construye un proveedor fijo en la hora indicada.
func NewFixed(at time.Time) *Fixed { return &Fixed{At: at} }

func (f *Fixed) NewID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", f.next)
}

func (f *Fixed) Now() time.Time { return f.At }
