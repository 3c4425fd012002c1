package platform

import (
	"sync"

	"github.com/nf/wasd/cursor"
)

// Keyboard is a keyboard controller with a status register and a value
// register. It latches a single key: a press that arrives before the
// previous key was read replaces it.
type Keyboard struct {
	// Ready receives a value when a key is latched.
	Ready <-chan bool

	status uint32 // address of the status register; value is status+1

	mu      sync.Mutex
	key     byte
	pending bool

	ready chan bool
	taken chan bool
}

func NewKeyboard(status uint32) *Keyboard {
	k := &Keyboard{
		status: status,
		ready:  make(chan bool, 1),
		taken:  make(chan bool, 1),
	}
	k.Ready = k.ready
	return k
}

// Size is the number of bytes the controller occupies on the bus.
func (k *Keyboard) Size() uint32 { return 2 }

// Press latches key and raises the status register.
func (k *Keyboard) Press(key byte) {
	k.mu.Lock()
	k.key, k.pending = key, true
	k.mu.Unlock()
	notify(k.ready)
}

// Pending reports whether a latched key has not yet been read.
func (k *Keyboard) Pending() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pending
}

// Taken receives a value each time a latched key is read.
func (k *Keyboard) Taken() <-chan bool { return k.taken }

func (k *Keyboard) Read(addr uint32) byte {
	k.mu.Lock()
	defer k.mu.Unlock()
	switch addr - k.status {
	case 0:
		if k.pending {
			return cursor.KeyReady
		}
		return 0
	default:
		if k.pending {
			k.pending = false
			notify(k.taken)
		}
		return k.key
	}
}

// Write does nothing; both registers are read-only.
func (k *Keyboard) Write(uint32, byte) {}

// Reset drops any latched key.
func (k *Keyboard) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.key, k.pending = 0, false
}

// notify sends on a buffered channel without blocking; pending
// notifications coalesce.
func notify(c chan bool) {
	select {
	case c <- true:
	default:
	}
}
