// Package input turns raw key bytes into per-frame input snapshots.
package input

import (
	"bufio"
	"time"
)

// moveHoldDuration is how long a movement key counts as held after its last
// byte. Terminals send no key-up events, so holding relies on key repeat.
const moveHoldDuration = 120 * time.Millisecond

// escTimeout is how long a trailing ESC waits for the rest of an escape
// sequence before it counts as the Escape key.
const escTimeout = 50 * time.Millisecond

// keyState tracks the last time each movement key was seen.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
}

// Decoder converts byte batches into snapshots. Movement keys are levels
// derived from hold timestamps, every other key is an edge reported only in
// the batch that contained it.
type Decoder struct {
	state keyState

	// pending holds an ESC or ESC [ left at the end of the previous batch.
	pending   []byte
	pendingAt time.Time
}

// Feed parses one drained batch of bytes observed at now.
func (d *Decoder) Feed(buf []byte, now time.Time) Snapshot {
	snap := None()

	carried := len(d.pending) > 0
	if carried {
		buf = append(d.pending, buf...)
		d.pending = nil
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			rest := buf[i+1:]
			if len(rest) == 0 || (len(rest) == 1 && rest[0] == '[') {
				// The sequence may continue in the next batch
				if !carried || i != 0 {
					d.pendingAt = now
				}
				if now.Sub(d.pendingAt) < escTimeout {
					d.pending = append([]byte(nil), buf[i:]...)
				} else {
					snap.Quit = true
				}
				break
			}
			// CSI sequence: ESC [ <code>
			if rest[0] == '[' {
				switch rest[1] {
				case 'A':
					d.state.up = now
				case 'B':
					d.state.down = now
				case 'C':
					d.state.right = now
				case 'D':
					d.state.left = now
				}
				i += 2
				continue
			}
			snap.Quit = true
			continue
		}

		d.applyByte(&snap, b, now)
	}

	snap.Left = now.Sub(d.state.left) < moveHoldDuration
	snap.Right = now.Sub(d.state.right) < moveHoldDuration
	snap.Up = now.Sub(d.state.up) < moveHoldDuration
	snap.Down = now.Sub(d.state.down) < moveHoldDuration
	return snap
}

// applyByte records a single key byte.
func (d *Decoder) applyByte(snap *Snapshot, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', 3: // 3 is Ctrl+C in raw mode
		snap.Quit = true
	case 'a', 'A':
		d.state.left = now
	case 'd', 'D':
		d.state.right = now
	case 'w', 'W':
		d.state.up = now
	case 's', 'S':
		d.state.down = now
	case ' ':
		snap.Dash = true
	case 'p', 'P':
		snap.Pause = true
	case 'r', 'R':
		snap.Reset = true
	case 'u', 'U':
		snap.Shop = true
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		snap.Buy = int(b - '1')
	}
}

// Stream delivers input bytes via a channel and decodes them per frame.
type Stream struct {
	ch  chan byte
	dec Decoder
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream without blocking.
// A closed stream reports Quit.
func ReadInput(s *Stream) Snapshot {
	var buf []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	snap := s.dec.Feed(buf, time.Now())
	if closed {
		snap.Quit = true
	}
	return snap
}
