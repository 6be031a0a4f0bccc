package export

import (
	"fmt"
	"time"
)

// Namer produces timestamp-qualified filenames for export artifacts.
// The clock is injectable so tests can pin the timestamp; production code
// uses the real clock via NewNamer.
type Namer struct {
	prefix string
	now    func() time.Time
}

// NewNamer returns a Namer with the given prefix (DefaultPrefix if empty)
// reading the real wall clock.
func NewNamer(prefix string) *Namer {
	return NewNamerWithClock(prefix, time.Now)
}

// NewNamerWithClock returns a Namer that reads the current instant from now.
func NewNamerWithClock(prefix string, now func() time.Time) *Namer {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if now == nil {
		now = time.Now
	}
	return &Namer{prefix: prefix, now: now}
}

// Filename returns "<prefix>_YYYY-MM-DD_HH-MM-SS.<ext>". The extension is
// concatenated verbatim, without a leading dot.
func (n *Namer) Filename(ext string) string {
	return fmt.Sprintf("%s_%s.%s", n.prefix, n.now().Format("2006-01-02_15-04-05"), ext)
}
