package model

import (
	"sync"
	"time"
)

// FlashLevel grades a flash message.
type FlashLevel int

const (
	FlashInfo FlashLevel = iota
	FlashWarn
	FlashErr
)

// Flash holds the transient notification shown in the status bar.
type Flash struct {
	mu      sync.RWMutex
	message string
	level   FlashLevel
	expires time.Time
}

// Info sets an informational message.
func (f *Flash) Info(msg string) {
	f.set(msg, FlashInfo, 4*time.Second)
}

// Warn sets a warning message.
func (f *Flash) Warn(msg string) {
	f.set(msg, FlashWarn, 6*time.Second)
}

// Err sets an error message.
func (f *Flash) Err(msg string) {
	f.set(msg, FlashErr, 8*time.Second)
}

func (f *Flash) set(msg string, level FlashLevel, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = msg
	f.level = level
	f.expires = time.Now().Add(d)
}

// Get returns the current message and level, or empty if expired.
func (f *Flash) Get() (string, FlashLevel) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if time.Now().After(f.expires) {
		return "", FlashInfo
	}
	return f.message, f.level
}
