package state

import (
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		MissingImage: []byte(`<svg viewBox="0 0 160 120" xmlns="http://www.w3.org/2000/svg">
  <rect x="1" y="1" width="158" height="118" fill="#e9e9e9" stroke="#9a9a9a" stroke-width="2"/>
  <path d="M1 1 L159 119 M159 1 L1 119" stroke="#9a9a9a" stroke-width="1"/>
  <circle cx="80" cy="60" r="14" fill="none" stroke="#c9793b" stroke-width="3"/>
  <path d="M70 50 L90 70" stroke="#c9793b" stroke-width="3"/>
</svg>`),
	}
}
