// Copyright 2026 The kodi-json-rpc authors.
// Licensed under the LGPLv3, see LICENCE file for details.

package rpc

import (
	"math/rand"
	"strconv"
	"sync"
	"time"
)

// IDSource produces correlation ids for outgoing requests. Implementations
// must be safe for concurrent use; callers may issue requests from
// multiple goroutines.
type IDSource interface {
	NextID() string
}

// DefaultIDSource is the id source used when none is injected: a
// pseudo-random source seeded once at process start. The ids carry no
// cryptographic weight, they only correlate requests with responses.
var DefaultIDSource IDSource = &randSource{
	rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
}

type randSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (s *randSource) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strconv.FormatInt(s.rnd.Int63(), 10)
}
