// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"
	"time"
)

// rateLimiter counts password failures per source IP over a sliding window.
// Entries older than the window are pruned on every access, so an IP that
// stops guessing recovers by itself once the window rolls over.
type rateLimiter struct {
	mu       sync.Mutex
	max      int
	window   time.Duration
	failures map[string][]time.Time

	now func() time.Time // injectable for tests
}

func newRateLimiter(max int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		max:      max,
		window:   window,
		failures: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// limited reports whether ip has reached the failure threshold within the
// current window.
func (r *rateLimiter) limited(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.prune(ip)) >= r.max
}

// fail records one failed attempt for ip.
func (r *rateLimiter) fail(ip string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failures[ip] = append(r.prune(ip), r.now())
}

// prune drops entries older than the window. Caller holds mu.
func (r *rateLimiter) prune(ip string) []time.Time {
	cutoff := r.now().Add(-r.window)

	kept := r.failures[ip][:0]
	for _, ts := range r.failures[ip] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) == 0 {
		delete(r.failures, ip)
		return nil
	}

	r.failures[ip] = kept
	return kept
}
