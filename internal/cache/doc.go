// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

/*
Package cache provides a bounded, expiring, thread-safe LRU map.

The server keeps one live map view per open browser tab. Tabs vanish
without notice, so the registry of views has to forget them on its own:
entries expire after an idle TTL and the least recently used entry is
dropped once capacity is reached.

# Eviction

Every removal reports a reason to the OnEvict callback:

  - EvictCapacity: pushed out by a newer entry
  - EvictExpired: idle longer than the TTL (lazily on Get, or by Sweep)
  - EvictRemoved: removed explicitly with Remove or Clear

The callback runs after the cache lock is released, so it may call back
into the cache.

# Usage

	views := cache.NewLRU[*Entry](1000, 30*time.Minute)
	views.OnEvict(func(id string, e *Entry, reason cache.EvictReason) {
	    e.Release()
	})

	views.Add(id, entry)
	if e, ok := views.Get(id); ok {
	    // Get refreshes both recency and expiry
	}

	// From a background ticker
	views.Sweep()
*/
package cache
