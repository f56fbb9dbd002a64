// Package cache provides a generic, thread-safe LRU (least recently used)
// cache with an optional time-to-live for entries.
//
// The validator uses it to memoize parsed rule specifications and compiled
// regex patterns, and the caching host resolver keeps DNS answers in it for a
// bounded time.
//
// # Usage
//
//	specs := cache.NewLRU[string, []Invocation](1024)
//	specs.Put("string|min:3", invocations)
//
//	hosts := cache.NewLRU[string, []string](512, cache.WithTTL(time.Minute))
//	if addrs, ok := hosts.Get("example.com"); ok {
//		// fresh answer
//	}
//
// Get marks an entry as recently used. Put on a full cache evicts the least
// recently used entry. Expired entries are dropped lazily on Get.
package cache
