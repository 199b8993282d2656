package generate

import "strings"

// PoolFromKeys builds the ordered credential pool from a fixed set of
// optional configuration values, keeping only the ones that are set. Order is
// failover priority. Built once at startup and treated as immutable.
func PoolFromKeys(keys ...string) []string {
	pool := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.TrimSpace(key) == "" {
			continue
		}
		pool = append(pool, key)
	}
	return pool
}
