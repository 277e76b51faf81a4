// Package params provides Bag, the insertion-ordered key/value container the
// layer stack stores its entries in.
//
// A Bag behaves like a map that remembers insertion order, plus a handful of
// typed accessors for values that arrive as strings (env files, YAML, query
// strings):
//
//	b := params.New("retries", "3", "verbose", "yes")
//	b.Int("retries", 1)      // 3
//	b.Bool("verbose", false) // true
//	b.Digits("phone", "")    // ""
package params
