// Package quotes stores the locally cached quote catalogue and serves the
// paged, filtered and random reads the reader and the daily resolver need.
package quotes
