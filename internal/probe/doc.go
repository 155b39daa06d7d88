// Package probe inspects clip sources with a single ffprobe JSON call. The
// pipeline uses the result to log what it is about to cut and to warn about
// segment bounds that fall outside the source.
package probe
