// Package clip parses clip specs: the short strings that name a source
// media file and the segments of it to keep.
//
// A clip spec is a filename, optionally followed by the sentinel '@' and a
// comma-separated list of "start-end" ranges:
//
//	talk.mp4 @ 00:01:00 - 00:02:30, 00:05:00-00:06:00
//	talk.mp4@-00:10
//	talk.mp4
//
// Either bound of a range may be omitted. A backslash inside the filename
// makes the next character literal, so "a\@b.mp4" names the file "a@b.mp4"
// and "a\\b.mp4" names "a\b.mp4".
//
// Both [Parse] and [ValidateTimecode] are pure functions with no I/O, so
// they can be fuzzed and tested in isolation from the ffmpeg pipeline.
package clip
