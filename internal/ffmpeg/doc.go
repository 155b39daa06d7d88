// Package ffmpeg builds and executes the two ffmpeg commands clipcat needs:
// a stream-copy trim of one segment into a temporary file, and a concat
// demuxer run that joins those files into the output.
//
// Failed runs are classified from stderr. A [RetryState] applies one fix
// per attempt (larger mux queue, then timestamp regeneration) unless strict
// mode is on.
package ffmpeg
