// Package pipeline runs one clipcat job: validate the sources, lock the
// output, trim every segment into a temporary workspace, write the concat
// manifest, join the segments into the output, and report the result.
package pipeline
