// Package naming builds the names of the files a run creates: temporary
// segment files and the concat manifest inside the workspace, and the lock
// file next to the output.
package naming
