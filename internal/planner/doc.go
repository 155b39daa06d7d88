// Package planner turns parsed clips into an ordered list of segment trim
// jobs and the concat step that joins them. The pipeline executes the plan;
// the ffmpeg package turns each job into arguments.
package planner
