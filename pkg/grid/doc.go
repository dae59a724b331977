// Package grid lays out a week of time-blocked tasks and turns pointer
// gestures on that layout into create and update requests.
//
// Everything here is recomputed from the current task list on every render.
// The package keeps no layout cache and never writes tasks itself; callers
// apply the emitted requests to their store and render again.
package grid
