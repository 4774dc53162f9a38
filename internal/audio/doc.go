// Package audio is the native audio capability behind the playback engine.
//
// Every loaded track becomes a Handle registered with one shared Output. A
// Handle streams silence until started, so batched transport commands that
// run on the Backend clock take effect on the same audio frame across tracks.
package audio
