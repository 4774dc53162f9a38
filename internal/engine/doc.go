// Package engine implements the multitrack playback coordinator.
//
// A Session owns the decoder handles of one loaded song and moves them through
// load, play, pause, resume, stop and release as a single unit. Per-track
// operations fan out concurrently and are joined before the session state
// advances, with compensating rollback on partial failure. The mixer and the
// progress reporter act on individual handles but never change transport state.
package engine
