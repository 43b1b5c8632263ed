// Package logdir discovers the audio log files recorded into a session
// directory.
package logdir
