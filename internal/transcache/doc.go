// Package transcache persists cleaned transcriptions in SQLite so repeated
// runs over the same recordings skip the engine.
//
// Entries are keyed by the SHA-256 digest of the audio file together with the
// engine, model and language that produced them.
package transcache
