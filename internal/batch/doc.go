// Package batch walks input directories and writes one CSV row per audio log.
//
// Directories are processed in the order given and files in sorted order.
// Each file goes through transcribe, clean and append before the next one
// starts, so an interrupted run leaves only complete rows behind.
package batch
