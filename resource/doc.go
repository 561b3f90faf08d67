// Package resource implements C4 ResourceReader: bounded resolve-and-read
// of one manifest resource into a caller buffer or chunked writer, with
// UTF-8-safe truncation for text resources.
package resource
