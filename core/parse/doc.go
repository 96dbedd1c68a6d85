// Package parse turns loosely written JSON, as typed on a command line or
// pasted from a chat window, into the ordered objects the AGiXT client sends.
// Input that is not valid JSON is passed through automatic JSON repair
// (single quotes, unquoted keys, trailing commas, comments, Python constants,
// markdown code fences, truncation) before decoding, and only then rejected
// with a clear error.
package parse
