// Package jsonmap provides [Object], an insertion-ordered JSON object whose
// values are kept as raw JSON. It is the carrier for every free-form payload
// the AGiXT service exchanges: agent settings and commands, prompt arguments,
// agent configurations and conversation messages.
//
// Values are never interpreted. Whatever nested shape a caller or the server
// puts under a key is forwarded byte-for-byte (modulo insignificant
// whitespace), and member order survives a decode/encode round trip.
//
// Build objects with the member constructors [String], [Int], [Bool], [Raw]
// and [Any], or incrementally with [Object.Set]:
//
//	args := jsonmap.Object{
//	    jsonmap.String("user_input", "hello"),
//	    jsonmap.Bool("disable_memory", true),
//	}
package jsonmap
