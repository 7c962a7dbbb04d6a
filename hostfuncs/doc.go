// Package hostfuncs provides the host functions a script can reach through
// the bpy control handle. Each function is a named JSON ByteHandler bound to
// a host capability port, collected in an immutable HandlerRegistry and
// wrapped by middleware (panic recovery, logging).
//
// Failures never escape as panics: handlers answer with an ErrorResponse
// JSON body, and Call turns that body back into a *errors.HostCallError.
package hostfuncs
