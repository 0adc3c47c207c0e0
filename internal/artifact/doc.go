// Package artifact reads and writes the generated-artifact file.
//
// An artifact is a plain text file whose first line is a reserved marker line
// carrying the fingerprint of the composite document that produced it; all
// following lines are generated source text verbatim.
//
// The store holds no long-lived state. Reads touch only the first line;
// writes go through a temp file plus rename so a crash never leaves a
// half-written artifact with a stamp that doesn't match its body.
package artifact
