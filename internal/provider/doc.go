// Package provider implements the file-based model provider.
//
// A locator is either a single composite document file or a directory of
// candidate documents (*.model.xml). Candidates are considered in sorted
// name order for deterministic behavior; an optional selector narrows them
// by case-insensitive file-stem suffix match. The first candidate that
// parses as a version-recognized composite document wins.
//
// Each model gets a deterministic UUID v5 identity derived from its
// normalized path, stable across runs and machines.
package provider
