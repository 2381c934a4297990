// Package shlok serves individual verses of a scripture text by their
// global index and resolves that index into a chapter-relative position
// for navigation.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, redis/, http/).
package shlok
