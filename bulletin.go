// Package bulletin turns web article pages into paginated PDF documents.
// It extracts the primary readable content (title, body text, images) from
// a noisy page, converts it into an ordered sequence of semantic blocks,
// and lays the blocks out as a paginated document with scaled images.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., readability/, goquery/, pdf/).
package bulletin
