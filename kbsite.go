// Package kbsite manages website sources for local knowledge bases.
// Operators register sites against a knowledge base, extract candidate
// links from seed pages, and sync sanitized HTML copies of those pages
// into the knowledge base's content folder for downstream indexing.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, goquery/).
package kbsite
