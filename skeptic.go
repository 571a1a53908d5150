// Package skeptic provides a critical news-reading assistant. It fetches an
// article, extracts its readable text, asks a language model for a
// structured critical analysis, and renders the result as text, JSON, or
// speech.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, rod/).
package skeptic
