// Package renderer formats portfolio reports as markdown.
//
// Every renderer returns a markdown document. Terminal output is left to the
// caller, usually through glamour.
package renderer
