// Package instructiontemplate renders instruction documents and the entry
// form as HTML using pongo2 templates.
//
// RenderDocument output is self-contained (inline styles, no external
// assets) so it can be fed to an HTML-to-PDF engine or served as a preview.
package instructiontemplate
