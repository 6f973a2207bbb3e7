// Package instructionpdf serializes assembled instruction documents to PDF.
//
// FPDFSerializer lays documents out natively with gofpdf and is the default.
// HTMLSerializer renders the document to HTML and converts it with a
// pluggable engine (wkhtmltopdf or headless Chromium); it is gated by
// HTMLSerializer.Enabled. Inspector reads rendered bytes back with pdfcpu.
package instructionpdf
