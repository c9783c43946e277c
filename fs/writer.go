// Package fs writes sitemap XML files to the local filesystem.
package fs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sitemapper/sitemapper"
)

const (
	xmlHeader     = `<?xml version="1.0" encoding="UTF-8"?>`
	sitemapSchema = `xmlns="https://www.sitemaps.org/schemas/sitemap/0.9"`

	// lastModLayout renders timestamps as ISO-8601 UTC with an explicit
	// +00:00 offset, e.g. 2024-05-01T13:37:00+00:00.
	lastModLayout = "2006-01-02T15:04:05+00:00"
)

// Ensure Writer implements sitemapper.SitemapWriter at compile time.
var _ sitemapper.SitemapWriter = (*Writer)(nil)

// Writer serializes page records into sitemap files in Dir. Record counts
// above the protocol's per-file cap are split into consecutively numbered
// part files plus a sitemap_index.xml listing them.
type Writer struct {
	// Dir is the output directory. Empty means the working directory.
	Dir string

	// MaxPerFile overrides sitemapper.MaxURLsPerFile when positive.
	// Tests use it to exercise splitting without 50,000 records.
	MaxPerFile int
}

// Write renders records into sitemap.xml or, over the cap, into
// sitemap1.xml..sitemapN.xml plus sitemap_index.xml. It returns the file
// names written. Any filesystem failure is returned as-is: unlike fetch
// errors, losing output files is fatal to a crawl.
func (w *Writer) Write(records []sitemapper.PageRecord) ([]string, error) {
	perFile := w.MaxPerFile
	if perFile <= 0 {
		perFile = sitemapper.MaxURLsPerFile
	}

	if len(records) <= perFile {
		if err := w.writeURLSet("sitemap.xml", records); err != nil {
			return nil, err
		}
		return []string{"sitemap.xml"}, nil
	}

	parts := (len(records) + perFile - 1) / perFile
	names := make([]string, 0, parts+1)
	for i := 0; i < parts; i++ {
		name := fmt.Sprintf("sitemap%d.xml", i+1)
		hi := (i + 1) * perFile
		if hi > len(records) {
			hi = len(records)
		}
		if err := w.writeURLSet(name, records[i*perFile:hi]); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	if err := w.writeIndex("sitemap_index.xml", names); err != nil {
		return nil, err
	}
	return append(names, "sitemap_index.xml"), nil
}

// writeURLSet writes one urlset file.
func (w *Writer) writeURLSet(name string, records []sitemapper.PageRecord) error {
	return w.writeFile(name, func(out *bufio.Writer) {
		out.WriteString(xmlHeader)
		out.WriteString("<urlset " + sitemapSchema + ">")
		for _, rec := range records {
			out.WriteString("<url>")
			out.WriteString("<loc>" + EscapeLoc(rec.Loc) + "</loc>")
			out.WriteString("<lastmod>" + rec.LastMod.UTC().Format(lastModLayout) + "</lastmod>")
			out.WriteString("</url>")
		}
		out.WriteString("</urlset>")
	})
}

// writeIndex writes the sitemapindex file listing the part files.
func (w *Writer) writeIndex(name string, partNames []string) error {
	return w.writeFile(name, func(out *bufio.Writer) {
		out.WriteString(xmlHeader)
		out.WriteString("<sitemapindex " + sitemapSchema + ">")
		for _, part := range partNames {
			out.WriteString("<sitemap><loc>/" + part + "</loc></sitemap>")
		}
		out.WriteString("</sitemapindex>")
	})
}

// writeFile creates name in Dir and streams render into it.
func (w *Writer) writeFile(name string, render func(out *bufio.Writer)) error {
	path := name
	if w.Dir != "" {
		path = filepath.Join(w.Dir, name)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	out := bufio.NewWriter(f)
	render(out)

	if err := out.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// locEscaper escapes the characters that may not appear raw inside a
// <loc> element. Replacer runs in a single pass, so the ampersands it
// inserts are never re-escaped.
var locEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeLoc returns loc with &, ", < and > HTML-entity-escaped.
func EscapeLoc(loc string) string {
	return locEscaper.Replace(loc)
}
