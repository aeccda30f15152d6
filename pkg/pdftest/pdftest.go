// Package pdftest builds small PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// PageSize is the edge length of every generated page in points.
const PageSize = 200

// Write creates name in dir with one square page per entry of pages. Each
// non-empty entry is drawn as a single line of Helvetica; an empty entry
// yields a page without a text layer.
func Write(t testing.TB, dir, name string, pages ...string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, Build(pages...), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}

	return p
}

// Build returns the bytes of a PDF with the given pages. Objects are laid out
// as catalog, page tree, one page and content stream pair per page, then the
// font, so the cross-reference table is exact.
func Build(pages ...string) []byte {
	fontID := 3 + 2*len(pages)

	var objects []string
	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+2*i))
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
	)

	for i, text := range pages {
		content := ""
		if text != "" {
			content = fmt.Sprintf("BT /F1 24 Tf 20 100 Td (%s) Tj ET", escape(text))
		}
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
				PageSize, PageSize, fontID, 4+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	buf := new(bytes.Buffer)
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 0, len(objects))
	for i, obj := range objects {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func escape(text string) string {
	r := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
	return r.Replace(text)
}
