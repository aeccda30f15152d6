package main

import (
	"context"
	"slices"
	"strings"

	"github.com/schidstorm/pdf2txt/pkg/document"
	"github.com/schidstorm/pdf2txt/pkg/tesseract"
	"github.com/spf13/cobra"
)

func runCheck(cmd *cobra.Command, args []string) {
	opts := loadOptions(cmd)

	if opts.Ocr.Engine == tesseract.EngineGosseract {
		_, err := tesseract.NewEngine(opts.Ocr)
		if err != nil {
			failure("OCR unavailable: %v", err)
			return
		}
		success("OCR available (gosseract)")
		return
	}

	binary, err := tesseract.Locate(opts.Ocr.Binary)
	if err != nil {
		failure("OCR unavailable: %v", err)
		return
	}
	success("tesseract found at %s", binary)

	installed, err := tesseract.NewCli(binary, opts.Ocr.Psm).Languages(context.Background())
	if err != nil {
		warning("Could not list installed languages: %v", err)
		return
	}

	for _, lang := range opts.Pipeline.Languages {
		if slices.Contains(installed, lang) {
			success("language %s installed", lang)
		} else {
			failure("language %s missing", lang)
		}
	}
}

func runInfo(cmd *cobra.Command, args []string) {
	opts := loadOptions(cmd)
	p := args[0]

	err := document.Validate(p)
	if err != nil {
		failure("%s is not a valid PDF: %v", p, err)
	} else {
		success("%s is a valid PDF", p)
	}

	count, err := document.PageCount(p)
	if err == nil {
		info("%d pages", count)
	}

	opener, err := document.NewOpener(opts.Pipeline.Backend)
	if err != nil {
		failure("%v", err)
		return
	}

	doc, err := opener(p)
	if err != nil {
		failure("Failed to open %s: %v", p, err)
		return
	}
	defer doc.Close()

	var withoutText []int
	for i := 0; i < doc.NumPages(); i++ {
		text, err := doc.Text(i)
		if err != nil || isBlank(text) {
			withoutText = append(withoutText, i+1)
		}
	}

	if len(withoutText) == 0 {
		info("every page has a text layer")
	} else {
		warning("%d of %d pages need OCR: %v", len(withoutText), doc.NumPages(), withoutText)
	}
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
