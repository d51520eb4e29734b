package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdftagger/pdftagger/internal/tagstore"
)

func main() {
	pdfPath := flag.String("file", "", "Path to PDF file")
	flag.Parse()

	if *pdfPath == "" {
		fmt.Println("Please provide a PDF file path using -file flag")
		os.Exit(1)
	}

	fmt.Printf("Inspecting tags for: %s\n", *pdfPath)

	pageCount, err := api.PageCountFile(*pdfPath)
	if err != nil {
		fmt.Printf("Error reading PDF: %v\n", err)
		os.Exit(1)
	}

	sidecar := tagstore.SidecarPath(*pdfPath)
	fmt.Printf("Sidecar file: %s\n", sidecar)

	store, err := tagstore.Load(sidecar, pageCount)
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
	}

	fmt.Printf("Pages: %d, tagged: %d\n", pageCount, store.Len())
	for _, page := range store.Pages() {
		fmt.Printf("Page %d: %s\n", page+1, store.Get(page))
	}
}
