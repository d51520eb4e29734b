package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pdftagger/pdftagger/internal/config"
	"github.com/pdftagger/pdftagger/internal/filter"
	"github.com/pdftagger/pdftagger/internal/scanner"
	"github.com/pdftagger/pdftagger/internal/session"
	"github.com/pdftagger/pdftagger/pkg/logger"
	"github.com/pdftagger/pdftagger/pkg/utils"
	"github.com/pdftagger/pdftagger/pkg/version"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	tagList := flag.String("tag", "", "tag pages, e.g. \"5=hard,2=known\" (one-based)")
	clearList := flag.String("clear", "", "clear tags from pages, e.g. \"3,4\" (one-based)")
	filterList := flag.String("filter", "", "tags to show, e.g. \"hard,review\" (known|review|hard|none)")
	list := flag.Bool("list", false, "print pages matching the filter")
	summary := flag.Bool("summary", false, "print tag counts for the document")
	exportPath := flag.String("export", "", "export selected pages to this PDF")
	pageList := flag.String("pages", "", "pages to export, in order, e.g. \"5,2,7\" (one-based)")
	exportFiltered := flag.Bool("export-filtered", false, "export pages matching the filter")
	out := flag.String("out", "", "output path for -export-filtered (default <name>_filtered.pdf)")
	searchTerm := flag.String("search", "", "print pages whose text contains this term")
	scanDir := flag.String("scan", "", "report tag progress for every PDF under this directory")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	debug := flag.Bool("debug", false, "enable debug mode with trace logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	log := logger.New(logger.WithPrefix("[pdftagger] "))
	log.SetVerbose(*verbose)

	if *debug {
		log.SetLevel(logger.LevelTrace)
	}

	if *showVersion {
		fmt.Println(version.GetDetailedVersionInfo())
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Error loading config: %v", err)
	}

	ctx := context.Background()

	if *scanDir != "" {
		runScan(ctx, log, *scanDir)
		return
	}

	docPath := flag.Arg(0)
	if docPath == "" {
		fmt.Fprintln(os.Stderr, "usage: pdftagger [flags] document.pdf")
		flag.PrintDefaults()
		os.Exit(2)
	}

	sess := session.New(cfg, log)
	if err := sess.Open(docPath); err != nil {
		log.Fatal("Error opening document: %v", err)
	}
	defer sess.Close()

	if *filterList != "" {
		set, err := filter.ParseTagSet(*filterList)
		if err != nil {
			log.Fatal("Invalid -filter: %v", err)
		}
		sess.SetFilter(set)
	}

	if *tagList != "" {
		assignments, err := utils.ParseTagAssignments(*tagList)
		if err != nil {
			log.Fatal("Invalid -tag: %v", err)
		}
		for _, a := range assignments {
			sess.SetTag(a.Page, a.Tag)
			log.Info("Page %d tagged %s", a.Page+1, a.Tag)
		}
	}

	if *clearList != "" {
		pages, err := utils.ParsePageList(*clearList)
		if err != nil {
			log.Fatal("Invalid -clear: %v", err)
		}
		for _, page := range pages {
			sess.ClearTag(page)
			log.Info("Page %d cleared", page+1)
		}
	}

	if *searchTerm != "" {
		hits, err := sess.Search(ctx, *searchTerm)
		if err != nil {
			log.Fatal("Search failed: %v", err)
		}
		fmt.Printf("%d matching pages for %q:", len(hits), *searchTerm)
		for _, page := range hits {
			fmt.Printf(" %d", page+1)
		}
		fmt.Println()
	}

	if *list {
		for _, page := range sess.VisiblePages() {
			tag := sess.Store().Get(page)
			fmt.Printf("%d\t%s\n", page+1, tag)
		}
	}

	if *exportPath != "" {
		if *pageList == "" {
			log.Fatal("-export requires -pages")
		}
		pages, err := utils.ParsePageList(*pageList)
		if err != nil {
			log.Fatal("Invalid -pages: %v", err)
		}
		for _, page := range pages {
			if err := sess.Selection().Add(page); err != nil {
				log.Fatal("Invalid selection: %v", err)
			}
		}
		if err := sess.ExportSelection(*exportPath); err != nil {
			log.Fatal("Export failed: %v", err)
		}
	}

	if *exportFiltered {
		written, err := sess.ExportVisible(*out)
		if err != nil {
			log.Fatal("Export failed: %v", err)
		}
		log.Info("Filtered pages saved to %s", written)
	}

	if *summary || onlyDocumentGiven(*tagList, *clearList, *filterList, *searchTerm, *exportPath, *list, *exportFiltered, *summary) {
		printSummary(sess)
	}
}

// onlyDocumentGiven reports whether no action flag was used, in which case
// the summary is the default action.
func onlyDocumentGiven(tagList, clearList, filterList, searchTerm, exportPath string, list, exportFiltered, summary bool) bool {
	return tagList == "" && clearList == "" && filterList == "" && searchTerm == "" &&
		exportPath == "" && !list && !exportFiltered && !summary
}

func printSummary(sess *session.Session) {
	info := sess.Document().Info()
	counts := sess.Counts()
	fmt.Printf("%s: %d pages, %d tagged\n", info.Path, info.PageCount, counts.Tagged())
	if line := counts.Summary(info.PageCount); line != "" {
		fmt.Println(line)
	}
}

func runScan(ctx context.Context, log *logger.Logger, dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Fatal("Directory does not exist: %s", dir)
	}

	dirScanner := scanner.New(log)

	log.Info("Scanning directory: %s", dir)
	stats, err := dirScanner.ScanDirectory(ctx, dir)
	if err != nil {
		log.Fatal("Scan failed: %v", err)
	}

	for _, report := range stats.Reports {
		if !report.HasSidecar {
			fmt.Printf("%s: %d pages, untagged\n", report.RelativePath, report.PageCount)
			continue
		}
		fmt.Printf("%s: %d pages, %d tagged", report.RelativePath, report.PageCount, report.Counts.Tagged())
		if line := report.Counts.Summary(report.PageCount); line != "" {
			fmt.Printf(" (%s)", line)
		}
		fmt.Println()
	}

	log.Info("Scan complete: %d PDFs, %d with tags", stats.PDFCount, stats.TaggedCount)
}
