package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/pdftagger/pdftagger/internal/config"
	"github.com/pdftagger/pdftagger/internal/filter"
	"github.com/pdftagger/pdftagger/internal/session"
	"github.com/pdftagger/pdftagger/pkg/logger"
	"github.com/pdftagger/pdftagger/pkg/models"
	"github.com/pdftagger/pdftagger/pkg/updater"
	"github.com/pdftagger/pdftagger/pkg/version"
)

type PDFTaggerGUI struct {
	// Core components
	window        fyne.Window
	log           *logger.Logger
	cfg           *config.Config
	sess          *session.Session
	mutex         sync.Mutex
	logFileName   string
	updateChecker *updater.Checker

	// Search state
	searchHits []int
	hitIndex   int

	// UI components
	pageView     *canvas.Image
	pageLabel    *widget.Label
	countsLabel  *widget.Label
	status       *widget.Label
	knownCheck   *widget.Check
	reviewCheck  *widget.Check
	hardCheck    *widget.Check
	noneCheck    *widget.Check
	searchEntry  *widget.Entry
	searchStatus *widget.Label
	progress     *widget.ProgressBarInfinite
}

func NewPDFTaggerGUI(cfg *config.Config) *PDFTaggerGUI {
	log, logFileName, err := setupLogging()
	if err != nil {
		log = logger.New(logger.WithPrefix("[pdftagger-gui] "))
		fmt.Printf("Warning: Failed to set up logging: %v\n", err)
	}

	taggerApp := app.New()
	window := taggerApp.NewWindow("PDF Study Tagger")

	return &PDFTaggerGUI{
		window:        window,
		log:           log,
		cfg:           cfg,
		sess:          session.New(cfg, log),
		logFileName:   logFileName,
		updateChecker: updater.NewChecker(log),
		hitIndex:      -1,
	}
}

func setupLogging() (*logger.Logger, string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	logsDir := filepath.Join(homeDir, "pdftagger-logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFileName := filepath.Join(logsDir, fmt.Sprintf("pdftagger_%s.log", timestamp))

	absLogPath, err := filepath.Abs(logFileName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	logFile, err := os.Create(absLogPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, logFile)
	log := logger.New(
		logger.WithPrefix("[pdftagger-gui] "),
		logger.WithOutput(multiWriter),
	)

	return log, absLogPath, nil
}

func (gui *PDFTaggerGUI) setupUI() {
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("Open PDF...", gui.handleOpen),
			fyne.NewMenuItem("Export filtered pages...", gui.handleExportFiltered),
		),
		fyne.NewMenu("Help",
			fyne.NewMenuItem("About", func() {
				dialog.ShowInformation(
					"About PDFTagger",
					version.GetDetailedVersionInfo(),
					gui.window,
				)
			}),
		),
	)
	gui.window.SetMainMenu(mainMenu)

	// Page view
	gui.pageView = canvas.NewImageFromImage(nil)
	gui.pageView.FillMode = canvas.ImageFillContain
	gui.pageView.SetMinSize(fyne.NewSize(600, 780))

	gui.pageLabel = widget.NewLabel("No document open")
	gui.countsLabel = widget.NewLabel("")
	gui.status = widget.NewLabel("Open a PDF to start tagging (keys 1-4 tag, arrows navigate)")

	// Navigation
	prevBtn := widget.NewButton("< Prev", func() { gui.navigate(-1) })
	nextBtn := widget.NewButton("Next >", func() { gui.navigate(+1) })

	// Tag buttons
	knownBtn := widget.NewButton("1 Known", func() { gui.tagCurrent(models.TagKnown) })
	reviewBtn := widget.NewButton("2 Review", func() { gui.tagCurrent(models.TagReview) })
	hardBtn := widget.NewButton("3 Hard", func() { gui.tagCurrent(models.TagHard) })
	clearBtn := widget.NewButton("4 Clear", func() { gui.tagCurrent(models.TagNone) })
	knownBtn.Importance = widget.HighImportance

	tagBar := container.NewHBox(prevBtn, nextBtn, widget.NewSeparator(),
		knownBtn, reviewBtn, hardBtn, clearBtn)

	// Filter checkboxes; all enabled on open
	gui.knownCheck = widget.NewCheck("Known", func(bool) { gui.applyFilter() })
	gui.reviewCheck = widget.NewCheck("Review", func(bool) { gui.applyFilter() })
	gui.hardCheck = widget.NewCheck("Hard", func(bool) { gui.applyFilter() })
	gui.noneCheck = widget.NewCheck("Untagged", func(bool) { gui.applyFilter() })
	for _, check := range []*widget.Check{gui.knownCheck, gui.reviewCheck, gui.hardCheck, gui.noneCheck} {
		check.SetChecked(true)
	}

	filterBar := container.NewHBox(widget.NewLabel("Filters:"),
		gui.knownCheck, gui.reviewCheck, gui.hardCheck, gui.noneCheck)

	// Search controls
	gui.searchEntry = widget.NewEntry()
	gui.searchEntry.SetPlaceHolder("Search text...")
	gui.searchEntry.OnSubmitted = func(string) { gui.runSearch() }
	gui.searchStatus = widget.NewLabel("0 matches")
	searchPrevBtn := widget.NewButton("Prev hit", func() { gui.gotoHit(-1) })
	searchNextBtn := widget.NewButton("Next hit", func() { gui.gotoHit(+1) })

	searchBar := container.NewBorder(nil, nil, nil,
		container.NewHBox(searchPrevBtn, searchNextBtn, gui.searchStatus),
		gui.searchEntry)

	exportBtn := widget.NewButton("Export filtered pages", gui.handleExportFiltered)

	gui.progress = widget.NewProgressBarInfinite()
	gui.progress.Hide()

	statusBar := container.NewHBox(gui.pageLabel, widget.NewSeparator(), gui.countsLabel)

	content := container.NewBorder(
		container.NewVBox(searchBar, filterBar),
		container.NewVBox(tagBar, exportBtn, gui.progress, statusBar, gui.status),
		nil, nil,
		gui.pageView,
	)

	gui.window.SetContent(container.NewPadded(content))
	gui.window.Resize(fyne.NewSize(900, 1000))

	gui.setupShortcuts()
}

func (gui *PDFTaggerGUI) setupShortcuts() {
	// Canvas-level handlers only fire when no widget (e.g. the search
	// entry) has focus, so typing a search never tags pages.
	gui.window.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case '1':
			gui.tagCurrent(models.TagKnown)
		case '2':
			gui.tagCurrent(models.TagReview)
		case '3':
			gui.tagCurrent(models.TagHard)
		case '4':
			gui.tagCurrent(models.TagNone)
		}
	})
	gui.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyLeft, fyne.KeyUp:
			gui.navigate(-1)
		case fyne.KeyRight, fyne.KeyDown, fyne.KeySpace:
			gui.navigate(+1)
		}
	})
}

func (gui *PDFTaggerGUI) handleOpen() {
	dialog.ShowFileOpen(func(uri fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, gui.window)
			return
		}
		if uri == nil {
			return
		}
		uri.Close()
		gui.openDocument(uri.URI().Path())
	}, gui.window)
}

// openDocument loads a document into the session. Failure leaves the GUI
// with no document open; the error is reported, never fatal.
func (gui *PDFTaggerGUI) openDocument(path string) {
	gui.mutex.Lock()
	err := gui.sess.Open(path)
	gui.mutex.Unlock()

	if err != nil {
		dialog.ShowError(fmt.Errorf("could not open %s: %v", filepath.Base(path), err), gui.window)
		return
	}

	gui.window.SetTitle("PDF Study Tagger - " + filepath.Base(path))
	gui.resetSearch()
	gui.refresh()
}

// tagCurrent applies a tag to the page in view and advances to the next
// visible page, matching the tag-and-advance keyboard flow.
func (gui *PDFTaggerGUI) tagCurrent(tag models.Tag) {
	gui.mutex.Lock()
	page := gui.sess.CurrentPage()
	if page < 0 {
		gui.mutex.Unlock()
		return
	}
	stillVisible := false
	gui.sess.SetTag(page, tag)
	for _, p := range gui.sess.VisiblePages() {
		if p == page {
			stillVisible = true
			break
		}
	}
	// When tagging filtered the page out, the session already repositioned
	// onto the next visible page; only advance when it did not.
	if stillVisible {
		gui.sess.Next()
	}
	gui.mutex.Unlock()

	gui.refresh()
}

func (gui *PDFTaggerGUI) navigate(direction int) {
	gui.mutex.Lock()
	if direction < 0 {
		gui.sess.Prev()
	} else {
		gui.sess.Next()
	}
	gui.mutex.Unlock()

	gui.refresh()
}

func (gui *PDFTaggerGUI) applyFilter() {
	gui.mutex.Lock()
	if !gui.sess.HasDocument() {
		gui.mutex.Unlock()
		return
	}

	var set filter.TagSet
	if gui.knownCheck.Checked {
		set = set.Add(models.TagKnown)
	}
	if gui.reviewCheck.Checked {
		set = set.Add(models.TagReview)
	}
	if gui.hardCheck.Checked {
		set = set.Add(models.TagHard)
	}
	if gui.noneCheck.Checked {
		set = set.Add(models.TagNone)
	}
	gui.sess.SetFilter(set)
	gui.mutex.Unlock()

	gui.resetSearch()
	gui.refresh()
}

func (gui *PDFTaggerGUI) runSearch() {
	term := gui.searchEntry.Text
	if term == "" || !gui.sess.HasDocument() {
		return
	}

	gui.mutex.Lock()
	hits, err := gui.sess.Search(context.Background(), term)
	gui.mutex.Unlock()

	if err != nil {
		dialog.ShowError(fmt.Errorf("search failed: %v", err), gui.window)
		return
	}

	gui.searchHits = hits
	gui.hitIndex = -1
	if len(hits) > 0 {
		gui.gotoHit(+1)
	} else {
		gui.searchStatus.SetText("0 matches")
	}
}

func (gui *PDFTaggerGUI) gotoHit(direction int) {
	if len(gui.searchHits) == 0 {
		gui.runSearch()
		return
	}

	gui.hitIndex += direction
	if gui.hitIndex < 0 {
		gui.hitIndex = len(gui.searchHits) - 1
	}
	if gui.hitIndex >= len(gui.searchHits) {
		gui.hitIndex = 0
	}

	gui.mutex.Lock()
	gui.sess.GoTo(gui.searchHits[gui.hitIndex])
	gui.mutex.Unlock()

	gui.searchStatus.SetText(fmt.Sprintf("%d of %d matches", gui.hitIndex+1, len(gui.searchHits)))
	gui.refresh()
}

func (gui *PDFTaggerGUI) resetSearch() {
	gui.searchHits = nil
	gui.hitIndex = -1
	gui.searchStatus.SetText("0 matches")
}

func (gui *PDFTaggerGUI) handleExportFiltered() {
	gui.mutex.Lock()
	hasDoc := gui.sess.HasDocument()
	visible := gui.sess.VisiblePages()
	gui.mutex.Unlock()

	if !hasDoc {
		dialog.ShowError(fmt.Errorf("no document open"), gui.window)
		return
	}
	if len(visible) == 0 {
		dialog.ShowError(fmt.Errorf("no pages match the current filter"), gui.window)
		return
	}

	dialog.ShowFileSave(func(uri fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, gui.window)
			return
		}
		if uri == nil {
			return
		}
		outPath := uri.URI().Path()
		uri.Close()

		gui.progress.Show()
		gui.status.SetText("Exporting...")

		go func() {
			gui.mutex.Lock()
			written, err := gui.sess.ExportVisible(outPath)
			gui.mutex.Unlock()

			gui.progress.Hide()
			if err != nil {
				gui.showError(fmt.Sprintf("Export failed: %v", err))
				return
			}
			gui.status.SetText("Exported to " + written)
		}()
	}, gui.window)
}

func (gui *PDFTaggerGUI) showError(message string) {
	notification := fyne.NewNotification("Error", message)
	fyne.CurrentApp().SendNotification(notification)
	gui.status.SetText(message)
}

// refresh re-renders the current page and all state labels.
func (gui *PDFTaggerGUI) refresh() {
	gui.mutex.Lock()
	defer gui.mutex.Unlock()

	if !gui.sess.HasDocument() {
		return
	}

	visible := gui.sess.VisiblePages()
	page := gui.sess.CurrentPage()

	if page < 0 {
		gui.pageView.Image = nil
		gui.pageView.Refresh()
		gui.pageLabel.SetText("0 / 0  No pages match filter")
	} else {
		img, err := gui.sess.Document().ImageDPI(page, gui.cfg.RenderDPI)
		if err != nil {
			gui.log.Warn("Could not render page %d: %v", page+1, err)
		} else {
			gui.pageView.Image = img
			gui.pageView.Refresh()
		}

		position := 0
		for i, p := range visible {
			if p == page {
				position = i + 1
				break
			}
		}
		tag := gui.sess.CurrentTag()
		label := fmt.Sprintf("%d / %d  (page %d of %d)", position, len(visible),
			page+1, gui.sess.Document().PageCount())
		if tag != models.TagNone {
			label += "  [" + tag.String() + "]"
		}
		gui.pageLabel.SetText(label)
	}

	gui.countsLabel.SetText(gui.sess.Counts().Summary(gui.sess.Document().PageCount()))
}

func (gui *PDFTaggerGUI) startUpdateChecker() {
	go func() {
		time.Sleep(5 * time.Second) // Wait a bit after startup
		info, err := gui.updateChecker.CheckForUpdates()
		if err != nil {
			gui.log.Debug("Failed to check for updates: %v", err)
			return
		}
		if info != nil && info.IsAvailable {
			gui.showUpdateDialog(info)
		}
	}()
}

func (gui *PDFTaggerGUI) showUpdateDialog(info *updater.UpdateInfo) {
	message := fmt.Sprintf(
		"A new version of PDFTagger is available!\n\n"+
			"Current version: %s\n"+
			"Latest version: %s\n\n"+
			"%s",
		info.CurrentVersion,
		info.LatestVersion,
		info.UpdateMessage,
	)

	content := container.NewVBox(
		widget.NewRichTextFromMarkdown(message),
		container.NewHBox(
			widget.NewButton("Download Update", func() {
				gui.openBrowser(info.DownloadURL)
			}),
		),
	)

	d := dialog.NewCustom("Update Available", "Later", content, gui.window)
	d.Resize(fyne.NewSize(500, 300))
	d.Show()
}

func (gui *PDFTaggerGUI) openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("cmd", "/c", "start", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}

	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to open download page: %v", err), gui.window)
	}
}

func (gui *PDFTaggerGUI) Run(docPath string) {
	gui.setupUI()
	if docPath != "" {
		gui.openDocument(docPath)
	}
	gui.window.ShowAndRun()
	gui.sess.Close()
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	gui := NewPDFTaggerGUI(cfg)
	gui.log.SetVerbose(*verbose)
	gui.startUpdateChecker()
	gui.Run(flag.Arg(0))
}
