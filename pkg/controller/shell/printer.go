package shell

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/tiksnap/tiksnap/pkg/domain/interfaces"
	"github.com/tiksnap/tiksnap/pkg/domain/model"
)

// Printer renders screens on a terminal. It only prints what changed since the
// previous screen, so repeated updates stay readable.
type Printer struct {
	out io.Writer

	mu   sync.Mutex
	last model.Screen

	errorColor  *color.Color
	alertColor  *color.Color
	titleColor  *color.Color
	dimColor    *color.Color
	savedColor  *color.Color
	actionColor *color.Color
}

var _ interfaces.Presenter = (*Printer)(nil)

// NewPrinter creates a Printer writing to out
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:         out,
		errorColor:  color.New(color.FgRed),
		alertColor:  color.New(color.FgRed, color.Bold),
		titleColor:  color.New(color.FgCyan, color.Bold),
		dimColor:    color.New(color.Faint),
		savedColor:  color.New(color.FgGreen),
		actionColor: color.New(color.FgYellow),
	}
}

// Present prints the parts of screen that changed
func (p *Printer) Present(ctx context.Context, screen *model.Screen) {
	p.mu.Lock()
	defer p.mu.Unlock()

	prev := p.last
	p.last = *screen

	if screen.UI.Loading && !prev.UI.Loading {
		p.dimColor.Fprintln(p.out, "… đang tải")
	}
	if screen.UI.Zip.InFlight && !prev.UI.Zip.InFlight {
		p.dimColor.Fprintln(p.out, "… "+screen.UI.Zip.Label)
	}
	if screen.UI.Convert.InFlight && !prev.UI.Convert.InFlight {
		p.dimColor.Fprintln(p.out, "… "+screen.UI.Convert.Label)
	}
	if screen.UI.Error != "" && screen.UI.Error != prev.UI.Error {
		p.errorColor.Fprintln(p.out, "✗ "+screen.UI.Error)
	}
	if screen.Session.Mode != prev.Session.Mode && prev.Session.Mode != "" {
		p.dimColor.Fprintf(p.out, "mode: %s\n", screen.Session.Mode)
	}

	showPanel := screen.UI.PanelVisible &&
		(!prev.UI.PanelVisible || screen.UI.Revision != prev.UI.Revision)
	if showPanel {
		p.printPanel(screen)
	}
}

// Alert prints a message that needs the user's attention
func (p *Printer) Alert(ctx context.Context, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alertColor.Fprintln(p.out, "! "+msg)
}

// Show prints the full current screen regardless of what changed
func (p *Printer) Show(screen *model.Screen) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.dimColor.Fprintf(p.out, "mode: %s  source: %s\n", screen.Session.Mode, orDash(screen.Session.SourceURL))
	if screen.UI.Error != "" {
		p.errorColor.Fprintln(p.out, "✗ "+screen.UI.Error)
	}
	if !screen.UI.PanelVisible {
		p.dimColor.Fprintln(p.out, "(no result shown)")
		return
	}
	p.printPanel(screen)
}

// Saved reports a file written by an operation
func (p *Printer) Saved(saved *model.SavedFile) {
	if saved == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.savedColor.Fprintf(p.out, "✓ %s (%s)\n", saved.Path, humanize.Bytes(uint64(max(saved.Size, 0))))
}

// Println prints a plain line
func (p *Printer) Println(a ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) printPanel(screen *model.Screen) {
	view := screen.View
	if view == nil {
		return
	}

	p.titleColor.Fprintf(p.out, "@%s\n", orDash(view.Author))
	fmt.Fprintln(p.out, view.Title)
	if view.Thumbnail != "" {
		p.dimColor.Fprintln(p.out, "avatar: "+view.Thumbnail)
	}

	if view.ShowGallery {
		for _, item := range view.Gallery {
			fmt.Fprintf(p.out, "[%d] %s\n", item.Index+1, item.ImageURL)
			p.dimColor.Fprintf(p.out, "    %s → %s\n", item.Filename, item.DownloadURL)
		}
	}
	if view.ShowZip {
		p.actionColor.Fprintf(p.out, "zip: %s\n", screen.UI.Zip.Label)
	}
	if view.ShowVideo {
		fmt.Fprintln(p.out, "video: "+view.VideoURL)
	}
	if view.ShowAudio {
		p.actionColor.Fprintf(p.out, "mp3: %s\n", screen.UI.Convert.Label)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Print prints text without a newline
func (p *Printer) Print(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.out, s)
}
