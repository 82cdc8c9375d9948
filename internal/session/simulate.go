package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"screentimer/internal/core/schedule"
	"screentimer/internal/core/screentimer"
	"screentimer/internal/core/visibility"
	"screentimer/internal/ui/preferences"
)

// Geometry of the scripted page: a 200px card 900px down a page viewed through a
// 600px window, scrolled either to the top or to 700px where the card is fully in view.
const (
	simulatedCardTop        = 900
	simulatedCardHeight     = 200
	simulatedViewportHeight = 600
	simulatedScrolledTo     = 700
)

// SimulateOptions drives a headless run against a scripted page.
type SimulateOptions struct {
	Settings preferences.Settings
	// Duration is the amount of virtual time to run.
	Duration time.Duration
	// ScrollEvery alternates the page between top and card-in-view, starting at top.
	ScrollEvery time.Duration
	// HideFor hides the page for this long starting halfway through. Zero disables it.
	HideFor time.Duration
	Out     io.Writer
	Logger  *slog.Logger
}

// SimulateResult summarises a simulation.
type SimulateResult struct {
	Reports []screentimer.Report
	Totals  Totals
}

type scriptedPage struct {
	scrollY float64
}

func (page *scriptedPage) Viewport() visibility.Viewport {
	return visibility.Viewport{ScrollY: page.scrollY, Width: 800, Height: simulatedViewportHeight}
}

func (page *scriptedPage) Bounds() (visibility.Rect, bool) {
	return visibility.Rect{Y: simulatedCardTop - page.scrollY, Width: 800, Height: simulatedCardHeight}, true
}

// Simulate runs a timer on a manual scheduler, stepping virtual time by the look
// interval, and writes every timer event to Out. Every report is collected however
// long the run.
func Simulate(options SimulateOptions) (SimulateResult, error) {
	if options.Duration <= 0 {
		return SimulateResult{}, fmt.Errorf("duration must be positive, got %s", options.Duration)
	}
	if options.ScrollEvery <= 0 {
		return SimulateResult{}, fmt.Errorf("scroll interval must be positive, got %s", options.ScrollEvery)
	}
	out := options.Out
	if out == nil {
		out = io.Discard
	}

	manual := schedule.NewManual()
	page := &scriptedPage{}
	foreground := screentimer.NewBroadcast()
	var result SimulateResult

	session, err := New(Deps{
		Scheduler:  manual,
		Viewport:   page,
		Element:    visibility.Direct(page),
		Foreground: foreground,
		OnTimerReport: func(report screentimer.Report) {
			result.Reports = append(result.Reports, report)
			fmt.Fprintf(out, "%8s %-12s count=%d visible=%s\n", manual.Now(), screentimer.EventReport, report.Count, report.Elapsed)
		},
		Logger: options.Logger,
	}, options.Settings, nil)
	if err != nil {
		return result, err
	}
	defer session.Close()

	// Reports arrive through OnTimerReport; the channel only carries state changes.
	events := session.Timer().Subscribe(16)
	step := options.Settings.LookInterval
	hideFrom := options.Duration / 2
	var tickErrs []error

	for elapsed := time.Duration(0); elapsed < options.Duration; elapsed += step {
		if int(elapsed/options.ScrollEvery)%2 == 1 {
			page.scrollY = simulatedScrolledTo
		} else {
			page.scrollY = 0
		}
		if options.HideFor > 0 {
			foreground.Publish(elapsed >= hideFrom && elapsed < hideFrom+options.HideFor)
		}
		drain(events, manual.Now(), out)

		if err := manual.Advance(step); err != nil {
			tickErrs = append(tickErrs, err)
		}
		drain(events, manual.Now(), out)
	}

	result.Totals = session.Totals()
	fmt.Fprintf(out, "%8s total visible %s in %d reports\n", manual.Now(), result.Totals.Visible, result.Totals.Reports)
	return result, errors.Join(tickErrs...)
}

func drain(events <-chan screentimer.Event, now time.Duration, out io.Writer) {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Type == screentimer.EventReport {
				continue
			}
			fmt.Fprintf(out, "%8s %-12s state=%s\n", now, event.Type, event.State)
		default:
			return
		}
	}
}
