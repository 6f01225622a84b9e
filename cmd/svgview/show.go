package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"github.com/benoitkugler/giosvg/svgdraw"
	"github.com/benoitkugler/giosvg/svggio"
)

//go:embed testdata/test.svg
var testSVG []byte

type Show struct {
	File  string  `arg:"" optional:"" type:"existingfile" help:"SVG document to display, a bundled test image if omitted"`
	Scale float32 `help:"explicit scale, instead of fitting the window"`
	Watch bool    `help:"reload the document when the file changes"`
}

// loadView parses the file at path, or the bundled
// test image if path is empty.
func loadView(path string, ctx *Context) (svgdraw.View, error) {
	data, name := testSVG, "test.svg"
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return svgdraw.View{}, err
		}
		name = path
	}
	v, err := svgdraw.New(data)
	if err != nil {
		return v, fmt.Errorf("loading %s: %w", name, err)
	}
	return v.WithErrorMode(ctx.Config.errorMode).WithLogger(ctx.Logger), nil
}

// widget returns the widget drawing v: fit to the window by default,
// at its natural size when fit is false, or at the --scale factor.
func (s *Show) widget(v svgdraw.View, fit bool) layout.Widget {
	switch {
	case s.Scale > 0:
		return svggio.SVG{View: v.WithScale(s.Scale)}.Layout
	case fit:
		return svggio.Fit{View: v}.Layout
	default:
		return svggio.SVG{View: v}.Layout
	}
}

func (s *Show) Run(ctx *Context) error {
	v, err := loadView(s.File, ctx)
	if err != nil {
		return err
	}

	w := new(app.Window)
	w.Option(
		app.Title("svgview"),
		app.Size(unit.Dp(ctx.Config.Window.Width), unit.Dp(ctx.Config.Window.Height)),
	)

	var reloads chan svgdraw.View
	if s.Watch && s.File != "" {
		reloads = make(chan svgdraw.View, 1)
		fw, err := newFileWatcher(s.File, func() {
			nv, err := loadView(s.File, ctx)
			if err != nil {
				ctx.Logger.Error("reloading document", "error", err)
				return
			}
			select {
			case <-reloads: // drop the pending view
			default:
			}
			reloads <- nv
			w.Invalidate()
		}, ctx.Logger)
		if err != nil {
			return err
		}
		watchCtx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go fw.run(watchCtx)
	}

	go func() {
		if err := s.loop(w, v, reloads, ctx); err != nil {
			ctx.Logger.Error("window closed", "error", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

func (s *Show) loop(w *app.Window, v svgdraw.View, reloads <-chan svgdraw.View, ctx *Context) error {
	var (
		ops   op.Ops
		click widget.Clickable
		fit   = true
	)
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			select {
			case v = <-reloads:
				ctx.Logger.Info("document reloaded", "path", s.File)
			default:
			}
			if click.Clicked(gtx) {
				fit = !fit
				ctx.Logger.Debug("toggled fit", "fit", fit)
			}

			paint.Fill(gtx.Ops, ctx.Config.background)
			click.Layout(gtx, s.widget(v, fit))
			e.Frame(gtx.Ops)
		}
	}
}
