package main

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gioui.org/f32"
	"github.com/benoitkugler/giosvg/svgdraw"
	"github.com/benoitkugler/giosvg/svgpdf"
	"github.com/benoitkugler/giosvg/svgpdf/alt"
	"github.com/benoitkugler/giosvg/svgraster"
	"github.com/chewxy/math32"
)

type Render struct {
	File   string  `arg:"" type:"existingfile" help:"SVG document to render"`
	Output string  `short:"o" required:"" type:"path" help:"output file, with a .png or .pdf extension"`
	Size   string  `help:"fit the document in the given size" placeholder:"WxH"`
	Scale  float32 `help:"explicit scale, overriding --size"`
	PDF    string  `name:"pdf-writer" enum:"gofpdf,contentstream" default:"gofpdf" help:"library used to write PDF files (${enum})"`
}

// parseSize reads a WxH string.
func parseSize(s string) (f32.Point, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return f32.Point{}, fmt.Errorf("invalid size %q, expected WxH", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(ws), 32)
	if err != nil {
		return f32.Point{}, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(hs), 32)
	if err != nil {
		return f32.Point{}, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return f32.Point{}, fmt.Errorf("invalid size %q, expected positive values", s)
	}
	return f32.Pt(float32(w), float32(h)), nil
}

// configure applies the size options to v.
func (r *Render) configure(v svgdraw.View) (svgdraw.View, error) {
	if r.Scale > 0 {
		return v.WithScale(r.Scale), nil
	}
	if r.Size != "" {
		size, err := parseSize(r.Size)
		if err != nil {
			return v, err
		}
		return v.WithSize(size), nil
	}
	return v, nil
}

func (r *Render) Run(ctx *Context) error {
	v, err := loadView(r.File, ctx)
	if err != nil {
		return err
	}
	v, err = r.configure(v)
	if err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(r.Output))
	if ext != ".png" && ext != ".pdf" {
		return fmt.Errorf("unsupported output format %q", ext)
	}

	f, err := os.Create(r.Output)
	if err != nil {
		return err
	}
	defer f.Close()

	if ext == ".png" {
		err = renderPNG(v, ctx.Config, f)
	} else {
		err = ctx.Config.renderErr(r.renderPDF(v, f))
	}
	if err != nil {
		return err
	}
	ctx.Logger.Info("rendered document", "input", r.File, "output", r.Output)
	return f.Close()
}

func (r *Render) renderPDF(v svgdraw.View, f *os.File) error {
	if r.PDF == "contentstream" {
		return alt.Render(v, f)
	}
	return svgpdf.Render(v, f)
}

func renderPNG(v svgdraw.View, cfg Config, f *os.File) error {
	size := v.Size()
	img := image.NewRGBA(image.Rect(0, 0, int(math32.Ceil(size.X)), int(math32.Ceil(size.Y))))
	draw.Draw(img, img.Bounds(), image.NewUniform(cfg.background), image.Point{}, draw.Src)
	if err := cfg.renderErr(v.Render(svgraster.NewRenderer(img))); err != nil {
		return err
	}
	return png.Encode(f, img)
}
