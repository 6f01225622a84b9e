package svgtree

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"path"
	"strings"

	"github.com/h2non/filetype"
)

var imageKinds = map[string]ImageKind{
	"png":  ImagePNG,
	"jpg":  ImageJPEG,
	"jpeg": ImageJPEG,
	"gif":  ImageGIF,
	"webp": ImageWEBP,
	"svg":  ImageSVG,
}

// sniffImageKind detects the format of the image content.
func sniffImageKind(data []byte) ImageKind {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("<svg")) || bytes.HasPrefix(trimmed, []byte("<?xml")) {
		return ImageSVG
	}
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return ImageUnknown
	}
	return imageKinds[kind.Extension]
}

// decodeDataURL returns the content of a data URL, such as
// "data:image/png;base64,iVBO...".
func decodeDataURL(href string) ([]byte, error) {
	rest := strings.TrimPrefix(href, "data:")
	comma := strings.IndexByte(rest, ',')
	if comma == -1 {
		return nil, fmt.Errorf("invalid data URL")
	}
	header, payload := rest[:comma], rest[comma+1:]
	if strings.HasSuffix(header, ";base64") {
		// tolerates line breaks and missing padding
		payload = strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
				return -1
			}
			return r
		}, payload)
		return base64.StdEncoding.WithPadding(base64.NoPadding).DecodeString(strings.TrimRight(payload, "="))
	}
	s, err := url.PathUnescape(payload)
	return []byte(s), err
}

// imageF records an image element. The content is not decoded,
// only its format and natural size are detected.
func imageF(b *builder, el *element, parent *Group, decl declarations, st style) error {
	href := strings.TrimSpace(el.attr("href"))
	if href == "" {
		return b.handleError(el, "image element without href")
	}
	img := &Image{Href: href}
	img.id = el.attr("id")
	if strings.HasPrefix(href, "data:") {
		data, err := decodeDataURL(href)
		if err != nil {
			return b.handleError(el, fmt.Sprintf("invalid image data: %s", err))
		}
		img.Data = data
		img.Kind = sniffImageKind(data)
	} else {
		ext := strings.TrimPrefix(strings.ToLower(path.Ext(href)), ".")
		img.Kind = imageKinds[ext]
	}

	l, err := b.readLengths(el, st, "x", "y", "width", "height")
	if err != nil {
		return b.handleError(el, err.Error())
	}
	img.View = Rect{X: l[0], Y: l[1], W: l[2], H: l[3]}
	// missing dimensions default to the natural size of raster images
	if !el.hasAttr("width") || !el.hasAttr("height") {
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Data)); err == nil {
			w, h := float64(cfg.Width), float64(cfg.Height)
			switch {
			case !el.hasAttr("width") && !el.hasAttr("height"):
				img.View.W, img.View.H = w, h
			case !el.hasAttr("width"):
				img.View.W = img.View.H * w / h
			default:
				img.View.H = img.View.W * h / w
			}
		}
	}
	if img.View.IsEmpty() {
		return nil
	}

	container := parent
	if needsGroup(el, decl) {
		g, err := b.newGroup(el, parent, decl, Identity)
		if err != nil {
			return err
		}
		defer finalizeGroup(g)
		container = g
	}
	img.absTransform = container.absTransform
	img.absBBox = img.View.Transform(container.absTransform)
	container.Children = append(container.Children, img)
	return nil
}
