package feed

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/rdt/infra/media"
)

const (
	maxImageCols = 48
	maxImageRows = 12
)

// renderDetailAssets prepares the width-dependent parts of the detail view
// so View stays cheap.
func (m *Model) renderDetailAssets() {
	if m.currentPost == nil {
		m.selftextRender = ""
		m.imageRender = ""
		return
	}
	width, _ := m.size()

	m.selftextRender = ""
	if text := strings.TrimSpace(m.currentPost.Selftext); text != "" {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(max(width-4, 20)),
		)
		if err == nil {
			m.selftextRender, err = r.Render(text)
		}
		if err != nil {
			log.Debug().Err(err).Msg("markdown render failed")
			m.selftextRender = ""
		}
	}

	m.imageRender = ""
	if m.image != nil {
		w, h := media.FitCells(m.image, min(width-4, maxImageCols), maxImageRows)
		if w > 0 && h > 0 {
			m.imageRender = renderANSIThumbnail(media.Thumbnail(m.image, w, h*2))
		}
	}
}

// renderANSIThumbnail draws img with one half-block per two vertical pixels:
// the top pixel is the foreground and the bottom pixel the background.
func renderANSIThumbnail(img image.Image) string {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ""
	}
	var out strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = color.NRGBAModel.Convert(img.At(x, y+1)).(color.NRGBA)
			}
			fmt.Fprintf(&out, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
		}
		out.WriteString("\x1b[0m")
		if y+2 < b.Max.Y {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
