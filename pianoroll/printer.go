package main

import (
	"log"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// type that renders strings from a fixed-width font, caching one texture per
// glyph
type printer struct {
	font     *ttf.Font
	textures map[rune]*sdl.Texture
	w, h     int32 // size of an individual glyph
}

// create a new initialized printer
func newPrinter(f *ttf.Font) (*printer, error) {
	w, h, err := f.SizeUTF8("0")
	if err != nil {
		return nil, err
	}
	return &printer{
		font:     f,
		textures: make(map[rune]*sdl.Texture),
		w:        int32(w),
		h:        int32(h),
	}, nil
}

// free the printer's resources
func (p *printer) destroy() {
	for _, t := range p.textures {
		t.Destroy()
	}
}

// draw a string, rendering and caching new glyphs as needed
func (p *printer) draw(r *sdl.Renderer, s string, x, y int32) {
	src := &sdl.Rect{W: p.w, H: p.h}
	dst := &sdl.Rect{X: x, Y: y, W: p.w, H: p.h}
	for _, c := range s {
		t, ok := p.textures[c]
		if !ok {
			var err error
			if t, err = p.renderGlyph(r, c); err != nil {
				log.Print(err)
			} else {
				p.textures[c] = t
			}
		}
		if t != nil {
			r.Copy(t, src, dst)
		}
		dst.X += p.w
	}
}

// render a texture for a glyph
func (p *printer) renderGlyph(r *sdl.Renderer, c rune) (*sdl.Texture, error) {
	s, err := p.font.RenderGlyphBlended(c, colorFg)
	if err != nil {
		return nil, err
	}
	defer s.Free()
	return r.CreateTextureFromSurface(s)
}

// return the size of a string if it were rendered
func (p *printer) size(s string) (int32, int32) {
	return int32(len(s)) * p.w, p.h
}
