package ui

import (
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// tileSVG is the rounded-rect template every tile sprite is rasterized
// from. Rendering through the SVG path keeps the corners anti-aliased at
// any scale.
const tileSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
<rect x="0" y="0" width="100" height="100" rx="8" ry="8" fill="%s"/>
</svg>`

// tileColors maps a tile rank to its fill color, the classic 2048
// palette. Rank 0 is the empty-cell well; ranks past 11 share one dark
// fill.
var tileColors = [16]string{
	"#cdc1b4", // empty
	"#eee4da", // 2
	"#ede0c8", // 4
	"#f2b179", // 8
	"#f59563", // 16
	"#f67c5f", // 32
	"#f65e3b", // 64
	"#edcf72", // 128
	"#edcc61", // 256
	"#edc850", // 512
	"#edc53f", // 1024
	"#edc22e", // 2048
	"#3c3a32", // 4096
	"#3c3a32",
	"#3c3a32",
	"#3c3a32",
}

// SpriteManager rasterizes and caches the 16 tile sprites.
type SpriteManager struct {
	tiles       [16]*ebiten.Image
	size        int     // Display size in pixels
	renderScale float64 // Render at higher resolution for quality
}

// NewSpriteManager creates a sprite manager with tiles of the given
// size.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		size:        size,
		renderScale: 3.0, // Render at 3x resolution for sharp scaling
	}
	sm.loadTiles()
	return sm
}

// loadTiles renders every rank's sprite from the SVG template.
func (sm *SpriteManager) loadTiles() {
	renderSize := int(float64(sm.size) * sm.renderScale)

	for rank, fill := range tileColors {
		svg := fmt.Sprintf(tileSVG, fill)

		icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
		if err != nil {
			log.Printf("Failed to parse tile SVG for rank %d: %v", rank, err)
			continue
		}
		icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

		rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
		scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
		raster := rasterx.NewDasher(renderSize, renderSize, scanner)
		icon.Draw(raster, 1.0)

		sm.tiles[rank] = ebiten.NewImageFromImage(rgba)
	}
}

// DrawTileAt draws the sprite for a rank at the given pixel coordinates.
func (sm *SpriteManager) DrawTileAt(screen *ebiten.Image, rank, x, y int) {
	if rank < 0 || rank > 15 {
		return
	}
	sprite := sm.tiles[rank]
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	scale := 1.0 / sm.renderScale
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// Size returns the display size of tile sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}
