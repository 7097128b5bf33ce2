package texmorph

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image scaled into every group quad. Created on
// first draw so importing the package never touches the graphics driver.
var whitePixel *ebiten.Image

func whitePixelImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// Draw refreshes world transforms and renders every visible group node as a
// tinted quad centred on its position.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	screen.Fill(s.ClearColor.toRGBA())
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	quads := s.drawNode(screen, s.root)

	if s.debug {
		s.debugLog(debugStats{
			updateTime:  s.lastUpdate,
			drawTime:    time.Since(t0),
			activeCount: len(s.morphs),
			quadCount:   quads,
		})
	}
	s.writeCaptures(screen)
}

func (s *Scene) drawNode(dst *ebiten.Image, n *Node) int {
	if !n.Visible {
		return 0
	}
	count := 0
	if n.Type == NodeTypeGroup && n.worldAlpha > 0 && n.Width > 0 && n.Height > 0 {
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(-0.5, -0.5)
		op.GeoM.Scale(n.Width, n.Height)
		op.GeoM.Concat(geoMOf(n.worldTransform))
		a := n.Color.A * n.worldAlpha
		op.ColorScale.Scale(float32(n.Color.R*a), float32(n.Color.G*a), float32(n.Color.B*a), float32(a))
		dst.DrawImage(whitePixelImage(), &op)
		count++
	}
	for _, child := range n.children {
		count += s.drawNode(dst, child)
	}
	return count
}

// geoMOf converts an affine matrix to an ebiten.GeoM.
func geoMOf(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
