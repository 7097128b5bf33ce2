package texmorph

// LayoutStyle controls how BuildExpression turns group texts into nodes.
type LayoutStyle struct {
	GlyphWidth  float64 // width of one character
	GlyphHeight float64 // height of every group
	Gap         float64 // horizontal space between groups
	Palette     []Color // group colors, cycled by group index
}

// DefaultLayoutStyle is a readable style for previews.
func DefaultLayoutStyle() LayoutStyle {
	return LayoutStyle{
		GlyphWidth:  14,
		GlyphHeight: 24,
		Gap:         6,
		Palette: []Color{
			{R: 0.40, G: 0.80, B: 1.00, A: 1},
			{R: 1.00, G: 0.60, B: 0.20, A: 1},
			{R: 0.60, G: 1.00, B: 0.40, A: 1},
			{R: 0.90, G: 0.90, B: 0.30, A: 1},
			{R: 1.00, G: 0.40, B: 0.70, A: 1},
		},
	}
}

// BuildExpression lays the group texts out left to right, each group sized
// by its character count and positioned at its centre, under a new container
// named name. The row is centred on the container's origin.
func BuildExpression(name string, texts []string, style LayoutStyle) (*Expression, *Node) {
	root := NewContainer(name)
	expr := &Expression{Root: root, Groups: make([]Group, 0, len(texts))}

	widths := make([]float64, len(texts))
	total := 0.0
	for i, text := range texts {
		widths[i] = float64(max(GraphemeCount(text), 1)) * style.GlyphWidth
		total += widths[i]
	}
	if len(texts) > 1 {
		total += style.Gap * float64(len(texts)-1)
	}

	x := -total / 2
	for i, text := range texts {
		g := NewGroupNode(text, text, widths[i], style.GlyphHeight)
		if len(style.Palette) > 0 {
			g.Color = style.Palette[i%len(style.Palette)]
		}
		g.SetPosition(x+widths[i]/2, 0)
		root.AddChild(g)
		expr.Groups = append(expr.Groups, g)
		x += widths[i] + style.Gap
	}
	return expr, root
}
