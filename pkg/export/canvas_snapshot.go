package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwestveld/newscanvas/pkg/geom"
	"github.com/mwestveld/newscanvas/pkg/layout"
	"github.com/mwestveld/newscanvas/pkg/model"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"
)

// SnapshotOptions controls canvas snapshot export behaviour.
type SnapshotOptions struct {
	Path   string             // Output path; format inferred from extension when Format empty
	Format string             // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Title  string             // Optional title rendered in summary block
	Nodes  []model.CanvasNode // Nodes to render
	Edges  []model.CanvasEdge // Edges between rendered nodes; dangling ends are skipped
	Result layout.Result      // Computed positions and group frames
}

// SaveCanvasSnapshot renders a static snapshot (SVG or PNG) of a laid-out
// canvas with a minimal summary block.
func SaveCanvasSnapshot(opts SnapshotOptions) error {
	if len(opts.Nodes) == 0 {
		return fmt.Errorf("no nodes to export")
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "svg" // safe default
			if opts.Path != "" && filepath.Ext(opts.Path) == "" {
				opts.Path = opts.Path + ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	sc := buildScene(opts)

	switch format {
	case "svg":
		return renderSVG(opts.Path, sc)
	case "png":
		return renderPNG(opts.Path, sc)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

// --- scene computation -----------------------------------------------------

type sceneNode struct {
	ID    string
	Label string
	Kind  model.NodeKind
	X, Y  float64 // top-left in image space
	W, H  float64
}

type sceneEdge struct {
	X1, Y1 float64
	X2, Y2 float64
}

type sceneGroup struct {
	Label string
	Color string // hex fill, e.g. "#2e86ab"
	X, Y  float64
	W, H  float64
}

type scene struct {
	Nodes   []sceneNode
	Edges   []sceneEdge
	Groups  []sceneGroup
	Width   int
	Height  int
	Header  float64
	Summary summaryInfo
}

type summaryInfo struct {
	Title      string
	NodeCount  int
	EdgeCount  int
	GroupCount int
}

const (
	scenePadding = 48.0
	headerHeight = 96.0
)

// buildScene translates world coordinates into image space: the world extent
// is shifted so its top-left corner lands just inside the padding, below the
// summary header.
func buildScene(opts SnapshotOptions) scene {
	pos := func(n model.CanvasNode) geom.Vec3 {
		if p, ok := opts.Result.Positions[n.ID]; ok {
			return p
		}
		return n.Position
	}

	minX, minY := pos(opts.Nodes[0]).X, pos(opts.Nodes[0]).Y
	maxX, maxY := minX, minY
	extend := func(x, y float64) {
		minX = min(minX, x)
		minY = min(minY, y)
		maxX = max(maxX, x)
		maxY = max(maxY, y)
	}
	for _, n := range opts.Nodes {
		p := pos(n)
		fp := n.Footprint()
		extend(p.X-fp.W/2, p.Y-fp.H/2)
		extend(p.X+fp.W/2, p.Y+fp.H/2)
	}
	for _, g := range opts.Result.Groups {
		extend(g.Bounds.X, g.Bounds.Y)
		extend(g.Bounds.X+g.Bounds.W, g.Bounds.Y+g.Bounds.H)
	}

	offX := scenePadding - minX
	offY := scenePadding + headerHeight - minY

	var sc scene
	for _, g := range opts.Result.Groups {
		sc.Groups = append(sc.Groups, sceneGroup{
			Label: g.Label,
			Color: g.Color,
			X:     g.Bounds.X + offX,
			Y:     g.Bounds.Y + offY,
			W:     g.Bounds.W,
			H:     g.Bounds.H,
		})
	}

	centers := make(map[string][2]float64, len(opts.Nodes))
	for _, n := range opts.Nodes {
		p := pos(n)
		fp := n.Footprint()
		cx, cy := p.X+offX, p.Y+offY
		centers[n.ID] = [2]float64{cx, cy}
		sc.Nodes = append(sc.Nodes, sceneNode{
			ID:    n.ID,
			Label: n.DisplayName(),
			Kind:  n.Kind,
			X:     cx - fp.W/2,
			Y:     cy - fp.H/2,
			W:     fp.W,
			H:     fp.H,
		})
	}

	for _, e := range opts.Edges {
		from, okF := centers[e.Source]
		to, okT := centers[e.Target]
		if !okF || !okT {
			continue
		}
		sc.Edges = append(sc.Edges, sceneEdge{
			X1: from[0], Y1: from[1],
			X2: to[0], Y2: to[1],
		})
	}

	sc.Width = int(maxX - minX + 2*scenePadding)
	sc.Height = int(maxY - minY + 2*scenePadding + headerHeight)
	if sc.Width < 640 {
		sc.Width = 640
	}
	if sc.Height < 480 {
		sc.Height = 480
	}
	sc.Header = headerHeight

	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = "Canvas Snapshot"
	}
	sc.Summary = summaryInfo{
		Title:      title,
		NodeCount:  len(sc.Nodes),
		EdgeCount:  len(sc.Edges),
		GroupCount: len(sc.Groups),
	}
	return sc
}

// --- rendering -------------------------------------------------------------

var (
	colorArticle   = color.RGBA{0xdb, 0xea, 0xfe, 0xff}
	colorNote      = color.RGBA{0xfe, 0xf3, 0xc7, 0xff}
	colorEntity    = color.RGBA{0xd1, 0xfa, 0xe5, 0xff}
	colorNarrative = color.RGBA{0xed, 0xe9, 0xfe, 0xff}
	colorClaim     = color.RGBA{0xff, 0xe4, 0xe6, 0xff}
	colorStroke    = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorEdge      = color.RGBA{0x94, 0xa3, 0xb8, 0xff}
	colorText      = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle    = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorBackdrop  = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorHeaderBG  = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
)

func kindColor(k model.NodeKind) color.RGBA {
	switch k {
	case model.KindArticle:
		return colorArticle
	case model.KindNote:
		return colorNote
	case model.KindEntity:
		return colorEntity
	case model.KindNarrative:
		return colorNarrative
	case model.KindClaim:
		return colorClaim
	default:
		return colorArticle
	}
}

func renderSVG(path string, sc scene) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return renderSVGToWriter(file, sc)
}

func renderSVGToWriter(w io.Writer, sc scene) error {
	canvas := svg.New(w)
	canvas.Start(sc.Width, sc.Height)
	canvas.Rect(0, 0, sc.Width, sc.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 16, sc.Width-32, int(sc.Header-24), 10, 10, fmt.Sprintf("fill:%s", css(colorHeaderBG)))

	drawSummaryBlockSVG(canvas, sc)

	for _, g := range sc.Groups {
		canvas.Roundrect(int(g.X), int(g.Y), int(g.W), int(g.H), 12, 12,
			fmt.Sprintf("fill:%s;fill-opacity:0.14;stroke:%s;stroke-width:1.5", g.Color, g.Color))
		canvas.Text(int(g.X)+14, int(g.Y)+26, g.Label,
			fmt.Sprintf("fill:%s;font-size:14px;font-family:monospace;font-weight:bold", css(colorText)))
	}

	for _, e := range sc.Edges {
		canvas.Line(int(e.X1), int(e.Y1), int(e.X2), int(e.Y2),
			fmt.Sprintf("stroke:%s;stroke-width:1.5", css(colorEdge)))
	}

	for _, n := range sc.Nodes {
		x, y := int(n.X), int(n.Y)
		canvas.Roundrect(x, y, int(n.W), int(n.H), 8, 8,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.2", css(kindColor(n.Kind)), css(colorStroke)))
		canvas.Text(x+10, y+22, truncate(n.Label, 28),
			fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace;font-weight:bold", css(colorText)))
		canvas.Text(x+10, y+40, string(n.Kind),
			fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace", css(colorSubtle)))
	}

	canvas.End()
	return nil
}

func renderPNG(path string, sc scene) error {
	dc := gg.NewContext(sc.Width, sc.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(16, 16, float64(sc.Width)-32, sc.Header-24, 10)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)

	drawSummaryBlock(dc, sc)

	for _, g := range sc.Groups {
		fill := parseHex(g.Color)
		fill.A = 0x24
		dc.SetColor(fill)
		dc.DrawRoundedRectangle(g.X, g.Y, g.W, g.H, 12)
		dc.Fill()
		dc.SetColor(parseHex(g.Color))
		dc.SetLineWidth(1.5)
		dc.DrawRoundedRectangle(g.X, g.Y, g.W, g.H, 12)
		dc.Stroke()
		dc.SetColor(colorText)
		dc.DrawStringAnchored(g.Label, g.X+14, g.Y+22, 0, 0.5)
	}

	dc.SetColor(colorEdge)
	dc.SetLineWidth(1.5)
	for _, e := range sc.Edges {
		dc.DrawLine(e.X1, e.Y1, e.X2, e.Y2)
		dc.Stroke()
	}

	for _, n := range sc.Nodes {
		dc.SetColor(kindColor(n.Kind))
		dc.DrawRoundedRectangle(n.X, n.Y, n.W, n.H, 8)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1.2)
		dc.DrawRoundedRectangle(n.X, n.Y, n.W, n.H, 8)
		dc.Stroke()

		dc.SetColor(colorText)
		dc.DrawStringAnchored(truncate(n.Label, 28), n.X+10, n.Y+18, 0, 0.5)
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(string(n.Kind), n.X+10, n.Y+36, 0, 0.5)
	}

	return dc.SavePNG(path)
}

func drawSummaryBlock(dc *gg.Context, sc scene) {
	dc.SetColor(colorText)
	dc.DrawStringAnchored(sc.Summary.Title, 32, 44, 0, 0.5)
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(fmt.Sprintf("nodes: %d  edges: %d  groups: %d",
		sc.Summary.NodeCount, sc.Summary.EdgeCount, sc.Summary.GroupCount), 32, 64, 0, 0.5)
}

func drawSummaryBlockSVG(canvas *svg.SVG, sc scene) {
	canvas.Text(32, 44, sc.Summary.Title,
		fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(32, 64, fmt.Sprintf("nodes: %d  edges: %d  groups: %d",
		sc.Summary.NodeCount, sc.Summary.EdgeCount, sc.Summary.GroupCount),
		fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))
}

// --- helpers ---------------------------------------------------------------

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func parseHex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return colorStroke
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return colorStroke
	}
	return color.RGBA{r, g, b, 0xff}
}
