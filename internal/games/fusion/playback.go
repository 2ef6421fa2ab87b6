package fusion

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/shape-fusion/internal/config"
	platformcore "github.com/vovakirdan/shape-fusion/internal/core"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion/core"
)

// segmentKind is one animated stretch of a move.
type segmentKind int

const (
	segPause    segmentKind = iota // Hold a board still
	segSlide                       // Horizontal move of the selected piece
	segTeleport                    // One teleport phase
	segFall                        // Pieces falling along their paths
	segFlash                       // Matched pieces flashing before removal
)

// segment is a stretch of playback with a fixed length in ticks.
type segment struct {
	kind   segmentKind
	before *core.Board // Board before the step
	after  *core.Board // Board after the step
	step   core.Step
	phase  core.TeleportPhase
	ticks  int
	easing ease.TweenFunc
}

// playback plays the steps of a resolved move back over several ticks.
// The session stays busy until playback is done.
type playback struct {
	segments []segment
	index    int
	elapsed  int
	tween    *gween.Tween
	progress float32 // 0..1 eased progress within the current segment
}

// newPlayback turns a resolution into timed segments. Zero-length segments are dropped,
// so with all delays at zero the playback is done immediately.
func newPlayback(res *core.Resolution, anim config.AnimationConfig, rt platformcore.RuntimeConfig, easing ease.TweenFunc) *playback {
	p := &playback{}
	add := func(s segment) {
		if s.ticks > 0 {
			if s.easing == nil {
				s.easing = ease.Linear
			}
			p.segments = append(p.segments, s)
		}
	}

	prev := res.Start
	for _, step := range res.Steps {
		switch step.Kind {
		case core.StepMove:
			add(segment{kind: segSlide, before: prev, after: step.Board, step: step,
				ticks: rt.TicksFor(anim.HorizontalDelay)})
		case core.StepTeleport:
			for _, phase := range core.TeleportPhases() {
				add(segment{kind: segTeleport, before: prev, after: step.Board, step: step,
					phase: phase, ticks: rt.TicksFor(anim.TeleportPhase)})
			}
		case core.StepGravity:
			dist := core.MaxFallDistance(step.FallPaths)
			add(segment{kind: segFall, before: prev, after: step.Board, step: step,
				ticks: rt.TicksFor(anim.FallDuration(dist)), easing: easing})
			add(segment{kind: segPause, before: step.Board, after: step.Board,
				ticks: rt.TicksFor(anim.SettleDelay)})
		case core.StepMatch:
			add(segment{kind: segFlash, before: prev, after: step.Board, step: step,
				ticks: rt.TicksFor(anim.MatchDuration)})
			add(segment{kind: segPause, before: step.Board, after: step.Board,
				ticks: rt.TicksFor(anim.CascadeDelay)})
		}
		prev = step.Board
	}
	return p
}

// done reports whether every segment has played.
func (p *playback) done() bool {
	return p.index >= len(p.segments)
}

// current returns the segment being played.
func (p *playback) current() (segment, bool) {
	if p.done() {
		return segment{}, false
	}
	return p.segments[p.index], true
}

// advance plays one tick and reports whether playback is done.
func (p *playback) advance() bool {
	seg, ok := p.current()
	if !ok {
		return true
	}
	if p.tween == nil {
		p.tween = gween.New(0, 1, float32(seg.ticks), seg.easing)
	}
	var finished bool
	p.progress, finished = p.tween.Update(1)
	p.elapsed++
	if finished {
		p.index++
		p.elapsed = 0
		p.progress = 0
		p.tween = nil
	}
	return p.done()
}

// overlay is a cell drawn on top of the board at a fractional position.
type overlay struct {
	row, col float64
	cell     core.Cell
	color    platformcore.Color
}

// frame is what the renderer draws for the current tick of playback.
type frame struct {
	board      *core.Board
	highlights map[core.Coord]platformcore.Color
	overlays   []overlay
}

// frame builds the picture for the current segment.
func (p *playback) frame() (frame, bool) {
	seg, ok := p.current()
	if !ok {
		return frame{}, false
	}
	t := float64(p.progress)

	switch seg.kind {
	case segSlide:
		b := seg.before.Clone()
		piece := b.Get(seg.step.From)
		b.SetEmpty(seg.step.From)
		col := lerp(float64(seg.step.From.Col), float64(seg.step.To.Col), t)
		return frame{board: b, overlays: []overlay{{
			row: float64(seg.step.From.Row), col: col, cell: piece, color: shapeColor(piece.Shape),
		}}}, true

	case segTeleport:
		tr := seg.step.Teleport
		if tr == nil {
			return frame{board: seg.after}, true
		}
		portal := core.PortalCell(tr.RemovedPortalID, "")
		switch seg.phase {
		case core.PhaseEnter:
			b := beforeTeleport(seg.before, tr)
			return frame{board: b, overlays: []overlay{
				{row: float64(tr.Entry.Row), col: float64(tr.Entry.Col), cell: tr.Piece, color: platformcore.ColorOrange},
			}}, true
		case core.PhaseConnect:
			b := beforeTeleport(seg.before, tr)
			return frame{board: b, overlays: []overlay{
				{row: float64(tr.Entry.Row), col: float64(tr.Entry.Col), cell: portal, color: platformcore.ColorBrightWhite},
				{row: float64(tr.Exit.Row), col: float64(tr.Exit.Col), cell: portal, color: platformcore.ColorBrightWhite},
			}}, true
		default:
			return frame{board: seg.after, highlights: map[core.Coord]platformcore.Color{
				tr.Exit: platformcore.ColorOrange,
			}}, true
		}

	case segFall:
		b := seg.after.Clone()
		overlays := make([]overlay, 0, len(seg.step.FallPaths))
		for _, fp := range seg.step.FallPaths {
			b.SetEmpty(fp.To)
			overlays = append(overlays, overlay{
				row:   lerp(float64(fp.From.Row), float64(fp.To.Row), t),
				col:   float64(fp.From.Col),
				cell:  fp.Piece,
				color: shapeColor(fp.Piece.Shape),
			})
		}
		return frame{board: b, overlays: overlays}, true

	case segFlash:
		hl := make(map[core.Coord]platformcore.Color)
		// Blink every few ticks
		color := platformcore.ColorBrightWhite
		if (p.elapsed/3)%2 == 1 {
			color = platformcore.ColorGray
		}
		for _, c := range core.MatchedCoords(seg.step.Matches) {
			hl[c] = color
		}
		return frame{board: seg.before, highlights: hl}, true

	default:
		return frame{board: seg.after}, true
	}
}

// beforeTeleport returns the board with the traveling piece lifted off. A direct move
// into a portal is already resolved in before, so the piece may sit on the exit.
func beforeTeleport(before *core.Board, tr *core.TeleportResult) *core.Board {
	b := before.Clone()
	for _, c := range []core.Coord{tr.From, tr.Exit} {
		if b.Get(c).ID == tr.Piece.ID {
			b.SetEmpty(c)
		}
	}
	return b
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// easingByName maps config names to easing functions. Unknown names fall back to OutQuad.
func easingByName(name string) ease.TweenFunc {
	switch name {
	case "linear":
		return ease.Linear
	case "in_quad":
		return ease.InQuad
	case "in_out_quad":
		return ease.InOutQuad
	case "out_cubic":
		return ease.OutCubic
	case "out_bounce":
		return ease.OutBounce
	default:
		return ease.OutQuad
	}
}
