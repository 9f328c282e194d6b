package main

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"

	"github.com/gogpu/softwin"
)

var palette = []gg.RGBA{
	{R: 0.93, G: 0.33, B: 0.31, A: 1},
	{R: 0.98, G: 0.69, B: 0.25, A: 1},
	{R: 0.99, G: 0.91, B: 0.38, A: 1},
	{R: 0.40, G: 0.80, B: 0.45, A: 1},
	{R: 0.29, G: 0.56, B: 0.89, A: 1},
	{R: 0.61, G: 0.42, B: 0.83, A: 0.8},
}

// drawScene returns the draw callback for time t, in seconds.
//
// The left quarter of the frame is never painted, so it shows the
// presentation of fully transparent pixels.
func drawScene(t float64) func(*softwin.Scene) {
	return func(s *softwin.Scene) {
		w, h := float32(s.Width()), float32(s.Height())
		if w == 0 || h == 0 {
			return
		}
		left := w / 4

		s.Fill(scene.FillNonZero, scene.IdentityAffine(),
			scene.SolidBrush(gg.RGBA{R: 0.08, G: 0.09, B: 0.12, A: 1}),
			scene.NewRectShape(left, 0, w-left, h))

		cx, cy := left+(w-left)/2, h/2
		radius := min(w-left, h) / 2

		for i, c := range palette {
			a := t + float64(i)*2*math.Pi/float64(len(palette))
			x := cx + 0.65*radius*float32(math.Cos(a))
			y := cy + 0.65*radius*float32(math.Sin(a))
			s.Fill(scene.FillNonZero, scene.IdentityAffine(),
				scene.SolidBrush(c), scene.NewCircleShape(x, y, radius*0.14))
		}

		spin := scene.TranslateAffine(cx, cy).Multiply(scene.RotateAffine(float32(t * 0.7)))
		s.Fill(scene.FillNonZero, spin,
			scene.SolidBrush(gg.RGBA{R: 1, G: 1, B: 1, A: 0.9}),
			scene.NewStarShape(0, 0, radius*0.32, radius*0.13, 5, 0))

		s.Stroke(&scene.StrokeStyle{Width: 3, MiterLimit: 4, Cap: scene.LineCapRound, Join: scene.LineJoinRound},
			scene.IdentityAffine(),
			scene.SolidBrush(gg.RGBA{R: 0.5, G: 0.55, B: 0.6, A: 1}),
			scene.NewRoundedRectShape(left+8, 8, w-left-16, h-16, 12))
	}
}
