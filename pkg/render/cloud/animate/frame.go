package animate

import "math"

// Frame is the visual state of one word at one instant. X and Y are the
// word's center in inner-frame coordinates.
type Frame struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FontSize float64 `json:"font_size"`
	Opacity  float64 `json:"opacity"`
}

// Lerp interpolates every field of a frame. t is clamped to [0, 1].
func Lerp(from, to Frame, t float64) Frame {
	t = math.Max(0, math.Min(1, t))
	return Frame{
		X:        from.X + (to.X-from.X)*t,
		Y:        from.Y + (to.Y-from.Y)*t,
		FontSize: from.FontSize + (to.FontSize-from.FontSize)*t,
		Opacity:  from.Opacity + (to.Opacity-from.Opacity)*t,
	}
}

// Ease maps linear progress in [0, 1] to eased progress in [0, 1].
type Ease func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// CubicInOut accelerates through the first half and decelerates through the
// second.
func CubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}
