package gui

import "github.com/tanema/gween/ease"

// Easing selects the interpolation curve of an animation.
type Easing uint8

const (
	EaseLinear Easing = iota
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseOutInQuad
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
	EaseOutInCubic
	EaseInQuart
	EaseOutQuart
	EaseInOutQuart
	EaseOutInQuart
	EaseInQuint
	EaseOutQuint
	EaseInOutQuint
	EaseOutInQuint
	EaseInSine
	EaseOutSine
	EaseInOutSine
	EaseOutInSine
	EaseInExpo
	EaseOutExpo
	EaseInOutExpo
	EaseOutInExpo
	EaseInCirc
	EaseOutCirc
	EaseInOutCirc
	EaseOutInCirc
	EaseInElastic
	EaseOutElastic
	EaseInOutElastic
	EaseOutInElastic
	EaseInBack
	EaseOutBack
	EaseInOutBack
	EaseOutInBack
	EaseInBounce
	EaseOutBounce
	EaseInOutBounce
	EaseOutInBounce
	easingCount
)

var easingFuncs = [easingCount]ease.TweenFunc{
	EaseLinear:       ease.Linear,
	EaseInQuad:       ease.InQuad,
	EaseOutQuad:      ease.OutQuad,
	EaseInOutQuad:    ease.InOutQuad,
	EaseOutInQuad:    ease.OutInQuad,
	EaseInCubic:      ease.InCubic,
	EaseOutCubic:     ease.OutCubic,
	EaseInOutCubic:   ease.InOutCubic,
	EaseOutInCubic:   ease.OutInCubic,
	EaseInQuart:      ease.InQuart,
	EaseOutQuart:     ease.OutQuart,
	EaseInOutQuart:   ease.InOutQuart,
	EaseOutInQuart:   ease.OutInQuart,
	EaseInQuint:      ease.InQuint,
	EaseOutQuint:     ease.OutQuint,
	EaseInOutQuint:   ease.InOutQuint,
	EaseOutInQuint:   ease.OutInQuint,
	EaseInSine:       ease.InSine,
	EaseOutSine:      ease.OutSine,
	EaseInOutSine:    ease.InOutSine,
	EaseOutInSine:    ease.OutInSine,
	EaseInExpo:       ease.InExpo,
	EaseOutExpo:      ease.OutExpo,
	EaseInOutExpo:    ease.InOutExpo,
	EaseOutInExpo:    ease.OutInExpo,
	EaseInCirc:       ease.InCirc,
	EaseOutCirc:      ease.OutCirc,
	EaseInOutCirc:    ease.InOutCirc,
	EaseOutInCirc:    ease.OutInCirc,
	EaseInElastic:    ease.InElastic,
	EaseOutElastic:   ease.OutElastic,
	EaseInOutElastic: ease.InOutElastic,
	EaseOutInElastic: ease.OutInElastic,
	EaseInBack:       ease.InBack,
	EaseOutBack:      ease.OutBack,
	EaseInOutBack:    ease.InOutBack,
	EaseOutInBack:    ease.OutInBack,
	EaseInBounce:     ease.InBounce,
	EaseOutBounce:    ease.OutBounce,
	EaseInOutBounce:  ease.InOutBounce,
	EaseOutInBounce:  ease.OutInBounce,
}

// Func returns the gween curve for e. Unknown values fall back to linear.
func (e Easing) Func() ease.TweenFunc {
	if e >= easingCount {
		return ease.Linear
	}
	return easingFuncs[e]
}

// Eval maps a normalized time in [0, 1] through the curve.
func (e Easing) Eval(t float32) float32 {
	return e.Func()(t, 0, 1, 1)
}
