// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package renderer

import "github.com/gogpu/gputypes"

// BlendMode is a Porter-Duff compositing operator on premultiplied colour.
type BlendMode uint8

// Porter-Duff operators. The zero value is BlendSourceOver.
const (
	BlendSourceOver BlendMode = iota
	BlendClear
	BlendSource
	BlendDestination
	BlendDestinationOver
	BlendSourceIn
	BlendDestinationIn
	BlendSourceOut
	BlendDestinationOut
	BlendSourceATop
	BlendDestinationATop
	BlendXor
	BlendPlus
)

var blendModeNames = [...]string{
	BlendSourceOver:      "SourceOver",
	BlendClear:           "Clear",
	BlendSource:          "Source",
	BlendDestination:     "Destination",
	BlendDestinationOver: "DestinationOver",
	BlendSourceIn:        "SourceIn",
	BlendDestinationIn:   "DestinationIn",
	BlendSourceOut:       "SourceOut",
	BlendDestinationOut:  "DestinationOut",
	BlendSourceATop:      "SourceATop",
	BlendDestinationATop: "DestinationATop",
	BlendXor:             "Xor",
	BlendPlus:            "Plus",
}

// String returns the name of the blend mode.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return "Unknown"
}

// ParseBlendMode returns the blend mode with the given name.
func ParseBlendMode(name string) (BlendMode, bool) {
	for i, n := range blendModeNames {
		if n == name {
			return BlendMode(i), true
		}
	}
	return BlendSourceOver, false
}

// Factors returns the source and destination factors of the operator: the
// result is src*Fs + dst*Fd with both operands premultiplied.
func (m BlendMode) Factors() (src, dst gputypes.BlendFactor) {
	const (
		zero   = gputypes.BlendFactorZero
		one    = gputypes.BlendFactorOne
		da     = gputypes.BlendFactorDstAlpha
		oneMDa = gputypes.BlendFactorOneMinusDstAlpha
		sa     = gputypes.BlendFactorSrcAlpha
		oneMSa = gputypes.BlendFactorOneMinusSrcAlpha
	)
	switch m {
	case BlendClear:
		return zero, zero
	case BlendSource:
		return one, zero
	case BlendDestination:
		return zero, one
	case BlendDestinationOver:
		return oneMDa, one
	case BlendSourceIn:
		return da, zero
	case BlendDestinationIn:
		return zero, sa
	case BlendSourceOut:
		return oneMDa, zero
	case BlendDestinationOut:
		return zero, oneMSa
	case BlendSourceATop:
		return da, oneMSa
	case BlendDestinationATop:
		return oneMDa, sa
	case BlendXor:
		return oneMDa, oneMSa
	case BlendPlus:
		return one, one
	default:
		return one, oneMSa
	}
}

// BlendState returns the pipeline blend state of the operator. Colour and
// alpha use the same factors.
func (m BlendMode) BlendState() gputypes.BlendState {
	src, dst := m.Factors()
	c := gputypes.BlendComponent{SrcFactor: src, DstFactor: dst, Operation: gputypes.BlendOperationAdd}
	return gputypes.BlendState{Color: c, Alpha: c}
}
