// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
)

// stencilCompare applies the stencil test: the reference is the left operand,
// so CompareFunctionLess passes where ref < stored. An undefined function
// always passes.
func stencilCompare(fn gputypes.CompareFunction, ref, stored uint8) bool {
	switch fn {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return ref < stored
	case gputypes.CompareFunctionEqual:
		return ref == stored
	case gputypes.CompareFunctionLessEqual:
		return ref <= stored
	case gputypes.CompareFunctionGreater:
		return ref > stored
	case gputypes.CompareFunctionNotEqual:
		return ref != stored
	case gputypes.CompareFunctionGreaterEqual:
		return ref >= stored
	default:
		return true
	}
}

// stencilOp returns the new stencil value before the write mask is applied.
func stencilOp(op gputypes.StencilOperation, stored, ref uint8) uint8 {
	switch op {
	case gputypes.StencilOperationZero:
		return 0
	case gputypes.StencilOperationReplace:
		return ref
	case gputypes.StencilOperationInvert:
		return ^stored
	case gputypes.StencilOperationIncrementClamp:
		if stored == 0xFF {
			return stored
		}
		return stored + 1
	case gputypes.StencilOperationDecrementClamp:
		if stored == 0 {
			return stored
		}
		return stored - 1
	case gputypes.StencilOperationIncrementWrap:
		return stored + 1
	case gputypes.StencilOperationDecrementWrap:
		return stored - 1
	default:
		return stored
	}
}

// blendPixel blends a premultiplied source over dst with the pipeline blend
// state. Partial coverage mixes the blended result with dst the way an MSAA
// resolve does.
func blendPixel(state gputypes.BlendState, src, dst [4]float32, coverage float32) [4]float32 {
	var out [4]float32
	for c := range out {
		comp := state.Color
		if c == 3 {
			comp = state.Alpha
		}
		fs := blendFactor(comp.SrcFactor, gputypes.BlendFactorOne, src, dst, c)
		fd := blendFactor(comp.DstFactor, gputypes.BlendFactorZero, src, dst, c)
		v := blendOperation(comp.Operation, src[c], fs, dst[c], fd)
		out[c] = dst[c] + (v-dst[c])*coverage
	}
	return out
}

func blendFactor(f, undefined gputypes.BlendFactor, src, dst [4]float32, c int) float32 {
	if f == gputypes.BlendFactorUndefined {
		f = undefined
	}
	switch f {
	case gputypes.BlendFactorZero:
		return 0
	case gputypes.BlendFactorOne:
		return 1
	case gputypes.BlendFactorSrc:
		return src[c]
	case gputypes.BlendFactorOneMinusSrc:
		return 1 - src[c]
	case gputypes.BlendFactorSrcAlpha:
		return src[3]
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return 1 - src[3]
	case gputypes.BlendFactorDst:
		return dst[c]
	case gputypes.BlendFactorOneMinusDst:
		return 1 - dst[c]
	case gputypes.BlendFactorDstAlpha:
		return dst[3]
	case gputypes.BlendFactorOneMinusDstAlpha:
		return 1 - dst[3]
	case gputypes.BlendFactorSrcAlphaSaturated:
		if c == 3 {
			return 1
		}
		return math32.Min(src[3], 1-dst[3])
	case gputypes.BlendFactorOneMinusConstant:
		// The blend constant is never set and defaults to zero.
		return 1
	default:
		return 0
	}
}

func blendOperation(op gputypes.BlendOperation, s, fs, d, fd float32) float32 {
	switch op {
	case gputypes.BlendOperationSubtract:
		return s*fs - d*fd
	case gputypes.BlendOperationReverseSubtract:
		return d*fd - s*fs
	case gputypes.BlendOperationMin:
		return math32.Min(s, d)
	case gputypes.BlendOperationMax:
		return math32.Max(s, d)
	default:
		return s*fs + d*fd
	}
}
