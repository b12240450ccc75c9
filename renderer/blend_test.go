// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package renderer

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestBlendModeSourceOverIsPremultiplied(t *testing.T) {
	if got, want := BlendSourceOver.BlendState(), gputypes.BlendStatePremultiplied(); got != want {
		t.Errorf("SourceOver BlendState() = %+v, want %+v", got, want)
	}
	if got, want := BlendSource.BlendState(), gputypes.BlendStateReplace(); got != want {
		t.Errorf("Source BlendState() = %+v, want %+v", got, want)
	}
}

func TestBlendModeFactors(t *testing.T) {
	tests := []struct {
		mode     BlendMode
		src, dst gputypes.BlendFactor
	}{
		{BlendClear, gputypes.BlendFactorZero, gputypes.BlendFactorZero},
		{BlendDestination, gputypes.BlendFactorZero, gputypes.BlendFactorOne},
		{BlendDestinationOver, gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorOne},
		{BlendSourceIn, gputypes.BlendFactorDstAlpha, gputypes.BlendFactorZero},
		{BlendXor, gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorOneMinusSrcAlpha},
		{BlendPlus, gputypes.BlendFactorOne, gputypes.BlendFactorOne},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			src, dst := tt.mode.Factors()
			if src != tt.src || dst != tt.dst {
				t.Errorf("Factors() = (%v, %v), want (%v, %v)", src, dst, tt.src, tt.dst)
			}
		})
	}
}

func TestParseBlendMode(t *testing.T) {
	for m := BlendSourceOver; m <= BlendPlus; m++ {
		got, ok := ParseBlendMode(m.String())
		if !ok || got != m {
			t.Errorf("ParseBlendMode(%q) = %v, %v", m.String(), got, ok)
		}
	}
	if _, ok := ParseBlendMode("Multiply"); ok {
		t.Error("ParseBlendMode accepted an unknown name")
	}
}
