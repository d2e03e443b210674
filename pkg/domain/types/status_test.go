package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/pathfinder/pkg/domain/types"
)

func TestStatus_Difficulty(t *testing.T) {
	gt.S(t, types.StatusGreen.Difficulty()).Equal("Easy")
	gt.S(t, types.StatusAmber.Difficulty()).Equal("Medium")
	gt.S(t, types.StatusRed.Difficulty()).Equal("Hard")
	gt.S(t, types.Status("BLUE").Difficulty()).Equal("")
}

func TestAllStatuses(t *testing.T) {
	statuses := types.AllStatuses()
	gt.A(t, statuses).Length(3)
	for _, s := range statuses {
		gt.B(t, s.IsValid()).True()
	}
	gt.B(t, types.Status("").IsValid()).False()
}
