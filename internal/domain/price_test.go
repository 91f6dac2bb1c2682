package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canchub/court-booking-service/pkg/types"
)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func priceRule(start, end string, price float64) *PriceRule {
	return &PriceRule{
		CourtID:      5,
		Weekday:      0,
		StartTime:    ts(start),
		EndTime:      ts(end),
		PricePerSlot: price,
	}
}

func TestPriceWindow_SingleRule(t *testing.T) {
	rule := mondayRule(60)
	prices := []*PriceRule{priceRule("07:00", "23:00", 20)}

	total, err := PriceWindow(rule, prices, NewWindow(monday(10, 0), monday(12, 0)))
	require.NoError(t, err)
	assert.Equal(t, 40.0, total)
}

func TestPriceWindow_TieredRules(t *testing.T) {
	rule := mondayRule(30)
	prices := []*PriceRule{
		priceRule("07:00", "17:00", 10),
		priceRule("17:00", "23:00", 17.5),
	}

	// 16:00-18:00: два слота по 10 + два по 17.5
	total, err := PriceWindow(rule, prices, NewWindow(monday(16, 0), monday(18, 0)))
	require.NoError(t, err)
	assert.Equal(t, 55.0, total)
}

func TestPriceWindow_Gap(t *testing.T) {
	rule := mondayRule(60)
	prices := []*PriceRule{priceRule("07:00", "12:00", 10)}

	_, err := PriceWindow(rule, prices, NewWindow(monday(11, 0), monday(13, 0)))
	require.ErrorIs(t, err, ErrPricingGap)
}

func TestPriceWindow_SlotStraddlesRuleBoundary(t *testing.T) {
	rule := mondayRule(60)
	prices := []*PriceRule{
		priceRule("07:00", "10:30", 10),
		priceRule("10:30", "23:00", 15),
	}

	// слот 10:00-11:00 не покрыт целиком ни одним правилом
	_, err := PriceWindow(rule, prices, NewWindow(monday(10, 0), monday(11, 0)))
	require.ErrorIs(t, err, ErrPricingGap)
}

func TestPriceWindow_NoSchedule(t *testing.T) {
	_, err := PriceWindow(nil, nil, NewWindow(monday(10, 0), monday(11, 0)))
	require.ErrorIs(t, err, ErrNoScheduleForDay)
}

func TestPriceWindow_Rounding(t *testing.T) {
	rule := mondayRule(30)
	prices := []*PriceRule{priceRule("07:00", "23:00", 10.333)}

	total, err := PriceWindow(rule, prices, NewWindow(monday(10, 0), monday(11, 30)))
	require.NoError(t, err)
	assert.Equal(t, 31.0, total) // 30.999 -> 31.00
}

func TestRound2(t *testing.T) {
	// 10.125 точно представимо в double: половина округляется вверх
	assert.Equal(t, 10.13, Round2(10.125))
	assert.Equal(t, 10.35, Round2(10.346))
	assert.Equal(t, 10.34, Round2(10.344))
	assert.Equal(t, 31.0, Round2(30.999))
	assert.Equal(t, 0.0, Round2(0))
}

func TestTimeRangesOverlap(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd string
		bStart, bEnd string
		want         bool
	}{
		{"overlapping", "10:00", "12:00", "11:00", "13:00", true},
		{"contained", "10:00", "14:00", "11:00", "12:00", true},
		{"touching", "10:00", "12:00", "12:00", "14:00", false},
		{"disjoint", "10:00", "11:00", "12:00", "13:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeRangesOverlap(ts(tt.aStart), ts(tt.aEnd), ts(tt.bStart), ts(tt.bEnd))
			assert.Equal(t, tt.want, got)
			// симметричность
			gotRev := TimeRangesOverlap(ts(tt.bStart), ts(tt.bEnd), ts(tt.aStart), ts(tt.aEnd))
			assert.Equal(t, tt.want, gotRev)
		})
	}
}
