package trackers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrackRejectsUnknownType(t *testing.T) {
	definer := NewDefiner()
	err := definer.Track("does_not_exist")
	require.ErrorIs(t, err, ErrUnknownTracker)
	require.Empty(t, definer.Specs())
}

func TestTrackValueShorthand(t *testing.T) {
	definer := NewDefiner()
	require.NoError(t, definer.Track("duration", "response_time"))

	specs := definer.Specs()
	require.Len(t, specs, 1)
	require.Equal(t, "duration", specs[0].Type)
	require.Equal(t, "response_time", specs[0].Options[OptionValue])
}

func TestTrackExplicitOptionsWinOverShorthand(t *testing.T) {
	definer := NewDefiner()
	require.NoError(t, definer.Track("duration", "shorthand", Options{
		OptionValue: "explicit",
		"title":     "Backend time",
	}))

	specs := definer.Specs()
	require.Len(t, specs, 1)
	require.Equal(t, "explicit", specs[0].Options[OptionValue])
	require.Equal(t, "Backend time", specs[0].Options["title"])
}

func TestTrackRejectsUnsupportedArgument(t *testing.T) {
	definer := NewDefiner()
	err := definer.Track("duration", 42)
	require.Error(t, err)
	require.Empty(t, definer.Specs())
}

func TestResetEmptiesTheList(t *testing.T) {
	definer := NewDefiner()
	require.NoError(t, definer.Track("duration"))
	require.NoError(t, definer.Track("frequency", "method"))

	definer.Reset()
	require.Empty(t, definer.Specs())
}

func TestCloneIsIndependent(t *testing.T) {
	definer := NewDefiner()
	require.NoError(t, definer.Track("duration", Options{"title": "original"}))

	clone := definer.Clone()
	require.NoError(t, clone.Track("frequency", "method"))
	clone.Specs()[0].Options["title"] = "changed"

	require.Len(t, definer.Specs(), 1)
	require.Len(t, clone.Specs(), 2)
	require.Equal(t, "original", definer.Specs()[0].Options["title"])
}

func TestInstantiatePreservesOrder(t *testing.T) {
	definer := NewDefiner()
	require.NoError(t, definer.Track("timespan"))
	require.NoError(t, definer.Track("duration", "duration"))
	require.NoError(t, definer.Track("frequency", "method"))

	instances, err := definer.Instantiate()
	require.NoError(t, err)
	require.Len(t, instances, 3)
	require.IsType(t, &TimespanTracker{}, instances[0])
	require.IsType(t, &DurationTracker{}, instances[1])
	require.IsType(t, &FrequencyTracker{}, instances[2])
}

func TestRegistryGuards(t *testing.T) {
	require.Panics(t, func() { Register("", nil) })
	require.Panics(t, func() { Register("guarded", nil) })
	require.Panics(t, func() { Register("duration", newDurationTracker) })

	_, err := Instantiate("missing", nil)
	require.ErrorIs(t, err, ErrUnknownTracker)

	ids := RegisteredIDs()
	require.Contains(t, ids, "duration")
	require.Contains(t, ids, "frequency")
	require.Contains(t, ids, "hourly_spread")
	require.Contains(t, ids, "timespan")
	require.Contains(t, ids, "traffic")
}
