package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarkers(t *testing.T) {
	t.Parallel()

	t.Run("parses all marker classes", func(t *testing.T) {
		t.Parallel()
		text := "blue,1.0,2.0\n" +
			"yellow,3.0,4.0\n" +
			"car_start,0.0,0.5\n" +
			"orange,5.0,6.0\n"
		markers := ParseMarkers(text)
		require.Len(t, markers, 4)
		assert.Equal(t, LeftBoundary, markers[0].Class)
		assert.Equal(t, RightBoundary, markers[1].Class)
		assert.Equal(t, StartPosition, markers[2].Class)
		assert.Equal(t, SectionBoundary, markers[3].Class)
		assert.Equal(t, 1.0, markers[0].X)
		assert.Equal(t, 2.0, markers[0].Y)
	})

	t.Run("tag matching is substring based", func(t *testing.T) {
		t.Parallel()
		markers := ParseMarkers("cone_blue_left,1,2\nbig_yellow,3,4\n")
		require.Len(t, markers, 2)
		assert.Equal(t, LeftBoundary, markers[0].Class)
		assert.Equal(t, RightBoundary, markers[1].Class)
	})

	t.Run("skips malformed lines silently", func(t *testing.T) {
		t.Parallel()
		text := "blue,1.0\n" + // too few fields
			"blue,abc,2.0\n" + // non-numeric x
			"blue,1.0,def\n" + // non-numeric y
			"purple,1.0,2.0\n" + // unknown tag
			"\n" +
			"blue,7.0,8.0\n" // valid
		markers := ParseMarkers(text)
		require.Len(t, markers, 1)
		assert.Equal(t, 7.0, markers[0].X)
	})

	t.Run("trailing fields are ignored", func(t *testing.T) {
		t.Parallel()
		markers := ParseMarkers("blue,1.0,2.0,99,extra,fields\n")
		require.Len(t, markers, 1)
		assert.Equal(t, 2.0, markers[0].Y)
	})

	t.Run("assigns unique identifiers", func(t *testing.T) {
		t.Parallel()
		markers := ParseMarkers("blue,1,2\nblue,3,4\n")
		require.Len(t, markers, 2)
		assert.NotEmpty(t, markers[0].ID)
		assert.NotEqual(t, markers[0].ID, markers[1].ID)
	})

	t.Run("empty input yields no markers", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, ParseMarkers(""))
	})
}
