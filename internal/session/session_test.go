package session

import (
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/palette-tools-mcp/internal/colour"
	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
	"github.com/ironsheep/palette-tools-mcp/internal/palette"
)

// quadrantSurface is 20x20: red top-left, green top-right, blue bottom-left,
// white bottom-right.
func quadrantSurface() *imaging.Surface {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			var c color.RGBA
			switch {
			case x < 10 && y < 10:
				c = color.RGBA{255, 0, 0, 255}
			case y < 10:
				c = color.RGBA{0, 255, 0, 255}
			case x < 10:
				c = color.RGBA{0, 0, 255, 255}
			default:
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return imaging.NewSurface(img)
}

var fullRect = imaging.DisplayRect{Width: 20, Height: 20}

func TestNew(t *testing.T) {
	s := New("#3b82f6", palette.Complementary)
	assert.Equal(t, "#3b82f6", s.Base())
	assert.Equal(t, palette.Complementary, s.Scheme())
	assert.Equal(t, []string{"#3b82f6", "#f6af3b"}, s.Palette())
	assert.Nil(t, s.Surface())
	assert.Empty(t, s.Picked())
}

func TestSetBase(t *testing.T) {
	s := New("#3b82f6", palette.Triadic)

	require.NoError(t, s.SetBase("ff0000"))
	assert.Equal(t, "ff0000", s.Base())

	err := s.SetBase("#zzzzzz")
	assert.ErrorIs(t, err, colour.ErrInvalidFormat)
	assert.Equal(t, "ff0000", s.Base(), "rejected base must not replace the previous one")
}

func TestPaletteFollowsScheme(t *testing.T) {
	s := New("#3b82f6", palette.Complementary)
	s.SetScheme(palette.Monochromatic)

	assert.Equal(t, []string{"#cddffd", "#84b1f9", "#3b82f6", "#0a59da", "#073b91"}, s.Palette())
}

func TestPaletteIsFreshEachCall(t *testing.T) {
	s := New("#3b82f6", palette.Analogous)
	p := s.Palette()
	p[0] = "#000000"
	assert.Equal(t, "#3b82f6", s.Palette()[0])
}

func TestPickWithoutSurface(t *testing.T) {
	s := New("#3b82f6", palette.Complementary)

	_, ok := s.Pick(fullRect, 5, 5)
	assert.False(t, ok)
	assert.Equal(t, "#3b82f6", s.Base())
	assert.Empty(t, s.Picked())

	_, ok = s.Peek(fullRect, 5, 5)
	assert.False(t, ok)
}

func TestPickRecordsAndSetsBase(t *testing.T) {
	s := New("#3b82f6", palette.Complementary)
	s.LoadSurface(quadrantSurface())

	first, ok := s.Pick(fullRect, 2, 2)
	require.True(t, ok)
	assert.Equal(t, "#ff0000", first.Hex)
	assert.Equal(t, "#ff0000", s.Base())

	second, ok := s.Pick(fullRect, 15, 15)
	require.True(t, ok)
	assert.Equal(t, "#ffffff", second.Hex)

	picked := s.Picked()
	require.Len(t, picked, 2)
	assert.Equal(t, first, picked[0])
	assert.Equal(t, second, picked[1])
	assert.Equal(t, "#ffffff", s.Base())
}

func TestPeekDoesNotRecord(t *testing.T) {
	s := New("#3b82f6", palette.Complementary)
	s.LoadSurface(quadrantSurface())

	c, ok := s.Peek(fullRect, 15, 2)
	require.True(t, ok)
	assert.Equal(t, "#00ff00", c.Hex)
	assert.Empty(t, s.Picked())
	assert.Equal(t, "#3b82f6", s.Base())
}

func TestPickedReturnsCopy(t *testing.T) {
	s := New("#3b82f6", palette.Complementary)
	s.LoadSurface(quadrantSurface())
	_, ok := s.Pick(fullRect, 2, 2)
	require.True(t, ok)

	got := s.Picked()
	got[0].Hex = "#123456"
	assert.Equal(t, "#ff0000", s.Picked()[0].Hex)
}

func TestRemovePicked(t *testing.T) {
	s := New("#3b82f6", palette.Complementary)
	s.LoadSurface(quadrantSurface())
	for _, p := range [][2]float64{{2, 2}, {15, 2}, {2, 15}} {
		_, ok := s.Pick(fullRect, p[0], p[1])
		require.True(t, ok)
	}

	require.NoError(t, s.RemovePicked(1))
	picked := s.Picked()
	require.Len(t, picked, 2)
	assert.Equal(t, "#ff0000", picked[0].Hex)
	assert.Equal(t, "#0000ff", picked[1].Hex)

	for _, i := range []int{-1, 2, 99} {
		assert.ErrorIs(t, s.RemovePicked(i), ErrIndexOutOfRange)
	}
	assert.Len(t, s.Picked(), 2)
}

func TestUsePicked(t *testing.T) {
	s := New("#3b82f6", palette.Complementary)
	s.LoadSurface(quadrantSurface())
	_, ok := s.Pick(fullRect, 2, 2)
	require.True(t, ok)
	_, ok = s.Pick(fullRect, 15, 2)
	require.True(t, ok)

	c, err := s.UsePicked(0)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", c.Hex)
	assert.Equal(t, "#ff0000", s.Base())
	assert.Len(t, s.Picked(), 2, "using a colour keeps it in the list")

	_, err = s.UsePicked(2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestLoadSurfaceClearsPicked(t *testing.T) {
	s := New("#3b82f6", palette.Complementary)
	s.LoadSurface(quadrantSurface())
	_, ok := s.Pick(fullRect, 2, 2)
	require.True(t, ok)

	s.LoadSurface(quadrantSurface())
	assert.Empty(t, s.Picked())
	assert.Equal(t, "#ff0000", s.Base(), "base survives an image change")

	s.ClearSurface()
	assert.Nil(t, s.Surface())
	_, ok = s.Pick(fullRect, 2, 2)
	assert.False(t, ok)
}

func TestApplyPreset(t *testing.T) {
	s := New("#3b82f6", palette.Complementary)

	p, err := s.ApplyPreset("forest")
	require.NoError(t, err)
	assert.Equal(t, "Forest", p.Name)
	assert.Equal(t, "#10b981", s.Base())
	assert.Equal(t, palette.Monochromatic, s.Scheme())

	_, err = s.ApplyPreset("no such preset")
	assert.ErrorIs(t, err, ErrUnknownPreset)
	assert.Equal(t, "#10b981", s.Base())
}

func TestSnapshot(t *testing.T) {
	s := New("#3b82f6", palette.Complementary)

	st := s.Snapshot()
	assert.Equal(t, "#3b82f6", st.Base)
	assert.Equal(t, palette.Complementary, st.Scheme)
	assert.Equal(t, []string{"#3b82f6", "#f6af3b"}, st.Palette)
	assert.Nil(t, st.Surface)
	assert.Zero(t, st.PickedCount)

	s.LoadSurface(quadrantSurface())
	_, ok := s.Pick(fullRect, 2, 2)
	require.True(t, ok)

	st = s.Snapshot()
	require.NotNil(t, st.Surface)
	assert.Equal(t, imaging.Dimensions{Width: 20, Height: 20}, *st.Surface)
	assert.Equal(t, 1, st.PickedCount)
}

func TestConcurrentPicks(t *testing.T) {
	s := New("#3b82f6", palette.Complementary)
	s.LoadSurface(quadrantSurface())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Pick(fullRect, float64(i), float64(i))
			_ = s.Palette()
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Picked(), 20)
}
