package overlay

import (
	"image/color"
	"testing"

	"loot-lens/internal/settings"
	"loot-lens/internal/verdict"
)

func testContent() Content {
	return Content{
		Title:        "Rusted Gear",
		NeededLines:  []string{"3x Expedition"},
		HasNeeded:    true,
		VerdictLabel: "Suggested action: (When Tasks done)",
		VerdictText:  verdict.Recycle,
		Verdict:      verdict.Recycle,
		RecycleLines: []string{"2x Scrap Metal"},
		SalvageLines: []string{"Cannot be salvaged"},
		RecGain:      "+25%",
		SellGain:     "-",
		SellPrice:    "40",
	}
}

// TestRenderProducesImage verifies the panel renders with sane
// dimensions and rounded transparent corners.
func TestRenderProducesImage(t *testing.T) {
	st := StyleFromSettings(settings.Default())

	img, err := Render(testContent(), st, false)
	if err != nil {
		t.Fatal(err)
	}

	b := img.Bounds()
	if b.Dx() <= 2*padding || b.Dy() <= 2*padding {
		t.Fatalf("image %dx%d too small", b.Dx(), b.Dy())
	}

	// Outside the corner radius nothing is drawn.
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("top-left corner pixel not transparent")
	}
	// The panel background reaches the edge midpoints.
	if _, _, _, a := img.At(b.Dx()/2, 0).RGBA(); a == 0 {
		t.Error("top edge midpoint not painted")
	}
}

// TestRenderPercentSecondColumnShorter verifies the compact variant
// trades width for height.
func TestRenderPercentSecondColumnShorter(t *testing.T) {
	st := StyleFromSettings(settings.Default())
	c := testContent()

	full, err := Render(c, st, false)
	if err != nil {
		t.Fatal(err)
	}
	compact, err := Render(c, st, true)
	if err != nil {
		t.Fatal(err)
	}

	if compact.Bounds().Dy() >= full.Bounds().Dy() {
		t.Errorf("compact height %d not below full height %d",
			compact.Bounds().Dy(), full.Bounds().Dy())
	}
}

// TestRenderColumnsWiden verifies extended columns grow the panel
// horizontally.
func TestRenderColumnsWiden(t *testing.T) {
	st := StyleFromSettings(settings.Default())
	c := testContent()

	plain, err := Render(c, st, false)
	if err != nil {
		t.Fatal(err)
	}

	c.ReverseRecycle = []string{"12x Rubber", "3-9x Anvil"}
	withCols, err := Render(c, st, false)
	if err != nil {
		t.Fatal(err)
	}

	if withCols.Bounds().Dx() <= plain.Bounds().Dx() {
		t.Errorf("column variant width %d not above plain width %d",
			withCols.Bounds().Dx(), plain.Bounds().Dx())
	}
}

// TestStyleFromSettingsFallbacks verifies broken color strings fall
// back to the built-in palette.
func TestStyleFromSettingsFallbacks(t *testing.T) {
	s := settings.Default()
	s.KeepColor = "not-a-color"

	st := StyleFromSettings(s)
	if st.KeepColor != (color.RGBA{255, 40, 40, 255}) {
		t.Errorf("KeepColor = %v, want fallback", st.KeepColor)
	}
}

// TestImageCache verifies Put/Get/Clear round trips.
func TestImageCache(t *testing.T) {
	cache := NewImageCache()

	if _, ok := cache.Get("k"); ok {
		t.Fatal("empty cache returned a hit")
	}

	st := StyleFromSettings(settings.Default())
	img, err := Render(testContent(), st, false)
	if err != nil {
		t.Fatal(err)
	}

	cache.Put("k", img)
	if got, ok := cache.Get("k"); !ok || got != img {
		t.Error("cache miss after Put")
	}

	cache.Clear()
	if _, ok := cache.Get("k"); ok {
		t.Error("cache hit after Clear")
	}
}
