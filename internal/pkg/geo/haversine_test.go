package geo

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

// coordinate generates points inside the valid WGS84 range.
type coordinate Point

func (coordinate) Generate(r *rand.Rand, _ int) reflect.Value {
	return reflect.ValueOf(coordinate{
		Latitude:  r.Float64()*180 - 90,
		Longitude: r.Float64()*360 - 180,
	})
}

func TestDistance_Identity(t *testing.T) {
	f := func(c coordinate) bool {
		return Distance(Point(c), Point(c)) == 0
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 1000}); err != nil {
		t.Error(err)
	}
}

func TestDistance_Symmetry(t *testing.T) {
	f := func(a, b coordinate) bool {
		return Distance(Point(a), Point(b)) == Distance(Point(b), Point(a))
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 1000}); err != nil {
		t.Error(err)
	}
}

func TestDistance_Antipodal(t *testing.T) {
	halfCircumference := math.Pi * EarthRadiusMeters

	cases := []struct {
		name string
		a    Point
	}{
		{"equator", Point{0, 0}},
		{"rounding edge", Point{18.8388, 158.5832}},
		{"southern", Point{-6.2, 106.816666}},
		{"near pole", Point{89.9, 10}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := Point{Latitude: -c.a.Latitude, Longitude: c.a.Longitude - 180}
			got := Distance(c.a, b)
			assert.False(t, math.IsNaN(got))
			assert.InDelta(t, halfCircumference, got, 1)
			assert.Equal(t, got, Distance(b, c.a))
		})
	}

	f := func(c coordinate) bool {
		b := Point{Latitude: -c.Latitude, Longitude: c.Longitude + 180}
		d := Distance(Point(c), b)
		return !math.IsNaN(d) && d == Distance(b, Point(c))
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 5000}); err != nil {
		t.Error(err)
	}
}

func TestDistance_KnownValues(t *testing.T) {
	jakarta := Point{Latitude: -6.200000, Longitude: 106.816666}
	bandung := Point{Latitude: -6.921478, Longitude: 107.607140}

	// roughly 118 km as the crow flies
	assert.InDelta(t, 118_000, Distance(jakarta, bandung), 2_000)

	oneDegree := Distance(Point{0, 0}, Point{1, 0})
	assert.InDelta(t, 111_195, oneDegree, 1)
}

func TestOffset(t *testing.T) {
	origin := Point{Latitude: -6.200000, Longitude: 106.816666}

	cases := []struct {
		name  string
		north float64
		east  float64
		want  float64
	}{
		{"50m north", 50, 0, 50},
		{"500m east", 0, 500, 500},
		{"diagonal", 30, 40, 50},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Distance(origin, Offset(origin, c.north, c.east))
			assert.InDelta(t, c.want, got, 0.5)
		})
	}
}
