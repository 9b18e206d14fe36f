package geofence

import (
	"context"
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/Jevon1999/api-presensi/internal/domain/office"
	"github.com/Jevon1999/api-presensi/internal/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var headquarters = geo.Point{Latitude: -6.200000, Longitude: 106.816666}

type fakeOfficeRepo struct {
	locations map[string][]office.Location
}

func (f *fakeOfficeRepo) GetByID(ctx context.Context, id string) (office.Office, error) {
	return office.Office{ID: id}, nil
}

func (f *fakeOfficeRepo) ActiveLocations(ctx context.Context, officeID string) ([]office.Location, error) {
	return f.locations[officeID], nil
}

type coordinate geo.Point

func (coordinate) Generate(r *rand.Rand, _ int) reflect.Value {
	return reflect.ValueOf(coordinate{
		Latitude:  r.Float64()*180 - 90,
		Longitude: r.Float64()*360 - 180,
	})
}

func hqLocation(radius int) office.Location {
	loc := office.NewLocation("hq", "Gedung Utama", headquarters.Latitude, headquarters.Longitude, radius)
	loc.ID = "loc-hq"
	return loc
}

func TestEvaluate_Radius(t *testing.T) {
	locations := []office.Location{hqLocation(100)}

	inside := Evaluate(geo.Offset(headquarters, 50, 0), locations)
	assert.True(t, inside.Admitted)
	assert.False(t, inside.Ungated)
	assert.InDelta(t, 50, inside.NearestMeters, 0.5)

	outside := Evaluate(geo.Offset(headquarters, 0, 500), locations)
	assert.False(t, outside.Admitted)
	assert.InDelta(t, 500, outside.NearestMeters, 0.5)
	assert.Equal(t, "loc-hq", outside.NearestLocation)
}

func TestEvaluate_AnyLocationAdmits(t *testing.T) {
	annexPoint := geo.Offset(headquarters, 2000, 0)
	annex := office.NewLocation("hq", "Annex", annexPoint.Latitude, annexPoint.Longitude, 150)

	locations := []office.Location{hqLocation(100), annex}

	// far from the main building, inside the annex
	d := Evaluate(geo.Offset(annexPoint, 0, 100), locations)
	assert.True(t, d.Admitted)
}

func TestEvaluate_UngatedAlwaysAdmits(t *testing.T) {
	inactive := hqLocation(100)
	inactive.Active = false

	for _, locations := range [][]office.Location{nil, {}, {inactive}} {
		f := func(c coordinate) bool {
			d := Evaluate(geo.Point(c), locations)
			return d.Admitted && d.Ungated
		}
		if err := quick.Check(f, nil); err != nil {
			t.Error(err)
		}
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	locations := []office.Location{hqLocation(100)}
	f := func(c coordinate) bool {
		return reflect.DeepEqual(Evaluate(geo.Point(c), locations), Evaluate(geo.Point(c), locations))
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestGeofenceService_Admits(t *testing.T) {
	repo := &fakeOfficeRepo{locations: map[string][]office.Location{
		"hq": {hqLocation(100)},
	}}
	svc := NewGeofenceService(repo)
	ctx := context.Background()

	p := geo.Offset(headquarters, 50, 0)
	d, err := svc.Admits(ctx, p.Latitude, p.Longitude, "hq")
	require.NoError(t, err)
	assert.True(t, d.Admitted)

	p = geo.Offset(headquarters, 500, 0)
	d, err = svc.Admits(ctx, p.Latitude, p.Longitude, "hq")
	require.NoError(t, err)
	assert.False(t, d.Admitted)

	d, err = svc.Admits(ctx, 0, 0, "provisioning")
	require.NoError(t, err)
	assert.True(t, d.Admitted)
	assert.True(t, d.Ungated)
}
