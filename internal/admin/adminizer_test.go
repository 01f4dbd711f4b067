package admin

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tileforge/vtpost/internal/geom"
)

type fakeDatasource struct {
	features []*geom.Feature
}

func (f *fakeDatasource) Query(env geom.Envelope) ([]*geom.Feature, error) {
	return f.features, nil
}

func squarePolygonFeature(id int64, minX, minY, maxX, maxY float64, isoValue string) *geom.Feature {
	f := geom.NewFeature(id)
	f.AddGeometry(geom.NewPolygon([][2]float64{
		{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
	}))
	f.Put("iso", geom.String(isoValue))
	return f
}

func TestAdminizerLowestIndexWins(t *testing.T) {
	p0 := squarePolygonFeature(100, 0, 0, 1, 1, "P0")
	p1 := squarePolygonFeature(101, 0, 0, 2, 2, "P1")
	ds := &fakeDatasource{features: []*geom.Feature{p0, p1}}

	a, err := New(Config{ParamName: "iso", Datasource: ds})
	require.NoError(t, err)

	layer := geom.NewLayer("points")
	target := geom.NewFeature(1)
	target.AddGeometry(geom.NewPoint(0.5, 0.5))
	layer.AddFeature(target)

	require.NoError(t, a.Process(layer))

	v, ok := target.Get("iso")
	require.True(t, ok)
	s, _ := v.Str()
	require.Equal(t, "P0", s)
}

func TestAdminizerNoIntersectionLeavesAttributeAbsent(t *testing.T) {
	p0 := squarePolygonFeature(100, 10, 10, 11, 11, "P0")
	ds := &fakeDatasource{features: []*geom.Feature{p0}}

	a, err := New(Config{ParamName: "iso", Datasource: ds})
	require.NoError(t, err)

	layer := geom.NewLayer("points")
	target := geom.NewFeature(1)
	target.AddGeometry(geom.NewPoint(0.5, 0.5))
	layer.AddFeature(target)

	require.NoError(t, a.Process(layer))

	_, ok := target.Get("iso")
	require.False(t, ok)
}

func TestAdminizerSkipsNonPolygonAuxiliaryGeometries(t *testing.T) {
	line := geom.NewFeature(200)
	line.AddGeometry(geom.NewLineString([][2]float64{{0, 0}, {1, 1}}))
	line.Put("iso", geom.String("NOPE"))
	ds := &fakeDatasource{features: []*geom.Feature{line}}

	a, err := New(Config{ParamName: "iso", Datasource: ds})
	require.NoError(t, err)

	layer := geom.NewLayer("points")
	target := geom.NewFeature(1)
	target.AddGeometry(geom.NewPoint(0.5, 0.5))
	layer.AddFeature(target)

	require.NoError(t, a.Process(layer))
	_, ok := target.Get("iso")
	require.False(t, ok, "a non-polygon auxiliary geometry must never produce an entry")
}

func TestAdminizerIdempotentSecondPass(t *testing.T) {
	p0 := squarePolygonFeature(100, 0, 0, 1, 1, "P0")
	ds := &fakeDatasource{features: []*geom.Feature{p0}}
	a, err := New(Config{ParamName: "iso", Datasource: ds})
	require.NoError(t, err)

	layer := geom.NewLayer("points")
	target := geom.NewFeature(1)
	target.AddGeometry(geom.NewPoint(0.5, 0.5))
	layer.AddFeature(target)

	require.NoError(t, a.Process(layer))
	first, _ := target.Get("iso")

	require.NoError(t, a.Process(layer))
	second, _ := target.Get("iso")
	require.True(t, first.Equal(second))
}

func TestNewAdminizerRequiresParamName(t *testing.T) {
	_, err := New(Config{Datasource: &fakeDatasource{}})
	require.Error(t, err)
}
