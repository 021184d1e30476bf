package place

import (
	"errors"
	"math"
	"testing"
)

func newTestGazetteer(t *testing.T) *Gazetteer {
	t.Helper()
	g, err := NewDefaultGazetteer()
	if err != nil {
		t.Fatalf("build default gazetteer: %v", err)
	}
	return g
}

func TestNormalizeCanonicalisesKnownVenues(t *testing.T) {
	t.Parallel()
	g := newTestGazetteer(t)

	tests := []struct {
		name string
		in   Place
		want string
	}{
		{name: "pattern on name", in: Place{Name: "LA CASA ENCENDIDA - Sala A"}, want: "La Casa Encendida"},
		{name: "pattern on address", in: Place{Name: "Filmoteca Española", Address: "calle Santa Isabel 3"}, want: "Cine Doré"},
		{name: "accent insensitive", in: Place{Name: "Espacio Fundacion Telefonica"}, want: "Espacio Fundación Telefónica"},
		{name: "name and address lookup", in: Place{Name: "  teatro  español ", Address: "C. del Príncipe, 25, Centro, 28012 Madrid"}, want: "Teatro Español"},
	}
	for _, tc := range tests {
		got := g.Normalize(tc.in)
		if got.Name != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got.Name)
		}
		if got.Address == "" || got.LatLon == "" {
			t.Fatalf("%s: expected canonical address and coordinates, got %+v", tc.name, got)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()
	g := newTestGazetteer(t)

	inputs := []Place{
		{},
		{Name: "sala equis"},
		{Address: "calle del Pez, 10, Madrid"},
		{Name: "bar unknown", LatLon: "40.4265, -3.7013"},
		{Name: "Parque del Retiro"},
		{Name: "nave 16", Address: "Paseo de la Chopera, 14"},
		{Name: "ateneo", Address: "Calle del Prado 21"},
		{LatLon: "40.2,-3.9"},
		{LatLon: "40.4265,-3.7013"},
	}
	inputs = append(inputs, g.Places()...)
	for _, in := range inputs {
		once := g.Normalize(in)
		twice := g.Normalize(once)
		if once != twice {
			t.Fatalf("normalize not idempotent for %+v: %+v then %+v", in, once, twice)
		}
	}
}

func TestNormalizeDerivesNameAndZone(t *testing.T) {
	t.Parallel()
	g := newTestGazetteer(t)

	got := g.Normalize(Place{Address: "calle del Pez, 10, Madrid"})
	if got.Name != "Calle del Pez" {
		t.Fatalf("expected name derived from address, got %q", got.Name)
	}

	got = g.Normalize(Place{Name: "bar unknown", LatLon: "40.4265,-3.7013"})
	if got.Name != "Bar unknown" {
		t.Fatalf("expected capitalized name, got %q", got.Name)
	}
	if got.Zone != "Tribunal" {
		t.Fatalf("expected first containing zone Tribunal, got %q", got.Zone)
	}

	got = g.Normalize(Place{Name: "Jardines del Retiro"})
	if got.Zone != "El Retiro" {
		t.Fatalf("expected zone rule to win, got %q", got.Zone)
	}

	got = g.Normalize(Place{Name: "Somewhere", LatLon: "40.2,-3.9"})
	if got.Zone != "" {
		t.Fatalf("expected no zone outside every circle, got %q", got.Zone)
	}
}

func TestNormalizeResolvesCircleCentresToTheirZone(t *testing.T) {
	t.Parallel()
	g := newTestGazetteer(t)

	for _, z := range DefaultZones() {
		for _, c := range z.Area {
			got := g.Normalize(Place{Name: "Punto de encuentro", LatLon: FormatLatLon(c.Lat, c.Lon)})
			if got.Zone != z.Name {
				t.Fatalf("centre %v,%v: expected zone %q, got %q", c.Lat, c.Lon, z.Name, got.Zone)
			}
		}
	}
}

func TestNormalizeNamesPlacesKnownOnlyByCoordinates(t *testing.T) {
	t.Parallel()
	g := newTestGazetteer(t)

	tribunal := DefaultZones()[1]
	centre := tribunal.Area[0]
	got := g.Normalize(Place{LatLon: FormatLatLon(centre.Lat, centre.Lon)})
	if got.Name != tribunal.Name || got.Zone != tribunal.Name {
		t.Fatalf("expected place named after zone %q, got %+v", tribunal.Name, got)
	}

	got = g.Normalize(Place{LatLon: "40.2, -3.9"})
	if got.Name != "40.2,-3.9" {
		t.Fatalf("expected coordinates as name outside every zone, got %q", got.Name)
	}
}

func TestNewGazetteerRejectsNonIdempotentCatalog(t *testing.T) {
	t.Parallel()

	_, err := NewGazetteer(Catalog{
		Places: []Place{{Name: "Foo Hall"}},
		Rules:  []Rule{{Name: []string{`foo`}, Place: Place{Name: "Bar Hall"}}},
	})
	if !errors.Is(err, ErrNotIdempotent) {
		t.Fatalf("expected ErrNotIdempotent, got %v", err)
	}

	_, err = NewGazetteer(Catalog{Rules: []Rule{{Name: []string{`(`}}}})
	if err == nil {
		t.Fatalf("expected invalid pattern to fail")
	}
}

func TestHaversine(t *testing.T) {
	t.Parallel()

	d := Haversine(circleCentroSol.Lat, circleCentroSol.Lon, circleLegazpi.Lat, circleLegazpi.Lon)
	if d < 2.8 || d > 3.1 {
		t.Fatalf("unexpected Sol-Legazpi distance %.3f km", d)
	}
	if d := Haversine(1, 2, 1, 2); math.Abs(d) > 1e-9 {
		t.Fatalf("expected zero distance, got %f", d)
	}
}

func TestCoordinates(t *testing.T) {
	t.Parallel()

	lat, lon, ok := Place{LatLon: "40.1,-3.5"}.Coordinates()
	if !ok || lat != 40.1 || lon != -3.5 {
		t.Fatalf("unexpected coordinates %v %v %v", lat, lon, ok)
	}
	if _, _, ok := (Place{LatLon: "nope"}).Coordinates(); ok {
		t.Fatalf("expected invalid coordinates to fail")
	}
}
