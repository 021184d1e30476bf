package place

var (
	circleCentroSol      = Circle{Lat: 40.416776435516745, Lon: -3.7033224277568415, Km: 2}
	circleLegazpi        = Circle{Lat: 40.391225, Lon: -3.695124, Km: 2}
	circleBancoEspana    = Circle{Lat: 40.419529, Lon: -3.693949, Km: 3}
	circleMoncloa        = Circle{Lat: 40.434616, Lon: -3.719097, Km: 1}
	circlePacifico       = Circle{Lat: 40.401874, Lon: -3.674703, Km: 1}
	circleSainzBaranda   = Circle{Lat: 40.414912, Lon: -3.669639, Km: 1}
	circleVillaverdeBajo = Circle{Lat: 40.352672, Lon: -3.684576, Km: 1}
	circleOporto         = Circle{Lat: 40.388966, Lon: -3.731448, Km: 1}
	circleVistaAlegre    = Circle{Lat: 40.388721, Lon: -3.739912, Km: 1}
	circleTribunal       = Circle{Lat: 40.42643799145984, Lon: -3.7012786845904095, Km: 0.5}
	circleSanIsidro      = Circle{Lat: 40.41271801132734, Lon: -3.7073444235919695, Km: 0.5}
	circleLavapies       = Circle{Lat: 40.40897556386815, Lon: -3.7010840545616155, Km: 0.3}
	circleDelicias       = Circle{Lat: 40.40006636655174, Lon: -3.6939322883846866, Km: 0.5}
)

// CentroSol is the reference circle of the city centre, used by callers that
// filter by distance to Sol.
var CentroSol = circleCentroSol

// DefaultZones lists Madrid zones in priority order: small neighbourhoods
// first so they win over the wide areas that contain them.
func DefaultZones() []Zone {
	return []Zone{
		{Name: "Lavapiés", Area: []Circle{circleLavapies}},
		{Name: "Tribunal", Area: []Circle{circleTribunal}},
		{Name: "La Latina", Area: []Circle{circleSanIsidro}},
		{Name: "Delicias", Area: []Circle{circleDelicias}},
		{Name: "Moncloa", Area: []Circle{circleMoncloa}},
		{Name: "Pacífico", Area: []Circle{circlePacifico}},
		{Name: "Sainz de Baranda", Area: []Circle{circleSainzBaranda}},
		{Name: "Villaverde Bajo", Area: []Circle{circleVillaverdeBajo}},
		{Name: "Carabanchel", Area: []Circle{circleOporto, circleVistaAlegre}},
		{Name: "Legazpi", Area: []Circle{circleLegazpi}},
		{Name: "Banco de España", Area: []Circle{circleBancoEspana}},
	}
}

var (
	casaEncendida = Place{
		Name:    "La Casa Encendida",
		Address: "Ronda de Valencia, 2, Centro, 28012 Madrid",
		LatLon:  "40.406102,-3.699082",
	}
	salaBerlanga = Place{
		Name:    "Sala Berlanga",
		Address: "C. de Andrés Mellado, 53, Chamberí, 28015 Madrid",
		LatLon:  "40.436269,-3.714990",
	}
	salaEquis = Place{
		Name:    "Sala Equis",
		Address: "C. del Duque de Alba, 4, Centro, 28012 Madrid",
		LatLon:  "40.411730,-3.705487",
	}
	cineDore = Place{
		Name:    "Cine Doré",
		Address: "C. de Santa Isabel, 3, Centro, 28012 Madrid",
		LatLon:  "40.411726,-3.699224",
	}
	cineteca = Place{
		Name:    "Cineteca Madrid",
		Address: "Pl. de Legazpi, 8, Arganzuela, 28045 Madrid",
		LatLon:  "40.391440,-3.697153",
	}
	condeDuque = Place{
		Name:    "Centro Cultural Conde Duque",
		Address: "C. del Conde Duque, 9, Centro, 28015 Madrid",
		LatLon:  "40.427510,-3.710615",
	}
	fundacionTelefonica = Place{
		Name:    "Espacio Fundación Telefónica",
		Address: "C. de Fuencarral, 3, Centro, 28004 Madrid",
		LatLon:  "40.419919,-3.701707",
	}
	teatroMonumental = Place{
		Name:    "Teatro Monumental",
		Address: "C. de Atocha, 65, Centro, 28012 Madrid",
		LatLon:  "40.412388,-3.699201",
	}
	ateneo = Place{
		Name:    "Ateneo de Madrid",
		Address: "C. del Prado, 21, Centro, 28014 Madrid",
		LatLon:  "40.414983,-3.697584",
	}
	teatroEspanol = Place{
		Name:    "Teatro Español",
		Address: "C. del Príncipe, 25, Centro, 28012 Madrid",
		LatLon:  "40.414633,-3.700813",
	}
	circuloBellasArtes = Place{
		Name:    "Círculo de Bellas Artes",
		Address: "C. de Alcalá, 42, Centro, 28014 Madrid",
		LatLon:  "40.418319,-3.696688",
	}
	casaAmerica = Place{
		Name:    "Casa de América",
		Address: "Pl. de Cibeles, 2, Salamanca, 28014 Madrid",
		LatLon:  "40.419270,-3.693127",
	}
	academiaCine = Place{
		Name:    "Academia de Cine",
		Address: "C. de Zurbano, 3, Chamberí, 28010 Madrid",
		LatLon:  "40.428040,-3.692531",
	}
	caixaForum = Place{
		Name:    "CaixaForum Madrid",
		Address: "P.º del Prado, 36, Centro, 28014 Madrid",
		LatLon:  "40.411046,-3.693613",
	}
	matadero = Place{
		Name:    "Matadero Madrid",
		Address: "P.º de la Chopera, 14, Arganzuela, 28045 Madrid",
		LatLon:  "40.392060,-3.697470",
	}
)

// DefaultCatalog is the curated set of Madrid venues scrapers report most often.
func DefaultCatalog() Catalog {
	return Catalog{
		Places: []Place{
			casaEncendida, salaBerlanga, salaEquis, cineDore, cineteca, condeDuque,
			fundacionTelefonica, teatroMonumental, ateneo, teatroEspanol,
			circuloBellasArtes, casaAmerica, academiaCine, caixaForum, matadero,
		},
		Rules: []Rule{
			{Name: []string{`casa encendida`}, Place: casaEncendida},
			{Name: []string{`sala berlanga`}, Place: salaBerlanga},
			{Name: []string{`berlanga`}, Address: []string{`andres mellado`}, Place: salaBerlanga},
			{Name: []string{`sala equis`, `^equis$`}, Place: salaEquis},
			{Name: []string{`\bdore\b`}, Place: cineDore},
			{Address: []string{`santa isabel,? 3\b`}, Place: cineDore},
			{Name: []string{`cineteca`}, Place: cineteca},
			{Name: []string{`conde ?duque`}, Place: condeDuque},
			{Name: []string{`(espacio|fundacion) telefonica`}, Place: fundacionTelefonica},
			{Name: []string{`teatro monumental`}, Place: teatroMonumental},
			{Name: []string{`^ateneo( de madrid)?$`}, Place: ateneo},
			{Name: []string{`ateneo`}, Address: []string{`prado,? 21`}, Place: ateneo},
			{Name: []string{`^teatro espanol$`}, Place: teatroEspanol},
			{Name: []string{`circulo de bellas artes`, `^cba$`}, Place: circuloBellasArtes},
			{Name: []string{`^casa de america$`}, Place: casaAmerica},
			{Name: []string{`academia de (las artes y las ciencias cinematograficas|cine)`}, Place: academiaCine},
			{Name: []string{`caixa ?forum`}, Place: caixaForum},
			{Name: []string{`^matadero( madrid)?$`}, Place: matadero},
		},
		ZoneRules: []ZoneRule{
			{Name: []string{`\bretiro\b`}, Zone: "El Retiro"},
			{Name: []string{`matadero`, `cineteca`}, Zone: "Legazpi"},
			{Address: []string{`chopera`, `legazpi`}, Zone: "Legazpi"},
			{Name: []string{`casa de campo`}, Zone: "Casa de Campo"},
		},
		Zones: DefaultZones(),
	}
}

// NewDefaultGazetteer builds the Gazetteer from DefaultCatalog.
func NewDefaultGazetteer() (*Gazetteer, error) {
	return NewGazetteer(DefaultCatalog())
}
