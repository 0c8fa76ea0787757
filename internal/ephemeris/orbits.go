package ephemeris

import (
	"math"

	"astrotrade/internal/types"
)

// orbit holds mean elements of date: longitude of the ascending node N,
// inclination i, argument of perihelion w, semi-major axis a (AU, Earth
// radii for the Moon), eccentricity e and mean anomaly M. Angles in degrees.
type orbit struct {
	N, i, w, a, e, M float64
}

// dayNumber counts days from 2000 Jan 0.0 UT, the epoch of the element set.
func dayNumber(jd float64) float64 {
	return jd - 2451543.5
}

func elements(body types.Body, d float64) orbit {
	var o orbit
	switch body {
	case types.Sun:
		o = orbit{0, 0, 282.9404 + 4.70935e-5*d, 1.0, 0.016709 - 1.151e-9*d, 356.0470 + 0.9856002585*d}
	case types.Moon:
		o = orbit{125.1228 - 0.0529538083*d, 5.1454, 318.0634 + 0.1643573223*d, 60.2666, 0.054900, 115.3654 + 13.0649929509*d}
	case types.Mercury:
		o = orbit{48.3313 + 3.24587e-5*d, 7.0047 + 5.00e-8*d, 29.1241 + 1.01444e-5*d, 0.387098, 0.205635 + 5.59e-10*d, 168.6562 + 4.0923344368*d}
	case types.Venus:
		o = orbit{76.6799 + 2.46590e-5*d, 3.3946 + 2.75e-8*d, 54.8910 + 1.38374e-5*d, 0.723330, 0.006773 - 1.302e-9*d, 48.0052 + 1.6021302244*d}
	case types.Mars:
		o = orbit{49.5574 + 2.11081e-5*d, 1.8497 - 1.78e-8*d, 286.5016 + 2.92961e-5*d, 1.523688, 0.093405 + 2.516e-9*d, 18.6021 + 0.5240207766*d}
	case types.Jupiter:
		o = orbit{100.4542 + 2.76854e-5*d, 1.3030 - 1.557e-7*d, 273.8777 + 1.64505e-5*d, 5.20256, 0.048498 + 4.469e-9*d, 19.8950 + 0.0830853001*d}
	case types.Saturn:
		o = orbit{113.6634 + 2.38980e-5*d, 2.4886 - 1.081e-7*d, 339.3939 + 2.97661e-5*d, 9.55475, 0.055546 - 9.499e-9*d, 316.9670 + 0.0334442282*d}
	}
	o.N = Normalize(o.N)
	o.w = Normalize(o.w)
	o.M = Normalize(o.M)
	return o
}

// eccentricAnomaly solves Kepler's equation by Newton iteration.
func eccentricAnomaly(M, e float64) float64 {
	E := M + rad2deg*e*sind(M)*(1+e*cosd(M))
	for k := 0; k < 30; k++ {
		dE := (E - rad2deg*e*sind(E) - M) / (1 - e*cosd(E))
		E -= dE
		if math.Abs(dE) < 1e-9 {
			break
		}
	}
	return E
}

// inOrbit returns the true anomaly and the radius vector.
func (o orbit) inOrbit() (v, r float64) {
	E := eccentricAnomaly(o.M, o.e)
	xv := o.a * (cosd(E) - o.e)
	yv := o.a * math.Sqrt(1-o.e*o.e) * sind(E)
	return atan2d(yv, xv), math.Hypot(xv, yv)
}

// ecliptic returns the body's ecliptic longitude, latitude and distance
// relative to the orbit's centre (the Sun for planets, the Earth for the Moon).
func (o orbit) ecliptic() (lon, lat, r float64) {
	v, r := o.inOrbit()
	vw := v + o.w
	x := r * (cosd(o.N)*cosd(vw) - sind(o.N)*sind(vw)*cosd(o.i))
	y := r * (sind(o.N)*cosd(vw) + cosd(o.N)*sind(vw)*cosd(o.i))
	z := r * sind(vw) * sind(o.i)
	return Normalize(atan2d(y, x)), atan2d(z, math.Hypot(x, y)), r
}

// sun returns the Sun's geocentric tropical longitude and distance.
func sun(d float64) (lon, r float64) {
	o := elements(types.Sun, d)
	v, r := o.inOrbit()
	return Normalize(v + o.w), r
}

// moon returns the Moon's geocentric tropical longitude including the
// principal periodic terms.
func moon(d float64) float64 {
	m := elements(types.Moon, d)
	s := elements(types.Sun, d)
	lon, _, _ := m.ecliptic()

	Ls := s.M + s.w
	Lm := m.M + m.w + m.N
	D := Lm - Ls
	F := Lm - m.N
	Ms, Mm := s.M, m.M

	lon += -1.274*sind(Mm-2*D) +
		0.658*sind(2*D) -
		0.186*sind(Ms) -
		0.059*sind(2*Mm-2*D) -
		0.057*sind(Mm-2*D+Ms) +
		0.053*sind(Mm+2*D) +
		0.046*sind(2*D-Ms) +
		0.041*sind(Mm-Ms) -
		0.035*sind(D) -
		0.031*sind(Mm+Ms) -
		0.015*sind(2*F-2*D) +
		0.011*sind(Mm-4*D)
	return Normalize(lon)
}

// planet returns a planet's geocentric tropical longitude.
func planet(body types.Body, d float64) float64 {
	o := elements(body, d)
	lon, lat, r := o.ecliptic()

	Mj := elements(types.Jupiter, d).M
	Msat := elements(types.Saturn, d).M
	switch body {
	case types.Jupiter:
		lon += -0.332*sind(2*Mj-5*Msat-67.6) -
			0.056*sind(2*Mj-2*Msat+21) +
			0.042*sind(3*Mj-5*Msat+21) -
			0.036*sind(Mj-2*Msat) +
			0.022*cosd(Mj-Msat) +
			0.023*sind(2*Mj-3*Msat+52) -
			0.016*sind(Mj-5*Msat-69)
	case types.Saturn:
		lon += 0.812*sind(2*Mj-5*Msat-67.6) -
			0.229*cosd(2*Mj-4*Msat-2) +
			0.119*sind(Mj-2*Msat-3) +
			0.046*sind(2*Mj-6*Msat-69) +
			0.014*sind(Mj-3*Msat+32)
	}

	xh := r * cosd(lon) * cosd(lat)
	yh := r * sind(lon) * cosd(lat)

	slon, sr := sun(d)
	xg := xh + sr*cosd(slon)
	yg := yh + sr*sind(slon)
	return Normalize(atan2d(yg, xg))
}
