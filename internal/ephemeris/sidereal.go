package ephemeris

// Lahiri returns the Lahiri (Chitrapaksha) ayanamsa in degrees at jd.
func Lahiri(jd float64) float64 {
	T := centuries(jd)
	return 23.85306 + 1.39689*T + 0.000308*T*T
}

// MeanObliquity returns the mean obliquity of the ecliptic in degrees.
func MeanObliquity(jd float64) float64 {
	T := centuries(jd)
	return 23.439291 - 0.0130042*T - 1.64e-7*T*T + 5.04e-7*T*T*T
}

// GreenwichSiderealTime returns the Greenwich mean sidereal time in degrees.
func GreenwichSiderealTime(jd float64) float64 {
	T := centuries(jd)
	return Normalize(280.46061837 + 360.98564736629*(jd-j2000) + 0.000387933*T*T - T*T*T/38710000)
}

// Ascendant returns the tropical ecliptic longitude rising on the eastern
// horizon for geographic latitude lat and east longitude lon. It is the
// first-house cusp of Placidus and the other quadrant house systems.
func Ascendant(jd, lat, lon float64) float64 {
	ramc := Normalize(GreenwichSiderealTime(jd) + lon)
	eps := MeanObliquity(jd)
	return Normalize(atan2d(cosd(ramc), -(sind(ramc)*cosd(eps) + tand(lat)*sind(eps))))
}

// Midheaven returns the tropical longitude of the upper meridian.
func Midheaven(jd, lon float64) float64 {
	ramc := Normalize(GreenwichSiderealTime(jd) + lon)
	eps := MeanObliquity(jd)
	return Normalize(atan2d(sind(ramc), cosd(ramc)*cosd(eps)))
}
