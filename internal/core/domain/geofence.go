package domain

import "math"

// Default office location used when the settings table has no override
const (
	DefaultOfficeLatitude  = 15.7634
	DefaultOfficeLongitude = -86.75342
	DefaultGeofenceRadius  = 100 // meters
)

// Geofence radius bounds accepted from admins
const (
	MinGeofenceRadius = 10
	MaxGeofenceRadius = 1000
)

const earthRadiusMeters = 6371000

// OfficeLocation is the configured office coordinate and permitted radius.
type OfficeLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"` // meters
	Address   string  `json:"address,omitempty"`

	// Enforced mirrors the geofence_enforced setting. The radius has always
	// been stored; checking it at check-in is an explicit admin opt-in.
	Enforced bool `json:"enforced"`
}

// DefaultOfficeLocation returns the location used when no settings exist.
func DefaultOfficeLocation() OfficeLocation {
	return OfficeLocation{
		Latitude:  DefaultOfficeLatitude,
		Longitude: DefaultOfficeLongitude,
		Radius:    DefaultGeofenceRadius,
	}
}

// Contains reports whether the given coordinate is within the office radius.
func (o OfficeLocation) Contains(lat, lng float64) bool {
	return DistanceMeters(o.Latitude, o.Longitude, lat, lng) <= o.Radius
}

// ValidCoordinate reports whether lat/lng are in range.
func ValidCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// DistanceMeters computes the haversine distance between two coordinates.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
