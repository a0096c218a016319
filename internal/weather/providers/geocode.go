package providers

import (
	"errors"
	"fmt"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-forecast-view/internal/weather"
)

var errNoGeocoderKey = errors.New("geocoding requires an api key")

// geocode is swapped out in tests.
var geocode = func(apiKey string, addr geocoder.Address) (geocoder.Location, error) {
	geocoder.ApiKey = apiKey
	return geocoder.Geocoding(addr)
}

// ResolveLocation fills in missing coordinates from the city and country
// using the Google geocoding API. Locations that already have coordinates are
// returned unchanged.
func ResolveLocation(loc weather.Location, apiKey string) (weather.Location, error) {
	if loc.Lat != nil && loc.Lon != nil {
		return loc, nil
	}
	if apiKey == "" {
		return loc, errNoGeocoderKey
	}

	res, err := geocode(apiKey, geocoder.Address{
		City:    loc.City,
		Country: loc.Country,
	})
	if err != nil {
		return loc, fmt.Errorf("geocode %s: %w", loc.Key(), err)
	}

	loc.Lat = ptr(res.Latitude)
	loc.Lon = ptr(res.Longitude)
	return loc, nil
}
