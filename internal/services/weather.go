package services

// WeatherLocation is one entry of the weather partial
type WeatherLocation struct {
	Name        string
	ForecastURL string
	IconURL     string
	Weather     string
	Temp        string
}

// WeatherService serves the current weather for the partial shown on every page
type WeatherService struct {
	locations []WeatherLocation
}

func NewWeatherService() *WeatherService {
	return &WeatherService{locations: []WeatherLocation{
		{
			Name:        "Portland",
			ForecastURL: "http://www.wunderground.com/US/OR/Portland.html",
			IconURL:     "http://icons-ak.wxug.com/i/c/k/cloudy.gif",
			Weather:     "Overcast",
			Temp:        "54.1 F (12.3 C)",
		},
		{
			Name:        "Bend",
			ForecastURL: "http://www.wunderground.com/US/OR/Bend.html",
			IconURL:     "http://icons-ak.wxug.com/i/c/k/partlycloudy.gif",
			Weather:     "Partly Cloudy",
			Temp:        "55.0 F (12.8 C)",
		},
		{
			Name:        "Manzanita",
			ForecastURL: "http://www.wunderground.com/US/OR/Manzanita.html",
			IconURL:     "http://icons-ak.wxug.com/i/c/k/rain.gif",
			Weather:     "Light Rain",
			Temp:        "55.0 F (12.8 C)",
		},
	}}
}

// Locations returns a copy of the current conditions
func (s *WeatherService) Locations() []WeatherLocation {
	return append([]WeatherLocation(nil), s.locations...)
}
