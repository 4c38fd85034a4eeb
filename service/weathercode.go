package service

// WeatherInfo is the human-readable rendering of a WMO weather code.
type WeatherInfo struct {
	Description string
	IconID      string
}

type codeMapping struct {
	description string
	dayIcon     string
	nightIcon   string
}

// WMO weather interpretation codes as delivered by Open-Meteo.
var weatherCodes = map[int]codeMapping{
	0:  {"Clear sky", "01d", "01n"},
	1:  {"Mainly clear", "02d", "02n"},
	2:  {"Partly cloudy", "03d", "03n"},
	3:  {"Overcast", "04d", "04n"},
	45: {"Fog", "50d", "50n"},
	48: {"Depositing rime fog", "50d", "50n"},
	51: {"Light drizzle", "09d", "09n"},
	53: {"Moderate drizzle", "09d", "09n"},
	55: {"Dense drizzle", "09d", "09n"},
	56: {"Light freezing drizzle", "09d", "09n"},
	57: {"Dense freezing drizzle", "09d", "09n"},
	61: {"Slight rain", "10d", "10n"},
	63: {"Moderate rain", "10d", "10n"},
	65: {"Heavy rain", "10d", "10n"},
	66: {"Light freezing rain", "10d", "10n"},
	67: {"Heavy freezing rain", "10d", "10n"},
	71: {"Slight snowfall", "13d", "13n"},
	73: {"Moderate snowfall", "13d", "13n"},
	75: {"Heavy snowfall", "13d", "13n"},
	77: {"Snow grains", "13d", "13n"},
	80: {"Slight rain showers", "09d", "09n"},
	81: {"Moderate rain showers", "09d", "09n"},
	82: {"Violent rain showers", "09d", "09n"},
	85: {"Slight snow showers", "13d", "13n"},
	86: {"Heavy snow showers", "13d", "13n"},
	95: {"Thunderstorm", "11d", "11n"},
	96: {"Thunderstorm with slight hail", "11d", "11n"},
	99: {"Thunderstorm with heavy hail", "11d", "11n"},
}

// TranslateWeatherCode maps a WMO weather code and a day/night flag to a
// description and icon identifier. Unknown codes fall back to "Unknown" with
// the default icon. Never fails.
func TranslateWeatherCode(code int, isNight bool) WeatherInfo {
	mapping, known := weatherCodes[code]
	if !known {
		mapping = codeMapping{"Unknown", "01d", "01n"}
	}

	icon := mapping.dayIcon
	if isNight {
		icon = mapping.nightIcon
	}

	return WeatherInfo{
		Description: mapping.description,
		IconID:      icon,
	}
}
