package openweather

// OpenWeatherMap API response types. Field names follow the provider's JSON;
// only the fields this service reads are declared.

type geoEntry struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type weatherEntry struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type currentWeatherResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
}

type oneCallCurrent struct {
	Dt         int64          `json:"dt"`
	Sunrise    int64          `json:"sunrise"`
	Sunset     int64          `json:"sunset"`
	Temp       float64        `json:"temp"`
	FeelsLike  float64        `json:"feels_like"`
	Pressure   int            `json:"pressure"`
	Humidity   int            `json:"humidity"`
	DewPoint   float64        `json:"dew_point"`
	UVI        float64        `json:"uvi"`
	Clouds     int            `json:"clouds"`
	Visibility int            `json:"visibility"`
	WindSpeed  float64        `json:"wind_speed"`
	WindDeg    int            `json:"wind_deg"`
	Weather    []weatherEntry `json:"weather"`
}

type oneCallHourly struct {
	Dt        int64          `json:"dt"`
	Temp      float64        `json:"temp"`
	FeelsLike float64        `json:"feels_like"`
	Pressure  int            `json:"pressure"`
	Humidity  int            `json:"humidity"`
	Clouds    int            `json:"clouds"`
	WindSpeed float64        `json:"wind_speed"`
	WindDeg   int            `json:"wind_deg"`
	Pop       float64        `json:"pop"`
	Weather   []weatherEntry `json:"weather"`
}

type oneCallDaily struct {
	Dt   int64 `json:"dt"`
	Temp struct {
		Day   float64 `json:"day"`
		Min   float64 `json:"min"`
		Max   float64 `json:"max"`
		Night float64 `json:"night"`
		Eve   float64 `json:"eve"`
		Morn  float64 `json:"morn"`
	} `json:"temp"`
	Pressure  int            `json:"pressure"`
	Humidity  int            `json:"humidity"`
	WindSpeed float64        `json:"wind_speed"`
	WindDeg   int            `json:"wind_deg"`
	Clouds    int            `json:"clouds"`
	Pop       float64        `json:"pop"`
	Rain      float64        `json:"rain,omitempty"`
	Snow      float64        `json:"snow,omitempty"`
	UVI       float64        `json:"uvi"`
	Weather   []weatherEntry `json:"weather"`
}

type oneCallAlert struct {
	SenderName  string `json:"sender_name"`
	Event       string `json:"event"`
	Start       int64  `json:"start"`
	End         int64  `json:"end"`
	Description string `json:"description"`
}

type oneCallResponse struct {
	Timezone string          `json:"timezone"`
	Current  oneCallCurrent  `json:"current"`
	Hourly   []oneCallHourly `json:"hourly"`
	Daily    []oneCallDaily  `json:"daily"`
	Alerts   []oneCallAlert  `json:"alerts,omitempty"`
}

type airPollutionResponse struct {
	List []struct {
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
		Components struct {
			CO   float64 `json:"co"`
			NO   float64 `json:"no"`
			NO2  float64 `json:"no2"`
			O3   float64 `json:"o3"`
			SO2  float64 `json:"so2"`
			PM25 float64 `json:"pm2_5"`
			PM10 float64 `json:"pm10"`
			NH3  float64 `json:"nh3"`
		} `json:"components"`
	} `json:"list"`
}
