package weather

import "time"

// conditionTips maps a condition label (from Condition) to care advice
// for that weather.
var conditionTips = map[string]string{
	"Clear sky":     "Strong sun today. Water early in the morning and check pots for dry soil.",
	"Partly cloudy": "Mild conditions, a good day for repotting or pruning.",
	"Foggy":         "High humidity favors fungal spread; avoid wetting the leaves.",
	"Drizzle":       "Light rain may not reach pots under cover, so check their soil anyway.",
	"Rain":          "Nature is watering for you. Skip today's watering for outdoor plants.",
	"Rain showers":  "Showers expected. Hold off watering and empty saucers afterwards.",
	"Snow":          "Frost risk: move tender pots indoors and hold off fertilizing.",
	"Snow showers":  "Frost risk: move tender pots indoors and hold off fertilizing.",
	"Thunderstorm":  "Storm incoming. Stake tall plants and move hanging pots down.",
}

// generalTips rotate daily when no weather-specific tip applies.
var generalTips = []string{
	"Check the undersides of leaves weekly; that's where pests settle first.",
	"Water the soil, not the leaves; wet foliage invites fungus.",
	"Yellowing lower leaves usually mean overwatering, not underwatering.",
	"Rotate pots a quarter turn each week for even growth.",
	"Remove fallen leaves from the soil surface to stop disease spreading.",
	"Morning watering beats evening; leaves dry out before nightfall.",
	"A layer of mulch keeps roots cool and soil moisture steady.",
}

// TipFor returns care advice matching a WMO weather code, falling back
// to the rotating daily tip.
func TipFor(code int, now time.Time) string {
	if tip, ok := conditionTips[Condition(code)]; ok {
		return tip
	}
	return DailyTip(now)
}

// DailyTip returns the general tip for the given day; the same day always
// yields the same tip.
func DailyTip(now time.Time) string {
	return generalTips[now.YearDay()%len(generalTips)]
}
