package chart

// Spec - конфигурация Chart.js, которую страница передаёт в new Chart().
type Spec struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor"`
	BorderColor     []string  `json:"borderColor"`
	BorderWidth     int       `json:"borderWidth"`
}

type Options struct {
	Responsive          bool    `json:"responsive"`
	MaintainAspectRatio bool    `json:"maintainAspectRatio"`
	Plugins             Plugins `json:"plugins"`
	Scales              Scales  `json:"scales"`
}

type Plugins struct {
	Legend Legend `json:"legend"`
}

type Legend struct {
	Display bool `json:"display"`
}

type Scales struct {
	Y Axis `json:"y"`
	X Axis `json:"x"`
}

type Axis struct {
	BeginAtZero bool  `json:"beginAtZero,omitempty"`
	Title       Title `json:"title"`
}

type Title struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

func buildSpec(data Series, cfg Config) Spec {
	colors := cfg.Colors
	if len(colors.Background) == 0 {
		colors.Background = DefaultColors.Background
	}
	if len(colors.Border) == 0 {
		colors.Border = DefaultColors.Border
	}

	return Spec{
		Type: "bar",
		Data: Data{
			Labels: data.Labels,
			Datasets: []Dataset{{
				Label:           cfg.Label,
				Data:            data.Values,
				BackgroundColor: cycle(colors.Background, len(data.Labels)),
				BorderColor:     cycle(colors.Border, len(data.Labels)),
				BorderWidth:     1,
			}},
		},
		Options: Options{
			Responsive:          true,
			MaintainAspectRatio: false,
			Plugins:             Plugins{Legend: Legend{Display: false}},
			Scales: Scales{
				Y: Axis{BeginAtZero: true, Title: Title{Display: true, Text: cfg.YAxisTitle}},
				X: Axis{Title: Title{Display: true, Text: cfg.XAxisTitle}},
			},
		},
	}
}
