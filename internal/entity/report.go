package entity

// DailyRecord is one date of a blind's breakdown.
type DailyRecord struct {
	Date           string  `json:"date"`
	Hunters        int     `json:"hunters"`
	Ducks          int     `json:"ducks"`
	DucksPerHunter float64 `json:"ducksPerHunter"`
}

// BlindRecord is the derived, externally visible view of a blind over the window.
type BlindRecord struct {
	Blind          string        `json:"blind"`
	TotalHunters   int           `json:"totalHunters"`
	TotalDucks     int           `json:"totalDucks"`
	DucksPerHunter float64       `json:"ducksPerHunter"`
	Daily          []DailyRecord `json:"daily"`
}

// SideRanking is the ranked output for one side, split into named area blinds
// and numbered unit blinds.
type SideRanking struct {
	AreaBlinds []BlindRecord `json:"areaBlinds"`
	UnitBlinds []BlindRecord `json:"unitBlinds"`
}

// All returns area blinds followed by unit blinds.
func (s SideRanking) All() []BlindRecord {
	out := make([]BlindRecord, 0, len(s.AreaBlinds)+len(s.UnitBlinds))
	out = append(out, s.AreaBlinds...)
	return append(out, s.UnitBlinds...)
}

// Weather is the observed weather for one date. Fields missing upstream stay nil.
type Weather struct {
	TempMinF        *float64 `json:"tempMin,omitempty"`
	TempMaxF        *float64 `json:"tempMax,omitempty"`
	PrecipitationIn *float64 `json:"precipitation,omitempty"`
	WindBearing     *float64 `json:"windBearing,omitempty"`
}

// Empty reports whether no field was observed.
func (w Weather) Empty() bool {
	return w.TempMinF == nil && w.TempMaxF == nil && w.PrecipitationIn == nil && w.WindBearing == nil
}

// Report is the interchange payload handed to the renderers.
type Report struct {
	Source   string             `json:"source"`
	Dates    []string           `json:"dates"`
	Eastside SideRanking        `json:"eastside"`
	Westside SideRanking        `json:"westside"`
	Weather  map[string]Weather `json:"weather,omitempty"`
}
