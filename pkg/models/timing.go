package models

import "time"

// Grade is the categorical rating of a numeric prediction score
type Grade string

const (
	GradeS     Grade = "S"
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
)

// Grade thresholds: inclusive lower bounds
const (
	GradeSThreshold     = 90.0
	GradeAPlusThreshold = 80.0
	GradeAThreshold     = 70.0
	GradeBThreshold     = 60.0
	GradeCThreshold     = 50.0
)

// GradeOf maps a numeric score to its grade; boundary values map to the
// higher grade
func GradeOf(score float64) Grade {
	switch {
	case score >= GradeSThreshold:
		return GradeS
	case score >= GradeAPlusThreshold:
		return GradeAPlus
	case score >= GradeAThreshold:
		return GradeA
	case score >= GradeBThreshold:
		return GradeB
	case score >= GradeCThreshold:
		return GradeC
	default:
		return GradeD
	}
}

// Rank returns the grade's ordering position, higher is better
func (g Grade) Rank() int {
	switch g {
	case GradeS:
		return 5
	case GradeAPlus:
		return 4
	case GradeA:
		return 3
	case GradeB:
		return 2
	case GradeC:
		return 1
	default:
		return 0
	}
}

// EventType is the life event a timing scan targets
type EventType string

const (
	EventCareer       EventType = "career"
	EventRelationship EventType = "relationship"
	EventHealth       EventType = "health"
	EventWealth       EventType = "wealth"
	EventStudy        EventType = "study"
	EventTravel       EventType = "travel"
	EventContract     EventType = "contract"
)

// LunarMansion is one of the 28 mansions, indexed from Gak (角)
type LunarMansion int

var mansionNames = [28]string{
	"gak", "hang", "jeo", "bang", "sim", "mi", "gi",
	"du", "u", "yeo", "heo", "wi", "sil", "byeok",
	"gyu", "ru", "wi2", "myo", "pil", "ja", "sam",
	"jeong", "gwi", "ryu", "seong", "jang", "ik", "jin",
}

func (m LunarMansion) String() string { return mansionNames[int(m)%28] }

// LunarPhase is an eight-phase classification of the Moon-Sun elongation
type LunarPhase string

const (
	PhaseNewMoon        LunarPhase = "new_moon"
	PhaseWaxingCrescent LunarPhase = "waxing_crescent"
	PhaseFirstQuarter   LunarPhase = "first_quarter"
	PhaseWaxingGibbous  LunarPhase = "waxing_gibbous"
	PhaseFullMoon       LunarPhase = "full_moon"
	PhaseWaningGibbous  LunarPhase = "waning_gibbous"
	PhaseLastQuarter    LunarPhase = "last_quarter"
	PhaseWaningCrescent LunarPhase = "waning_crescent"
)

// CausalFactor is one named, signed contribution to a day's timing score
type CausalFactor struct {
	Name       string  `json:"name"`
	Weight     float64 `json:"weight"`     // signed contribution to the score
	Confidence float64 `json:"confidence"` // (0, 1]
	Note       string  `json:"note,omitempty"`
}

// DailyTiming is the overlay result for one candidate day
type DailyTiming struct {
	Date               time.Time      `json:"date"`
	Score              float64        `json:"score"` // 0..100
	Grade              Grade          `json:"grade"`
	Confidence         float64        `json:"confidence"` // (0, 1]
	Mansion            LunarMansion   `json:"mansion"`
	Phase              LunarPhase     `json:"phase"`
	PlanetaryDayRuler  Body           `json:"planetary_day_ruler"`
	PlanetaryHourRuler *Body          `json:"planetary_hour_ruler,omitempty"`
	Factors            []CausalFactor `json:"factors"`
}

// Period is a contiguous run of qualifying days
type Period struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Grade     Grade     `json:"grade"` // best grade inside the period
	PeakScore float64   `json:"peak_score"`
}

// EventTimingResult is the outcome of an event-timing scan over a date range
type EventTimingResult struct {
	EventType  EventType      `json:"event_type"`
	From       time.Time      `json:"from"`
	To         time.Time      `json:"to"`
	Daily      []DailyTiming  `json:"daily"`
	Optimal    []Period       `json:"optimal_periods"`
	Avoid      []Period       `json:"avoid_periods"`
	Grade      Grade          `json:"grade"` // best daily grade in range
	Confidence float64        `json:"confidence"`
	Factors    []CausalFactor `json:"factors,omitempty"`
	Degraded   bool           `json:"degraded"`
}
