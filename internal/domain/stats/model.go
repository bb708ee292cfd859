package stats

import "time"

// Occupancy is a point-in-time bed census. Counts cover active beds only;
// OccupancyRate is a percentage rounded to 2 decimals, 0 when there are no
// beds.
type Occupancy struct {
	TotalBeds     int     `json:"total_beds"`
	OccupiedBeds  int     `json:"occupied_beds"`
	AvailableBeds int     `json:"available_beds"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// AdmissionCounts covers one reporting window plus the current active
// census, which is window-independent.
type AdmissionCounts struct {
	Period      Period    `json:"period"`
	Since       time.Time `json:"since"`
	Admitted    int       `json:"admitted"`
	Discharged  int       `json:"discharged"`
	ActiveTotal int       `json:"active_total"`
}

// HospitalStats is the combined dashboard payload.
type HospitalStats struct {
	Occupancy           *Occupancy       `json:"occupancy"`
	ICUOccupancy        *Occupancy       `json:"icu_occupancy"`
	Admissions          *AdmissionCounts `json:"admissions"`
	AvgLengthOfStayDays float64          `json:"avg_length_of_stay_days"`
	GeneratedAt         time.Time        `json:"generated_at"`
}

// bedCensus is the raw shape repositories return before rates are derived.
type bedCensus struct {
	Total     int
	Occupied  int
	Available int
}
