package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type CycleRecord struct {
	ID        string
	StartDate time.Time
	EndDate   *time.Time
	Symptoms  []Symptom
}

type cycleRecordJSON struct {
	ID        string    `json:"id"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate,omitempty"`
	Symptoms  []Symptom `json:"symptoms"`
}

func (record CycleRecord) IsOpen() bool {
	return record.EndDate == nil
}

// PeriodEnd is the recorded end day, or DefaultPeriodDays after the start
// while the cycle is still open.
func (record CycleRecord) PeriodEnd() time.Time {
	if record.EndDate != nil {
		return DayOf(*record.EndDate)
	}
	return AddDays(record.StartDate, DefaultPeriodDays)
}

func (record CycleRecord) HasSymptom(symptom Symptom) bool {
	for _, existing := range record.Symptoms {
		if existing == symptom {
			return true
		}
	}
	return false
}

func (record CycleRecord) Clone() CycleRecord {
	cloned := CycleRecord{
		ID:        record.ID,
		StartDate: record.StartDate,
		Symptoms:  make([]Symptom, len(record.Symptoms)),
	}
	copy(cloned.Symptoms, record.Symptoms)
	if record.EndDate != nil {
		end := *record.EndDate
		cloned.EndDate = &end
	}
	return cloned
}

func (record CycleRecord) MarshalJSON() ([]byte, error) {
	payload := cycleRecordJSON{
		ID:        record.ID,
		StartDate: FormatDay(record.StartDate),
		Symptoms:  record.Symptoms,
	}
	if payload.Symptoms == nil {
		payload.Symptoms = []Symptom{}
	}
	if record.EndDate != nil {
		payload.EndDate = FormatDay(*record.EndDate)
	}
	return json.Marshal(payload)
}

func (record *CycleRecord) UnmarshalJSON(data []byte) error {
	var payload cycleRecordJSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}

	start, err := ParseDay(payload.StartDate)
	if err != nil {
		return fmt.Errorf("parse startDate %q: %w", payload.StartDate, err)
	}

	decoded := CycleRecord{
		ID:        payload.ID,
		StartDate: start,
		Symptoms:  payload.Symptoms,
	}
	if decoded.Symptoms == nil {
		decoded.Symptoms = []Symptom{}
	}
	if payload.EndDate != "" {
		end, err := ParseDay(payload.EndDate)
		if err != nil {
			return fmt.Errorf("parse endDate %q: %w", payload.EndDate, err)
		}
		decoded.EndDate = &end
	}

	*record = decoded
	return nil
}
