package models

import "strings"

type Symptom string

const (
	SymptomDizziness        Symptom = "dizziness"
	SymptomCramps           Symptom = "cramps"
	SymptomFatigue          Symptom = "fatigue"
	SymptomBackPain         Symptom = "back_pain"
	SymptomMoodSwings       Symptom = "mood_swings"
	SymptomBreastTenderness Symptom = "breast_tenderness"
	SymptomBloating         Symptom = "bloating"
	SymptomAcne             Symptom = "acne"
)

type SymptomInfo struct {
	Symptom  Symptom
	Icon     string
	LabelKey string
}

var symptomCatalog = []SymptomInfo{
	{Symptom: SymptomDizziness, Icon: "🧠", LabelKey: "symptoms.dizziness"},
	{Symptom: SymptomCramps, Icon: "🩸", LabelKey: "symptoms.cramps"},
	{Symptom: SymptomFatigue, Icon: "☕", LabelKey: "symptoms.fatigue"},
	{Symptom: SymptomBackPain, Icon: "🦴", LabelKey: "symptoms.back_pain"},
	{Symptom: SymptomMoodSwings, Icon: "💗", LabelKey: "symptoms.mood_swings"},
	{Symptom: SymptomBreastTenderness, Icon: "💔", LabelKey: "symptoms.breast_tenderness"},
	{Symptom: SymptomBloating, Icon: "🎈", LabelKey: "symptoms.bloating"},
	{Symptom: SymptomAcne, Icon: "🔴", LabelKey: "symptoms.acne"},
}

// SymptomCatalog returns the fixed symptom vocabulary in display order.
func SymptomCatalog() []SymptomInfo {
	catalog := make([]SymptomInfo, len(symptomCatalog))
	copy(catalog, symptomCatalog)
	return catalog
}

func ParseSymptom(raw string) (Symptom, bool) {
	candidate := Symptom(strings.ToLower(strings.TrimSpace(raw)))
	for _, info := range symptomCatalog {
		if info.Symptom == candidate {
			return candidate, true
		}
	}
	return "", false
}

func (symptom Symptom) Valid() bool {
	_, ok := ParseSymptom(string(symptom))
	return ok
}
