// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package source

import (
	"context"
	"sort"
	"strings"

	"github.com/poiesic/medcite/core"
)

// CuratedFetcher serves a built-in knowledge base of reviewed condition
// summaries. It never fails and needs no network, so the engine always has a
// floor of evidence for the conditions it covers.
type CuratedFetcher struct{}

// NewCuratedFetcher creates a fetcher over the built-in knowledge base.
func NewCuratedFetcher() *CuratedFetcher {
	return &CuratedFetcher{}
}

// Name identifies the source in logs and failure reports.
func (f *CuratedFetcher) Name() string {
	return "curated"
}

// Conditions lists the conditions the knowledge base covers, sorted.
func (f *CuratedFetcher) Conditions() []string {
	conditions := make([]string, 0, len(knowledgeBase))
	for condition := range knowledgeBase {
		conditions = append(conditions, condition)
	}
	sort.Strings(conditions)
	return conditions
}

// Fetch returns the knowledge base entry for the condition, or nothing when
// the condition is not covered.
func (f *CuratedFetcher) Fetch(ctx context.Context, condition string) ([]*core.RawRecord, error) {
	entry, ok := knowledgeBase[strings.ToLower(strings.TrimSpace(condition))]
	if !ok {
		return nil, nil
	}
	return []*core.RawRecord{entry}, nil
}

// curatedURL builds the synthetic URL a knowledge base entry is stored under.
func curatedURL(condition string) string {
	return "kb://curated/" + strings.ReplaceAll(condition, " ", "-")
}

func kbEntry(condition, title, body string, facets map[string][]string) *core.RawRecord {
	return &core.RawRecord{
		Source:     core.SourceCurated,
		SourceName: "Mayo Clinic",
		Topic:      condition,
		Title:      title,
		Body:       body,
		URL:        curatedURL(condition),
		Facets:     facets,
	}
}

// knowledgeBase holds reviewed summaries for common conditions, keyed by
// normalized condition name.
var knowledgeBase = map[string]*core.RawRecord{
	"diabetes": kbEntry("diabetes",
		"Diabetes overview",
		"Diabetes mellitus is a group of diseases that affect how the body uses blood sugar. Chronic high blood glucose damages nerves, kidneys, eyes, and blood vessels over time.",
		map[string][]string{
			core.FacetSymptoms: {
				"Increased thirst", "Frequent urination", "Extreme hunger",
				"Unexplained weight loss", "Fatigue", "Blurred vision",
				"Slow-healing sores",
			},
			core.FacetTreatments: {
				"Blood sugar monitoring", "Insulin therapy", "Metformin",
				"Healthy diet and exercise", "Weight management",
			},
			core.FacetCauses: {
				"Insulin resistance", "Autoimmune destruction of beta cells",
				"Genetic predisposition", "Excess weight and inactivity",
			},
			core.FacetPrevention: {
				"Maintain a healthy weight", "Stay physically active",
				"Eat a balanced diet low in refined sugar", "Regular health screening",
			},
		}),
	"hypertension": kbEntry("hypertension",
		"High blood pressure (hypertension)",
		"Hypertension is a common condition in which the force of blood against artery walls is consistently too high, increasing the risk of heart disease and stroke. It often has no symptoms for years.",
		map[string][]string{
			core.FacetSymptoms: {
				"Often no symptoms", "Headaches in severe cases",
				"Shortness of breath", "Nosebleeds in severe cases",
			},
			core.FacetTreatments: {
				"Lifestyle changes", "Diuretics", "ACE inhibitors",
				"Calcium channel blockers", "Reduced sodium intake",
			},
			core.FacetCauses: {
				"Genetic factors", "High sodium diet", "Chronic stress",
				"Obesity and inactivity", "Kidney disease",
			},
			core.FacetPrevention: {
				"Limit salt intake", "Exercise regularly",
				"Limit alcohol consumption", "Manage stress", "Avoid tobacco",
			},
		}),
	"asthma": kbEntry("asthma",
		"Asthma overview",
		"Asthma is a condition in which airways narrow, swell, and produce extra mucus, making breathing difficult and triggering coughing and wheezing. Severity ranges from a minor nuisance to life-threatening attacks.",
		map[string][]string{
			core.FacetSymptoms: {
				"Shortness of breath", "Chest tightness", "Wheezing when exhaling",
				"Coughing attacks worsened at night", "Trouble sleeping from breathlessness",
			},
			core.FacetTreatments: {
				"Inhaled corticosteroids", "Rescue inhalers", "Leukotriene modifiers",
				"Allergy medications", "Bronchial thermoplasty in severe cases",
			},
			core.FacetCauses: {
				"Airborne allergens", "Respiratory infections", "Cold air exposure",
				"Air pollutants and irritants", "Genetic predisposition",
			},
			core.FacetPrevention: {
				"Identify and avoid triggers", "Get vaccinated for influenza and pneumonia",
				"Monitor breathing", "Take prescribed medication consistently",
			},
		}),
	"depression": kbEntry("depression",
		"Depression (major depressive disorder)",
		"Depression is a mood disorder that causes a persistent feeling of sadness and loss of interest. It affects how a person feels, thinks, and behaves and can lead to a range of emotional and physical problems.",
		map[string][]string{
			core.FacetSymptoms: {
				"Persistent sadness", "Loss of interest in activities",
				"Sleep disturbances", "Fatigue and lack of energy",
				"Difficulty concentrating", "Feelings of worthlessness",
			},
			core.FacetTreatments: {
				"Psychotherapy", "Antidepressant medication",
				"Cognitive behavioral therapy", "Lifestyle changes and exercise",
				"Electroconvulsive therapy in severe cases",
			},
			core.FacetCauses: {
				"Brain chemistry changes", "Hormonal imbalances",
				"Inherited traits", "Trauma and chronic stress",
			},
			core.FacetPrevention: {
				"Manage stress", "Maintain social connections",
				"Seek treatment early", "Maintain regular sleep habits",
			},
		}),
	"heart disease": kbEntry("heart disease",
		"Heart disease overview",
		"Heart disease describes a range of conditions that affect the heart, including coronary artery disease, arrhythmias, and heart defects. Coronary artery disease, caused by plaque buildup, is the most common form.",
		map[string][]string{
			core.FacetSymptoms: {
				"Chest pain or pressure", "Shortness of breath",
				"Pain in the neck, jaw, or back", "Numbness in legs or arms",
				"Irregular heartbeat",
			},
			core.FacetTreatments: {
				"Cholesterol-lowering medication", "Blood thinners",
				"Angioplasty and stents", "Bypass surgery", "Cardiac rehabilitation",
			},
			core.FacetCauses: {
				"Plaque buildup in arteries", "High blood pressure",
				"High cholesterol", "Smoking", "Diabetes complications",
			},
			core.FacetPrevention: {
				"Heart-healthy diet", "Regular exercise", "Avoid smoking",
				"Control blood pressure and cholesterol", "Manage stress",
			},
		}),
}
