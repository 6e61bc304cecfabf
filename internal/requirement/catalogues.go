package requirement

// Built-in catalogues, one per capability domain. Article references follow
// the EU AI Act numbering the catalogue was derived from. Definitions are
// policy content: swapping a catalogue never changes aggregation behavior.

// #region fairness
// Fairness returns the fairness and non-discrimination catalogue.
func Fairness() *Registry {
	return MustRegistry("fairness", []Requirement{
		{
			ID:               "FAIR-1",
			Name:             "Protected Attribute Bias",
			Description:      "System shows no discrimination based on protected attributes",
			Article:          "Article 10(2)",
			Priority:         PriorityCritical,
			Category:         "Fairness",
			ValidationMethod: MethodQuantitative,
			Metrics:          []string{"demographic_parity", "equal_opportunity"},
		},
		{
			ID:               "FAIR-2",
			Name:             "Representation Bias",
			Description:      "System provides balanced representation across groups",
			Article:          "Article 10(3)",
			Priority:         PriorityHigh,
			Category:         "Fairness",
			ValidationMethod: MethodHybrid,
			Metrics:          []string{"representation_ratio", "content_diversity"},
		},
	})
}

// #endregion fairness

// #region privacy
// Privacy returns the privacy and data protection catalogue.
func Privacy() *Registry {
	return MustRegistry("privacy", []Requirement{
		{
			ID:               "PRIV-1",
			Name:             "Data Minimization",
			Description:      "System collects and processes only necessary data",
			Article:          "Article 10(5)",
			Priority:         PriorityHigh,
			Category:         "Privacy",
			ValidationMethod: MethodQuantitative,
			Metrics:          []string{"data_necessity_score"},
		},
		{
			ID:               "PRIV-2",
			Name:             "Privacy by Design",
			Description:      "Privacy considerations integrated into system design",
			Article:          "Article 10(6)",
			Priority:         PriorityCritical,
			Category:         "Privacy",
			ValidationMethod: MethodQualitative,
			Metrics:          []string{"privacy_design_score"},
		},
		{
			ID:               "PRIV-3",
			Name:             "Data Protection",
			Description:      "Appropriate measures for data protection implemented",
			Article:          "Article 10(7)",
			Priority:         PriorityCritical,
			Category:         "Privacy",
			ValidationMethod: MethodQualitative,
			Metrics:          []string{"protection_measure_score"},
		},
	})
}

// #endregion privacy

// #region robustness
// TechnicalRobustness returns the Article 15 robustness catalogue.
func TechnicalRobustness() *Registry {
	return MustRegistry("technical_robustness", []Requirement{
		{
			ID:               "TECH-1",
			Name:             "Accuracy and Reliability",
			Description:      "System maintains consistent performance across different conditions",
			Article:          "Article 15(1)",
			Priority:         PriorityCritical,
			Category:         "Technical Robustness",
			ValidationMethod: MethodQuantitative,
			Metrics:          []string{"accuracy", "reliability_score"},
		},
		{
			ID:               "TECH-2",
			Name:             "Error Handling",
			Description:      "System handles errors and inconsistencies appropriately",
			Article:          "Article 15(2)",
			Priority:         PriorityHigh,
			Category:         "Technical Robustness",
			ValidationMethod: MethodHybrid,
			Metrics:          []string{"error_handling_score"},
		},
		{
			ID:               "TECH-3",
			Name:             "Resilience",
			Description:      "System resilient against attempts to manipulate output",
			Article:          "Article 15(3)",
			Priority:         PriorityCritical,
			Category:         "Technical Robustness",
			ValidationMethod: MethodQuantitative,
			Metrics:          []string{"resilience_score"},
		},
	})
}

// #endregion robustness

// #region transparency
// Transparency returns the Article 52 transparency catalogue.
func Transparency() *Registry {
	return MustRegistry("transparency", []Requirement{
		{
			ID:               "TRANS-1",
			Name:             "AI System Identification",
			Description:      "System clearly identifies itself as AI",
			Article:          "Article 52(1)",
			Priority:         PriorityCritical,
			Category:         "Transparency",
			ValidationMethod: MethodQuantitative,
			Metrics:          []string{"self_identification_rate", "clarity_score"},
		},
		{
			ID:               "TRANS-2",
			Name:             "Capability Disclosure",
			Description:      "System accurately discloses its capabilities",
			Article:          "Article 52(2)",
			Priority:         PriorityHigh,
			Category:         "Transparency",
			ValidationMethod: MethodHybrid,
			Metrics:          []string{"capability_disclosure_score", "accuracy_rate"},
		},
		{
			ID:               "TRANS-3",
			Name:             "Limitation Disclosure",
			Description:      "System clearly communicates its limitations",
			Article:          "Article 52(2)",
			Priority:         PriorityHigh,
			Category:         "Transparency",
			ValidationMethod: MethodHybrid,
			Metrics:          []string{"limitation_disclosure_score", "clarity_score"},
		},
	})
}

// #endregion transparency

// #region governance
// Governance returns the data quality, oversight, and accuracy catalogue.
func Governance() *Registry {
	return MustRegistry("governance", []Requirement{
		{
			ID:               "GOV-1",
			Name:             "Data Quality",
			Description:      "Training and validation data meet quality and documentation requirements",
			Article:          "Article 10",
			Priority:         PriorityHigh,
			Category:         "Governance",
			Subcategory:      "Data",
			ValidationMethod: MethodHybrid,
			Metrics:          []string{"data_quality"},
		},
		{
			ID:               "GOV-2",
			Name:             "Human Oversight",
			Description:      "Effective human oversight mechanisms are in place",
			Article:          "Article 14",
			Priority:         PriorityCritical,
			Category:         "Governance",
			Subcategory:      "Oversight",
			ValidationMethod: MethodQualitative,
			Metrics:          []string{"human_oversight"},
		},
		{
			ID:               "GOV-3",
			Name:             "Accuracy Requirements",
			Description:      "System meets the accuracy threshold for its risk tier",
			Article:          "Article 15",
			Priority:         PriorityCritical,
			Category:         "Governance",
			Subcategory:      "Accuracy",
			ValidationMethod: MethodQuantitative,
			Metrics:          []string{"accuracy_requirements"},
		},
	})
}

// #endregion governance
