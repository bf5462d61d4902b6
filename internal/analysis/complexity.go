package analysis

// bound assigns tier to any score strictly below limit.
type bound struct {
	limit int
	tier  Tier
}

// scoring describes how a kind weighs the sample and buckets the score.
type scoring struct {
	functionWeight int
	classWeight    int
	countImports   bool
	bounds         []bound
	top            Tier
}

var scorings = map[Kind]scoring{
	KindBug: {
		functionWeight: 3, classWeight: 5, countImports: true,
		bounds: []bound{{20, TierSimple}, {60, TierMedium}},
		top:    TierComplex,
	},
	KindOptimization: {
		functionWeight: 3, classWeight: 5, countImports: true,
		bounds: []bound{{20, TierSimple}, {60, TierMedium}},
		top:    TierComplex,
	},
	KindExplanation: {
		functionWeight: 2, classWeight: 3, countImports: true,
		bounds: []bound{{15, TierBeginner}, {40, TierIntermediate}},
		top:    TierAdvanced,
	},
	// anything above 50 is complex
	KindEdgeCase: {
		functionWeight: 3,
		bounds:         []bound{{51, TierSimple}},
		top:            TierComplex,
	},
	KindUnitTest: {
		functionWeight: 2, classWeight: 3,
		bounds: []bound{{20, TierSimple}, {50, TierComprehensive}},
		top:    TierEnterprise,
	},
	KindConversational: {
		functionWeight: 2, classWeight: 3,
		bounds: []bound{{20, TierBeginner}, {50, TierIntermediate}},
		top:    TierAdvanced,
	},
}

// Score computes the kind's weighted complexity score for the sample
func Score(kind Kind, s *Sample) int {
	sc, ok := scorings[kind]
	if !ok {
		sc = scorings[KindBug]
	}
	score := s.LineCount() + sc.functionWeight*s.FunctionCount() + sc.classWeight*s.ClassCount()
	if sc.countImports {
		score += s.ImportCount()
	}
	return score
}

// AssessComplexity buckets the sample's score into one of the kind's tiers
func AssessComplexity(kind Kind, s *Sample) Tier {
	return tierFor(kind, Score(kind, s))
}

func tierFor(kind Kind, score int) Tier {
	sc, ok := scorings[kind]
	if !ok {
		sc = scorings[KindBug]
	}
	for _, b := range sc.bounds {
		if score < b.limit {
			return b.tier
		}
	}
	return sc.top
}

// LowestTier is the fallback tier for a kind's template lookups
func LowestTier(kind Kind) Tier {
	switch kind {
	case KindExplanation, KindConversational:
		return TierBeginner
	default:
		return TierSimple
	}
}
