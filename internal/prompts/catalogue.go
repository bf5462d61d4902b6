package prompts

import (
	"sort"

	"github.com/codebugger/internal/analysis"
)

type tierTemplates map[analysis.Tier]string

type domainTemplates map[analysis.Domain]tierTemplates

// kindCatalogue is one kind's template table plus the plain prompt used
// when there is no code to classify.
type kindCatalogue struct {
	domains domainTemplates
	plain   string
}

var catalogue = map[analysis.Kind]kindCatalogue{
	analysis.KindBug:            {domains: bugTemplates, plain: bugPlainTemplate},
	analysis.KindOptimization:   {domains: optimizationTemplates, plain: optimizationPlainTemplate},
	analysis.KindExplanation:    {domains: explanationTemplates, plain: explanationPlainTemplate},
	analysis.KindEdgeCase:       {domains: edgeCaseTemplates, plain: edgeCasePlainTemplate},
	analysis.KindUnitTest:       {domains: unitTestTemplates, plain: unitTestPlainTemplate},
	analysis.KindConversational: {domains: conversationalTemplates, plain: conversationalPlainTemplate},
}

// SelectTemplate looks up the template for a category. Unknown domains fall
// back to general and unknown tiers to the kind's lowest tier, so every
// category resolves.
func SelectTemplate(kind analysis.Kind, category analysis.Category) string {
	kc, ok := catalogue[kind]
	if !ok {
		kc = catalogue[analysis.KindBug]
		kind = analysis.KindBug
	}
	tiers, ok := kc.domains[category.Domain]
	if !ok {
		tiers = kc.domains[analysis.DomainGeneral]
	}
	if tpl, ok := tiers[category.Tier]; ok {
		return tpl
	}
	return tiers[analysis.LowestTier(kind)]
}

// PlainTemplate returns the unclassified prompt for a kind
func PlainTemplate(kind analysis.Kind) string {
	if kc, ok := catalogue[kind]; ok {
		return kc.plain
	}
	return bugPlainTemplate
}

// TemplateKey names one concrete template in the catalogue
type TemplateKey struct {
	Kind     analysis.Kind
	Category analysis.Category
}

// Keys lists every template defined in the catalogue in a stable order
func Keys() []TemplateKey {
	var keys []TemplateKey
	for _, kind := range analysis.Kinds {
		var group []TemplateKey
		for domain, tiers := range catalogue[kind].domains {
			for tier := range tiers {
				group = append(group, TemplateKey{Kind: kind, Category: analysis.Category{Domain: domain, Tier: tier}})
			}
		}
		sort.Slice(group, func(i, j int) bool {
			return group[i].Category.String() < group[j].Category.String()
		})
		keys = append(keys, group...)
	}
	return keys
}
