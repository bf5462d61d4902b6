package analysis

import (
	"fmt"
	"strings"
)

// Kind identifies which analysis a request asks for
type Kind string

const (
	KindBug            Kind = "bug"
	KindExplanation    Kind = "explanation"
	KindOptimization   Kind = "optimization"
	KindEdgeCase       Kind = "edgecase"
	KindUnitTest       Kind = "unittest"
	KindConversational Kind = "conversational"
)

// Kinds lists every analysis kind in a stable order
var Kinds = []Kind{
	KindBug,
	KindExplanation,
	KindOptimization,
	KindEdgeCase,
	KindUnitTest,
	KindConversational,
}

// kindAliases maps the names used by the HTTP surface and the CLI onto kinds.
var kindAliases = map[string]Kind{
	"bug":            KindBug,
	"bugs":           KindBug,
	"explanation":    KindExplanation,
	"explain":        KindExplanation,
	"explaincode":    KindExplanation,
	"optimization":   KindOptimization,
	"optimize":       KindOptimization,
	"edgecase":       KindEdgeCase,
	"edge-case":      KindEdgeCase,
	"edge-cases":     KindEdgeCase,
	"edge_cases":     KindEdgeCase,
	"unittest":       KindUnitTest,
	"unittests":      KindUnitTest,
	"tests":          KindUnitTest,
	"conversational": KindConversational,
	"chat":           KindConversational,
}

// ParseKind resolves a kind name or one of its aliases
func ParseKind(name string) (Kind, error) {
	kind, ok := kindAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("unknown analysis kind: %q", name)
	}
	return kind, nil
}

// Domain is the coarse purpose of a code sample
type Domain string

const (
	DomainFlaskWeb         Domain = "flask_web"
	DomainDjangoWeb        Domain = "django_web"
	DomainFastAPIWeb       Domain = "fastapi_web"
	DomainWebGeneral       Domain = "web_general"
	DomainDataScience      Domain = "data_science"
	DomainDatabase         Domain = "database"
	DomainAlgorithm        Domain = "algorithm"
	DomainObjectOriented   Domain = "object_oriented"
	DomainSecurity         Domain = "security"
	DomainFileOperations   Domain = "file_operations"
	DomainAPIService       Domain = "api_service"
	DomainAPINetwork       Domain = "api_network"
	DomainCybersecurity    Domain = "cybersecurity"
	DomainMachineLearning  Domain = "machine_learning"
	DomainDevOps           Domain = "devops"
	DomainFinancialSystems Domain = "financial_systems"
	DomainGeneral          Domain = "general"
)

// Tier is the coarse depth bucket derived from the complexity score
type Tier string

const (
	TierSimple        Tier = "simple"
	TierMedium        Tier = "medium"
	TierComplex       Tier = "complex"
	TierBeginner      Tier = "beginner"
	TierIntermediate  Tier = "intermediate"
	TierAdvanced      Tier = "advanced"
	TierComprehensive Tier = "comprehensive"
	TierEnterprise    Tier = "enterprise"
)

// Category is the (domain, tier) pair used to pick a prompt template
type Category struct {
	Domain Domain `json:"domain"`
	Tier   Tier   `json:"tier"`
}

func (c Category) String() string {
	return string(c.Domain) + "/" + string(c.Tier)
}
