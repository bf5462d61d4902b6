package analysis

// domainRule inspects a sample and claims a domain when it matches.
type domainRule func(s *Sample) (Domain, bool)

// when claims d whenever pred holds
func when(d Domain, pred func(*Sample) bool) domainRule {
	return func(s *Sample) (Domain, bool) {
		return d, pred(s)
	}
}

func lowerAny(words ...string) func(*Sample) bool {
	return func(s *Sample) bool { return s.lowerHasAny(words...) }
}

func rawAny(words ...string) func(*Sample) bool {
	return func(s *Sample) bool { return s.hasAny(words...) }
}

func allOf(preds ...func(*Sample) bool) func(*Sample) bool {
	return func(s *Sample) bool {
		for _, p := range preds {
			if !p(s) {
				return false
			}
		}
		return true
	}
}

// webRule matches any web framework mention and narrows it to a
// framework-specific domain. Flask always wins; otherwise web_general.
func webRule(djangoHints, fastapiHints []string) domainRule {
	return func(s *Sample) (Domain, bool) {
		if !s.lowerHasAny("flask", "django", "fastapi") {
			return "", false
		}
		switch {
		case s.lowerHasAny("flask", "app.route"):
			return DomainFlaskWeb, true
		case s.lowerHasAny(djangoHints...):
			return DomainDjangoWeb, true
		case s.lowerHasAny(fastapiHints...):
			return DomainFastAPIWeb, true
		}
		return DomainWebGeneral, true
	}
}

var (
	hasDataScience = lowerAny("pandas", "numpy", "matplotlib", "sklearn")
	hasFileOps     = lowerAny("open(", "file", "read(", "write(")
	hasNetwork     = lowerAny("requests", "http", "api", "json")
	isClassy       = allOf(rawAny("class "), rawAny("def __init__"))
)

// profileDomainRules is shared by explanation and unittest.
var profileDomainRules = []domainRule{
	webRule([]string{"django"}, []string{"fastapi"}),
	when(DomainDataScience, hasDataScience),
	when(DomainDatabase, lowerAny("sqlite3", "mysql", "postgresql", "sql")),
	when(DomainAlgorithm, allOf(rawAny("def "), lowerAny("sort", "search", "tree", "graph"))),
	when(DomainObjectOriented, isClassy),
	when(DomainFileOperations, hasFileOps),
	when(DomainAPINetwork, hasNetwork),
}

// riskDomainRules is shared by edgecase and conversational.
var riskDomainRules = []domainRule{
	when(DomainCybersecurity, lowerAny("encryption", "hash", "cipher", "crypto", "security", "authentication", "bcrypt", "jwt")),
	when(DomainMachineLearning, lowerAny("tensorflow", "pytorch", "sklearn", "model", "training", "predict")),
	when(DomainDevOps, lowerAny("docker", "kubernetes", "aws", "deployment", "container")),
	when(DomainFinancialSystems, lowerAny("portfolio", "trading", "finance", "stock", "price", "currency")),
	when(DomainFlaskWeb, lowerAny("flask", "django", "fastapi", "app.route")),
	when(DomainDataScience, lowerAny("pandas", "numpy", "matplotlib")),
	when(DomainDatabase, lowerAny("sqlite3", "mysql", "sql")),
	when(DomainAlgorithm, allOf(rawAny("def "), lowerAny("sort", "search", "tree"))),
}

// domainRules holds the ordered first-match rules per kind. A sample that
// matches none of them is general.
var domainRules = map[Kind][]domainRule{
	KindBug: {
		webRule([]string{"django", "models.model"}, []string{"fastapi", "@app.get"}),
		when(DomainDataScience, hasDataScience),
		when(DomainDatabase, lowerAny("sqlite3", "mysql", "postgresql", "sql")),
		when(DomainAlgorithm, allOf(rawAny("def "), lowerAny("sort", "search", "tree", "graph", "algorithm"))),
		when(DomainObjectOriented, isClassy),
		when(DomainSecurity, lowerAny("hashlib", "crypto", "password", "authentication")),
		when(DomainFileOperations, hasFileOps),
	},
	KindOptimization: {
		webRule([]string{"django"}, []string{"fastapi"}),
		when(DomainDataScience, hasDataScience),
		when(DomainDatabase, lowerAny("sqlite3", "mysql", "postgresql", "sql")),
		when(DomainAlgorithm, allOf(rawAny("def "), lowerAny("sort", "search", "tree", "graph"))),
		when(DomainObjectOriented, isClassy),
		when(DomainAPIService, hasNetwork),
	},
	KindExplanation:    profileDomainRules,
	KindUnitTest:       profileDomainRules,
	KindEdgeCase:       riskDomainRules,
	KindConversational: append(append([]domainRule{}, riskDomainRules...), when(DomainObjectOriented, isClassy)),
}

// DetectDomain applies the kind's ordered rules and returns the first match.
func DetectDomain(kind Kind, s *Sample) Domain {
	for _, rule := range domainRules[kind] {
		if d, ok := rule(s); ok {
			return d
		}
	}
	return DomainGeneral
}
