package services

import "grantflow/contexts/grant-governance/deliberation-service/domain/entities"

// Tally is the reviewer yes/no count for one proposal.
type Tally struct {
	Yes int
	No  int
}

// DeriveRecommendation collapses a reviewer tally into the deliberation
// outcome. A strict majority of yes votes recommends; anything else with at
// least one vote does not, so a tie reads as not recommended. No votes at
// all means the panel has not spoken yet.
func DeriveRecommendation(tally Tally) entities.Recommendation {
	switch {
	case tally.Yes == 0 && tally.No == 0:
		return entities.RecommendationPending
	case tally.Yes > tally.No:
		return entities.RecommendationPositive
	default:
		return entities.RecommendationNegative
	}
}
