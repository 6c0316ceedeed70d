package logic

import (
	"math"

	"go.uber.org/zap"

	"github.com/footycentral/predict-api/internal/feature"
	"github.com/footycentral/predict-api/internal/ml"
	"github.com/footycentral/predict-api/internal/models"
)

var winnerLabels = map[string]string{"home": "Home", "draw": "Draw", "away": "Away"}

type predictionService struct {
	state  *ModelState
	logger *zap.SugaredLogger
}

func NewPredictionService(state *ModelState, logger *zap.Logger) PredictionService {
	return &predictionService{state: state, logger: logger.Sugar()}
}

func (s *predictionService) PredictProba(features map[string]any) *models.PredictResponse {
	vec := feature.Vector(features)

	clf, version := s.state.Current()
	var proba models.Proba
	if clf == nil {
		proba = heuristicProba(vec)
	} else {
		proba = s.modelProba(clf, vec)
	}

	winner := "home"
	winnerProb := proba.Home
	if proba.Draw > winnerProb {
		winner, winnerProb = "draw", proba.Draw
	}
	if proba.Away > winnerProb {
		winner, winnerProb = "away", proba.Away
	}

	return &models.PredictResponse{
		Proba:                proba,
		PredictedWinner:      winner,
		PredictedWinnerLabel: winnerLabels[winner],
		PredictedWinnerProb:  winnerProb,
		ModelVersion:         version,
		TS:                   Timestamp(),
	}
}

// modelProba maps the classifier's class identifiers onto the three outcomes
// and renormalizes. Unresolvable classes or a zero sum degrade to uniform.
func (s *predictionService) modelProba(clf ml.Classifier, vec []float64) models.Proba {
	probs, err := clf.PredictProba(vec)
	if err != nil {
		s.logger.Errorw("Model probability extraction failed, using uniform", "error", err)
		return uniformProba()
	}

	out := [3]float64{}
	for i, c := range clf.Classes() {
		if i < len(probs) && c >= 0 && c < 3 {
			out[c] = probs[i]
		}
	}
	sum := out[0] + out[1] + out[2]
	if sum <= 0 {
		return uniformProba()
	}
	return models.Proba{Home: out[0] / sum, Draw: out[1] / sum, Away: out[2] / sum}
}

func uniformProba() models.Proba {
	return models.Proba{Home: 1.0 / 3.0, Draw: 1.0 / 3.0, Away: 1.0 / 3.0}
}

// heuristicProba is the deterministic fallback used before any model exists:
// fixed-weight multinomial-logit scoring over the feature vector. The weights
// are the original hand-tuned demo values and are not meant to be accurate,
// only to keep the endpoint alive.
func heuristicProba(vec []float64) models.Proba {
	eloDiff, ppgDiff := vec[0], vec[1]
	homeOsl, drawOsl, awayOsl := vec[2], vec[3], vec[4]
	poissonHomeProb, avgDrawPercent := vec[5], vec[6]
	xgHomeFor, xgHomeAgainst := vec[8], vec[10]

	sh := 0.40*poissonHomeProb + 0.20*(eloDiff/100.0) + 0.10*ppgDiff + 0.15*homeOsl - 0.10*(xgHomeAgainst-xgHomeFor)
	sd := 0.30*(avgDrawPercent/100.0) + 0.20*drawOsl + 0.10*(1-math.Abs(ppgDiff))
	sa := 0.35*(1-poissonHomeProb) + 0.20*(-eloDiff/100.0) + 0.10*(-ppgDiff) + 0.15*awayOsl

	eh, ed, ea := math.Exp(sh), math.Exp(sd), math.Exp(sa)
	sum := eh + ed + ea
	return models.Proba{Home: eh / sum, Draw: ed / sum, Away: ea / sum}
}
