package artifacts

import (
	"math"

	"github.com/pkg/errors"
)

const leaf = -1

// Classifier is a trained binary classifier over a single feature vector.
type Classifier interface {
	// Classes returns the class labels in the order PredictProba reports them.
	Classes() []int
	// NumFeatures is the width of the vector the classifier was trained on.
	NumFeatures() int
	Predict(features []float64) (int, error)
	PredictProba(features []float64) ([]float64, error)
}

// Tree is a fitted decision tree in the flat array form scikit-learn exports.
// Node i is a leaf when ChildrenLeft[i] is -1.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

func (t *Tree) validate(numFeatures, numClasses int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return errors.New("tree has no nodes")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return errors.New("tree arrays differ in length")
	}
	for i := 0; i < n; i++ {
		if t.ChildrenLeft[i] == leaf {
			if len(t.Value[i]) != numClasses {
				return errors.Errorf("leaf %d has %d values, want %d", i, len(t.Value[i]), numClasses)
			}
			continue
		}
		// children are always stored after their parent, which rules out cycles
		if t.ChildrenLeft[i] <= i || t.ChildrenLeft[i] >= n || t.ChildrenRight[i] <= i || t.ChildrenRight[i] >= n {
			return errors.Errorf("node %d has out of range children", i)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= numFeatures {
			return errors.Errorf("node %d splits on unknown feature %d", i, t.Feature[i])
		}
	}
	return nil
}

// distribution walks the tree and returns the normalized class distribution of the leaf.
func (t *Tree) distribution(features []float64) []float64 {
	node := 0
	for t.ChildrenLeft[node] != leaf {
		// trees are fit and evaluated on float32 inputs
		x := float64(float32(features[t.Feature[node]]))
		if x <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	counts := t.Value[node]
	total := 0.0
	for _, c := range counts {
		total += c
	}
	out := make([]float64, len(counts))
	if total == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = c / total
	}
	return out
}

// RandomForest averages the leaf distributions of its trees.
type RandomForest struct {
	classes      []int
	featureNames []string
	numFeatures  int
	trees        []Tree
}

// NewRandomForest validates the exported trees against the feature width and class list.
func NewRandomForest(classes []int, numFeatures int, featureNames []string, trees []Tree) (*RandomForest, error) {
	if len(classes) < 2 {
		return nil, errors.Errorf("forest needs at least two classes, got %d", len(classes))
	}
	if numFeatures <= 0 {
		return nil, errors.New("forest has no features")
	}
	if len(featureNames) > 0 && len(featureNames) != numFeatures {
		return nil, errors.Errorf("forest lists %d feature names for %d features", len(featureNames), numFeatures)
	}
	if len(trees) == 0 {
		return nil, errors.New("forest has no trees")
	}
	for i := range trees {
		if err := trees[i].validate(numFeatures, len(classes)); err != nil {
			return nil, errors.Wrapf(err, "invalid tree %d", i)
		}
	}
	return &RandomForest{
		classes:      append([]int(nil), classes...),
		featureNames: append([]string(nil), featureNames...),
		numFeatures:  numFeatures,
		trees:        trees,
	}, nil
}

// Classes returns the class labels.
func (f *RandomForest) Classes() []int {
	return append([]int(nil), f.classes...)
}

// NumFeatures returns the expected vector width.
func (f *RandomForest) NumFeatures() int {
	return f.numFeatures
}

// FeatureNames returns the training column order, if it was exported.
func (f *RandomForest) FeatureNames() []string {
	return append([]string(nil), f.featureNames...)
}

// NumTrees returns the number of estimators.
func (f *RandomForest) NumTrees() int {
	return len(f.trees)
}

// PredictProba returns the mean class distribution over all trees.
func (f *RandomForest) PredictProba(features []float64) ([]float64, error) {
	if len(features) != f.numFeatures {
		return nil, errors.Errorf("forest expects %d features, got %d", f.numFeatures, len(features))
	}
	for i, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Errorf("feature %d is not finite", i)
		}
	}
	proba := make([]float64, len(f.classes))
	for i := range f.trees {
		for c, p := range f.trees[i].distribution(features) {
			proba[c] += p
		}
	}
	for c := range proba {
		proba[c] /= float64(len(f.trees))
	}
	return proba, nil
}

// Predict returns the class with the highest mean probability. Ties go to the
// earlier class.
func (f *RandomForest) Predict(features []float64) (int, error) {
	proba, err := f.PredictProba(features)
	if err != nil {
		return 0, err
	}
	best := 0
	for c := 1; c < len(proba); c++ {
		if proba[c] > proba[best] {
			best = c
		}
	}
	return f.classes[best], nil
}
