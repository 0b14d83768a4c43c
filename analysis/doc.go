// Package analysis provides the cache-access dataset pipeline for cachelab.
//
// # Reading Guide
//
// The pipeline runs in a fixed order, and each file owns one stage:
//   - dataset.go: CSV loading, categorical encoding, row selection
//   - split.go, smote.go: train/test partitioning and minority oversampling
//   - scaler.go: standardization fitted on training rows only
//   - evaluate.go, metrics.go: scoring a model against the held-out rows
//   - explore.go, radar.go: read-only summaries that feed the figures
//   - pipeline.go: Run, which wires the stages together
//
// Classifier implementations live in the sub-package analysis/model.
// Figures are produced through the Renderer interface; the render package
// implements it with gonum/plot.
//
// # Leakage Rule
//
// Only the training partition is balanced, and the StandardScaler is fitted on
// the balanced training matrix exactly once. Test rows are transformed with the
// frozen parameters and never influence any fitted state.
package analysis
