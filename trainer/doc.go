// Package trainer provides the training run of the churn classifier: it loads and
// cleans the customer dataset, fits the pipeline, evaluates it on a statistically
// sufficient sample and writes the artifact.
package trainer
