// Package main serves the customer churn dashboard: the exploration chart, the headline
// figures and the prediction form over the trained artifact.
package main
