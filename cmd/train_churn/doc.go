// Package main trains the customer churn classifier on the Telco customer file and
// writes the fitted pipeline to a snappy compressed artifact.
package main
